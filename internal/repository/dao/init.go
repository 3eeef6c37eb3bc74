package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Career{},
		&FanTransaction{},
		&TrackScene{},
		&StudyTrack{},
		&StudentStudyTrack{},
		&StudentTrackScene{},
		&Submission{},
		&Review{},
		&PressQuiz{},
		&PressAttempt{},
		&Achievement{},
		&StudentAchievement{},
		&Tour{},
		&TourShow{},
	)
}
