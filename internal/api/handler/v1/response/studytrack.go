package response

import "github.com/clavedesales/clave-api/internal/domain"

type StudyProgressResponse struct {
	TrackSceneID uint                 `json:"track_scene_id"`
	Progress     domain.StudyProgress `json:"progress"`
}

type SceneUnlockedResponse struct {
	TrackSceneID uint `json:"track_scene_id"`
	Unlocked     bool `json:"unlocked"`
}
