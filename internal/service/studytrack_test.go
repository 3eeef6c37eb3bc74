package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

type fakeStudyRepo struct {
	tracks        map[uint]domain.StudyTrack
	scenes        map[uint]domain.TrackScene
	progress      map[uint]domain.StudentStudyTrack
	sceneProgress map[uint]domain.StudentTrackScene
	nextID        uint
}

func newFakeStudyRepo() *fakeStudyRepo {
	return &fakeStudyRepo{
		tracks:        make(map[uint]domain.StudyTrack),
		scenes:        make(map[uint]domain.TrackScene),
		progress:      make(map[uint]domain.StudentStudyTrack),
		sceneProgress: make(map[uint]domain.StudentTrackScene),
		nextID:        100,
	}
}

func (f *fakeStudyRepo) FindStudyTrack(_ context.Context, id uint) (domain.StudyTrack, error) {
	track, ok := f.tracks[id]
	if !ok {
		return domain.StudyTrack{}, repository.ErrStudyTrackNotFound
	}

	return track, nil
}

func (f *fakeStudyRepo) ListRequiredByTrackScene(_ context.Context, trackSceneID uint) ([]domain.StudyTrack, error) {
	var required []domain.StudyTrack
	for _, track := range f.tracks {
		if track.TrackSceneID == trackSceneID && track.IsRequired {
			required = append(required, track)
		}
	}

	return required, nil
}

func (f *fakeStudyRepo) FindProgress(_ context.Context, studentID, studyTrackID uint) (domain.StudentStudyTrack, error) {
	for _, record := range f.progress {
		if record.StudentID == studentID && record.StudyTrackID == studyTrackID {
			return record, nil
		}
	}

	return domain.StudentStudyTrack{}, repository.ErrProgressNotFound
}

func (f *fakeStudyRepo) SaveProgress(_ context.Context, record domain.StudentStudyTrack) (domain.StudentStudyTrack, error) {
	if record.ID == 0 {
		record.ID = f.nextID
		f.nextID++
	}
	f.progress[record.ID] = record

	return record, nil
}

func (f *fakeStudyRepo) ListProgress(_ context.Context, studentID uint, studyTrackIDs []uint) ([]domain.StudentStudyTrack, error) {
	wanted := make(map[uint]bool, len(studyTrackIDs))
	for _, id := range studyTrackIDs {
		wanted[id] = true
	}

	var records []domain.StudentStudyTrack
	for _, record := range f.progress {
		if record.StudentID == studentID && wanted[record.StudyTrackID] {
			records = append(records, record)
		}
	}

	return records, nil
}

func (f *fakeStudyRepo) FindTrackScene(_ context.Context, id uint) (domain.TrackScene, error) {
	scene, ok := f.scenes[id]
	if !ok {
		return domain.TrackScene{}, repository.ErrTrackSceneNotFound
	}

	return scene, nil
}

func (f *fakeStudyRepo) FindNextTrackScene(_ context.Context, projectID uint, order int) (domain.TrackScene, error) {
	for _, scene := range f.scenes {
		if scene.ProjectID == projectID && scene.Order == order+1 {
			return scene, nil
		}
	}

	return domain.TrackScene{}, repository.ErrTrackSceneNotFound
}

func (f *fakeStudyRepo) FindSceneProgress(_ context.Context, studentID, trackSceneID uint) (domain.StudentTrackScene, error) {
	for _, record := range f.sceneProgress {
		if record.StudentID == studentID && record.TrackSceneID == trackSceneID {
			return record, nil
		}
	}

	return domain.StudentTrackScene{}, repository.ErrSceneProgressNotFound
}

func (f *fakeStudyRepo) SaveSceneProgress(_ context.Context, record domain.StudentTrackScene) (domain.StudentTrackScene, error) {
	if record.ID == 0 {
		record.ID = f.nextID
		f.nextID++
	}
	f.sceneProgress[record.ID] = record

	return record, nil
}

func (f *fakeStudyRepo) sceneStatus(studentID, trackSceneID uint) domain.TrackSceneStatus {
	for _, record := range f.sceneProgress {
		if record.StudentID == studentID && record.TrackSceneID == trackSceneID {
			return record.Status
		}
	}

	return ""
}

type fakeProgression struct {
	events []domain.EventKind
}

func (f *fakeProgression) ApplyEvent(_ context.Context, _ uint, kind domain.EventKind) (domain.Career, error) {
	f.events = append(f.events, kind)

	return domain.Career{}, nil
}

func seededStudyRepo() *fakeStudyRepo {
	repo := newFakeStudyRepo()
	repo.scenes[1] = domain.TrackScene{ID: 1, ProjectID: 1, Title: "Opening Number", Order: 1}
	repo.scenes[2] = domain.TrackScene{ID: 2, ProjectID: 1, Title: "Second Act", Order: 2}
	repo.tracks[10] = domain.StudyTrack{ID: 10, TrackSceneID: 1, CategoryKey: "harmony", IsRequired: true}
	repo.tracks[11] = domain.StudyTrack{ID: 11, TrackSceneID: 1, CategoryKey: "blocking", IsRequired: true}
	repo.tracks[12] = domain.StudyTrack{ID: 12, TrackSceneID: 1, CategoryKey: "history", IsRequired: false}

	return repo
}

func newTestStudyTrackService(repo *fakeStudyRepo, progression *fakeProgression) *StudyTrackService {
	svc := NewStudyTrackService(repo, progression)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}

	return svc
}

func TestStudyTrackService_Toggle(t *testing.T) {
	repo := seededStudyRepo()
	svc := newTestStudyTrackService(repo, &fakeProgression{})

	record, err := svc.Toggle(context.Background(), 1, 10, "worked on the bridge")
	require.NoError(t, err)

	assert.True(t, record.Completed)
	require.NotNil(t, record.CompletedAt)
	assert.Equal(t, domain.PracticeSessionMinutes, record.PracticeTime)
	assert.Equal(t, "worked on the bridge", record.Notes)

	record, err = svc.Toggle(context.Background(), 1, 10, "")
	require.NoError(t, err)

	assert.False(t, record.Completed)
	assert.Nil(t, record.CompletedAt)
	// Practice time survives un-completing.
	assert.Equal(t, domain.PracticeSessionMinutes, record.PracticeTime)
}

func TestStudyTrackService_Toggle_UnknownTrack(t *testing.T) {
	svc := newTestStudyTrackService(newFakeStudyRepo(), &fakeProgression{})

	_, err := svc.Toggle(context.Background(), 1, 99, "")
	assert.ErrorIs(t, err, ErrStudyTrackNotFound)
}

func TestStudyTrackService_SceneCompletionFlow(t *testing.T) {
	repo := seededStudyRepo()
	progression := &fakeProgression{}
	svc := newTestStudyTrackService(repo, progression)

	_, err := svc.Toggle(context.Background(), 1, 10, "")
	require.NoError(t, err)

	// One of two required tracks done: scene still open, no reward.
	assert.Empty(t, progression.events)
	assert.Equal(t, domain.TrackSceneStatus(""), repo.sceneStatus(1, 1))

	_, err = svc.Toggle(context.Background(), 1, 11, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.EventKind{domain.EventTrackSceneCompleted}, progression.events)
	assert.Equal(t, domain.TrackSceneCompleted, repo.sceneStatus(1, 1))
	assert.Equal(t, domain.TrackSceneStudying, repo.sceneStatus(1, 2))

	progress, err := svc.Progress(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 2, progress.Total)
	assert.Equal(t, 100, progress.Percent)
}

func TestStudyTrackService_ReStudyNeverReRewards(t *testing.T) {
	repo := seededStudyRepo()
	progression := &fakeProgression{}
	svc := newTestStudyTrackService(repo, progression)

	_, err := svc.Toggle(context.Background(), 1, 10, "")
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), 1, 11, "")
	require.NoError(t, err)
	require.Len(t, progression.events, 1)

	// Un-complete and re-complete one required track.
	_, err = svc.Toggle(context.Background(), 1, 11, "")
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), 1, 11, "")
	require.NoError(t, err)

	assert.Len(t, progression.events, 1)
	assert.Equal(t, domain.TrackSceneCompleted, repo.sceneStatus(1, 1))
}

func TestStudyTrackService_OptionalTracksDoNotGate(t *testing.T) {
	repo := seededStudyRepo()
	progression := &fakeProgression{}
	svc := newTestStudyTrackService(repo, progression)

	// Completing only the optional track changes nothing scene-wise.
	_, err := svc.Toggle(context.Background(), 1, 12, "")
	require.NoError(t, err)

	assert.Empty(t, progression.events)

	progress, err := svc.Progress(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Completed)
	assert.Equal(t, 2, progress.Total)
}

func TestStudyTrackService_IsUnlocked(t *testing.T) {
	repo := seededStudyRepo()
	svc := newTestStudyTrackService(repo, &fakeProgression{})

	// No records yet: only the first scene of the project is open.
	unlocked, err := svc.IsUnlocked(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = svc.IsUnlocked(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, unlocked)

	_, err = svc.IsUnlocked(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrTrackSceneNotFound)
}
