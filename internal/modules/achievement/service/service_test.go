package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/internal/modules/achievement/dto"
	gamificationService "learnly.id/gamification/internal/modules/gamification/service"
	"learnly.id/gamification/pkg/apperror"
)

type fakeCatalogRepo struct {
	items []entity.Achievement
}

func (f *fakeCatalogRepo) ListActive(ctx context.Context) ([]entity.Achievement, error) {
	return f.items, nil
}

func (f *fakeCatalogRepo) List(ctx context.Context, includeInactive bool) ([]entity.Achievement, error) {
	if includeInactive {
		return f.items, nil
	}
	active := make([]entity.Achievement, 0, len(f.items))
	for _, item := range f.items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active, nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Achievement, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			copied := f.items[i]
			return &copied, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeCatalogRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Achievement, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) GetByName(ctx context.Context, name string) (*entity.Achievement, error) {
	for i := range f.items {
		if f.items[i].Name == name {
			copied := f.items[i]
			return &copied, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeCatalogRepo) Create(ctx context.Context, achievement *entity.Achievement) error {
	achievement.ID = uuid.New()
	f.items = append(f.items, *achievement)
	return nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, achievement *entity.Achievement) error {
	for i := range f.items {
		if f.items[i].ID == achievement.ID {
			f.items[i] = *achievement
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (f *fakeCatalogRepo) Search(ctx context.Context, query string, limit int) ([]entity.Achievement, error) {
	return f.items, nil
}

func TestCreateRejectsUnknownCriteriaType(t *testing.T) {
	svc := NewAchievementService(&fakeCatalogRepo{}, nil)

	_, err := svc.Create(context.Background(), dto.CreateAchievementRequest{
		Name:         "Misterius",
		CriteriaType: "telepathy_sessions",
		Threshold:    1,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	repo := &fakeCatalogRepo{items: []entity.Achievement{
		{ID: uuid.New(), Name: "Langkah Pertama", IsActive: true},
	}}
	svc := NewAchievementService(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateAchievementRequest{
		Name:         "Langkah Pertama",
		CriteriaType: gamificationService.CriteriaLecturesCompleted,
		Threshold:    1,
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewAchievementService(repo, nil)

	created, err := svc.Create(context.Background(), dto.CreateAchievementRequest{
		Name:         "Pemburu Ilmu",
		CriteriaType: gamificationService.CriteriaLecturesCompleted,
		Threshold:    50,
	})
	require.NoError(t, err)

	assert.True(t, created.IsActive)
	assert.Equal(t, entity.RarityCommon, created.Rarity)
	assert.Equal(t, entity.TimeFrameLifetime, created.TimeFrame)
	// A non-repeatable definition always caps at one completion.
	assert.Equal(t, 1, created.MaxCompletions)
}

func TestCreateRepeatableKeepsUnlimitedCompletions(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewAchievementService(repo, nil)

	created, err := svc.Create(context.Background(), dto.CreateAchievementRequest{
		Name:         "Kolektor Poin",
		CriteriaType: gamificationService.CriteriaPointsEarned,
		Threshold:    100,
		IsRepeatable: true,
	})
	require.NoError(t, err)

	// Zero stays zero: a repeatable definition without an explicit cap is
	// unlimited.
	assert.True(t, created.IsRepeatable)
	assert.Zero(t, created.MaxCompletions)
}

func TestListHidesHiddenDefinitions(t *testing.T) {
	repo := &fakeCatalogRepo{items: []entity.Achievement{
		{ID: uuid.New(), Name: "Langkah Pertama", Category: entity.CategoryLearning, IsActive: true},
		{ID: uuid.New(), Name: "Burung Pagi", Category: entity.CategorySpecial, IsActive: true, IsHidden: true},
	}}
	svc := NewAchievementService(repo, nil)

	listed, err := svc.List(context.Background(), dto.ListAchievementsFilter{})
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, "Langkah Pertama", listed[0].Name)
}

func TestListFiltersByCategory(t *testing.T) {
	repo := &fakeCatalogRepo{items: []entity.Achievement{
		{ID: uuid.New(), Name: "Langkah Pertama", Category: entity.CategoryLearning, IsActive: true},
		{ID: uuid.New(), Name: "Kupu-Kupu Sosial", Category: entity.CategorySocial, IsActive: true},
	}}
	svc := NewAchievementService(repo, nil)

	listed, err := svc.List(context.Background(), dto.ListAchievementsFilter{Category: entity.CategorySocial})
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, "Kupu-Kupu Sosial", listed[0].Name)
}

func TestUpdateMergesPointerFields(t *testing.T) {
	id := uuid.New()
	repo := &fakeCatalogRepo{items: []entity.Achievement{
		{ID: id, Name: "Langkah Pertama", Threshold: 1, PointsReward: 10, IsActive: true},
	}}
	svc := NewAchievementService(repo, nil)

	threshold := 3
	inactive := false
	updated, err := svc.Update(context.Background(), id, dto.UpdateAchievementRequest{
		Threshold: &threshold,
		IsActive:  &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Threshold)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Langkah Pertama", updated.Name)
	assert.Equal(t, 10, updated.PointsReward)
}

func TestUpdateRejectsUnknownCriteriaType(t *testing.T) {
	id := uuid.New()
	repo := &fakeCatalogRepo{items: []entity.Achievement{
		{ID: id, Name: "Langkah Pertama", CriteriaType: gamificationService.CriteriaLecturesCompleted, IsActive: true},
	}}
	svc := NewAchievementService(repo, nil)

	bogus := "telepathy_sessions"
	_, err := svc.Update(context.Background(), id, dto.UpdateAchievementRequest{CriteriaType: &bogus})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDeleteMissingAchievement(t *testing.T) {
	svc := NewAchievementService(&fakeCatalogRepo{}, nil)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
