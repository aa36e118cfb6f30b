package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/pkg/apperror"
)

type AchievementRepository interface {
	ListActive(ctx context.Context) ([]entity.Achievement, error)
	List(ctx context.Context, includeInactive bool) ([]entity.Achievement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Achievement, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Achievement, error)
	GetByName(ctx context.Context, name string) (*entity.Achievement, error)
	Create(ctx context.Context, achievement *entity.Achievement) error
	Update(ctx context.Context, achievement *entity.Achievement) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit int) ([]entity.Achievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) ListActive(ctx context.Context) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) List(ctx context.Context, includeInactive bool) ([]entity.Achievement, error) {
	q := r.db.WithContext(ctx).Order("category asc, threshold asc")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var achievements []entity.Achievement
	err := q.Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Achievement, error) {
	var achievement entity.Achievement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Achievement, error) {
	if len(ids) == 0 {
		return []entity.Achievement{}, nil
	}
	var achievements []entity.Achievement
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&achievements).Error
	return achievements, err
}

func (r *achievementRepository) GetByName(ctx context.Context, name string) (*entity.Achievement, error) {
	var achievement entity.Achievement
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *achievementRepository) Create(ctx context.Context, achievement *entity.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) Update(ctx context.Context, achievement *entity.Achievement) error {
	return r.db.WithContext(ctx).Save(achievement).Error
}

func (r *achievementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Achievement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *achievementRepository) Search(ctx context.Context, query string, limit int) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (name ILIKE ? OR description ILIKE ? OR category ILIKE ?)", true, pattern, pattern, pattern).
		Limit(limit).
		Find(&achievements).Error
	return achievements, err
}
