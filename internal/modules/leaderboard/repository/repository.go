package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"learnly.id/gamification/internal/entity"
)

type LeaderboardRepository interface {
	// GetByTypePeriod returns nil when no snapshot exists yet.
	GetByTypePeriod(ctx context.Context, leaderboardType, period string) (*entity.Leaderboard, error)
	ReplaceEntries(ctx context.Context, leaderboardType, period string, entries []entity.LeaderboardEntry, updatedAt time.Time) (*entity.Leaderboard, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) GetByTypePeriod(ctx context.Context, leaderboardType, period string) (*entity.Leaderboard, error) {
	var leaderboard entity.Leaderboard
	err := r.db.WithContext(ctx).
		Where("type = ? AND period = ?", leaderboardType, period).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank asc")
		}).
		Preload("Entries.Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "full_name", "avatar_url")
		}).
		First(&leaderboard).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &leaderboard, nil
}

// ReplaceEntries swaps a snapshot's entries wholesale so readers never see
// a half rebuilt board.
func (r *leaderboardRepository) ReplaceEntries(ctx context.Context, leaderboardType, period string, entries []entity.LeaderboardEntry, updatedAt time.Time) (*entity.Leaderboard, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		leaderboard := entity.Leaderboard{
			Type:        leaderboardType,
			Period:      period,
			LastUpdated: updatedAt,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_updated"}),
		}).Create(&leaderboard).Error
		if err != nil {
			return err
		}

		// The upsert does not report the surviving ID on conflict, read it back.
		if err := tx.Where("type = ? AND period = ?", leaderboardType, period).First(&leaderboard).Error; err != nil {
			return err
		}

		if err := tx.Where("leaderboard_id = ?", leaderboard.ID).Delete(&entity.LeaderboardEntry{}).Error; err != nil {
			return err
		}

		for i := range entries {
			entries[i].LeaderboardID = leaderboard.ID
		}
		if len(entries) > 0 {
			if err := tx.Omit("Student").Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByTypePeriod(ctx, leaderboardType, period)
}
