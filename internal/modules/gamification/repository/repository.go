package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/pkg/apperror"
)

type ProfileRepository interface {
	// GetOrCreate backs every profile read: a student who never earned a
	// point gets a zero-valued profile row instead of a not-found error.
	GetOrCreate(ctx context.Context, studentID uuid.UUID) (*entity.GamificationProfile, error)
	GetEarned(ctx context.Context, studentID uuid.UUID) ([]entity.StudentAchievement, error)
	CountEarned(ctx context.Context, studentID uuid.UUID) (int64, error)
	SaveAward(ctx context.Context, profile *entity.GamificationProfile, expectedVersion int, records []*entity.StudentAchievement, logEntry *entity.PointLog) error
	UpdatePreferences(ctx context.Context, studentID uuid.UUID, prefs entity.Preferences) error
	RecentActivity(ctx context.Context, studentID uuid.UUID, limit int) ([]entity.PointLog, error)
	ActivitySince(ctx context.Context, studentID uuid.UUID, since time.Time) ([]entity.PointLog, error)
	TopProfiles(ctx context.Context, leaderboardType, periodKey string, limit int) ([]entity.GamificationProfile, error)
	AchievementCounts(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UpdateCachedRanks(ctx context.Context, leaderboardType string, ranks map[uuid.UUID]int) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, studentID uuid.UUID) (*entity.GamificationProfile, error) {
	var profile entity.GamificationProfile
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First contact with this student, make sure they actually exist
	// before minting a profile.
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Student{}).Where("id = ?", studentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperror.ErrNotFound
	}

	profile = entity.GamificationProfile{
		StudentID: studentID,
		Level:     1,
		Preferences: entity.Preferences{
			ShowOnLeaderboard: true,
			ShowAchievements:  true,
			Notifications:     true,
		},
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		DoNothing: true,
	}).Create(&profile).Error; err != nil {
		return nil, err
	}
	// Re-read in case a concurrent award won the insert race.
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetEarned(ctx context.Context, studentID uuid.UUID) ([]entity.StudentAchievement, error) {
	var earned []entity.StudentAchievement
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Achievement").
		Order("earned_at desc").
		Find(&earned).Error
	return earned, err
}

func (r *profileRepository) CountEarned(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.StudentAchievement{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

// SaveAward persists the outcome of one award atomically. The profile row
// only updates when its version still matches what the caller read, so a
// concurrent award surfaces as ErrVersionConflict instead of a lost write.
func (r *profileRepository) SaveAward(ctx context.Context, profile *entity.GamificationProfile, expectedVersion int, records []*entity.StudentAchievement, logEntry *entity.PointLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.GamificationProfile{}).
			Where("student_id = ? AND version = ?", profile.StudentID, expectedVersion).
			Select("*").
			Omit("student_id", "created_at").
			Updates(profile)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrVersionConflict
		}

		for _, record := range records {
			err := tx.Omit("Achievement").Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "achievement_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"earned_at", "progress", "completions"}),
			}).Create(record).Error
			if err != nil {
				return err
			}
		}

		return tx.Create(logEntry).Error
	})
}

func (r *profileRepository) UpdatePreferences(ctx context.Context, studentID uuid.UUID, prefs entity.Preferences) error {
	res := r.db.WithContext(ctx).Model(&entity.GamificationProfile{}).
		Where("student_id = ?", studentID).
		Updates(map[string]any{
			"pref_show_on_leaderboard": prefs.ShowOnLeaderboard,
			"pref_show_achievements":   prefs.ShowAchievements,
			"pref_notifications":       prefs.Notifications,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *profileRepository) RecentActivity(ctx context.Context, studentID uuid.UUID, limit int) ([]entity.PointLog, error) {
	var logs []entity.PointLog
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *profileRepository) ActivitySince(ctx context.Context, studentID uuid.UUID, since time.Time) ([]entity.PointLog, error) {
	var logs []entity.PointLog
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND created_at >= ?", studentID, since).
		Order("created_at asc").
		Find(&logs).Error
	return logs, err
}

// TopProfiles feeds leaderboard rebuilds. Weekly and monthly reads filter
// on the period key so profiles that stopped earning in an older period do
// not leak stale totals into the current one.
func (r *profileRepository) TopProfiles(ctx context.Context, leaderboardType, periodKey string, limit int) ([]entity.GamificationProfile, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.GamificationProfile{}).
		Preload("Student").
		Where("pref_show_on_leaderboard = ?", true)

	switch leaderboardType {
	case entity.LeaderboardWeekly:
		q = q.Where("weekly_period = ? AND weekly_points > 0", periodKey).
			Order("weekly_points desc")
	case entity.LeaderboardMonthly:
		q = q.Where("monthly_period = ? AND monthly_points > 0", periodKey).
			Order("monthly_points desc")
	default:
		q = q.Where("total_points_earned > 0").
			Order("total_points_earned desc")
	}

	var profiles []entity.GamificationProfile
	err := q.Order("student_id asc").Limit(limit).Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) AchievementCounts(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(studentIDs))
	if len(studentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		StudentID uuid.UUID
		Count     int
	}
	err := r.db.WithContext(ctx).Model(&entity.StudentAchievement{}).
		Select("student_id, count(*) as count").
		Where("student_id IN ?", studentIDs).
		Group("student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.StudentID] = row.Count
	}
	return counts, nil
}

// UpdateCachedRanks writes ranks from the latest snapshot back onto the
// profiles, and clears everyone who dropped out of the top.
func (r *profileRepository) UpdateCachedRanks(ctx context.Context, leaderboardType string, ranks map[uuid.UUID]int) error {
	column := "total_rank"
	switch leaderboardType {
	case entity.LeaderboardWeekly:
		column = "weekly_rank"
	case entity.LeaderboardMonthly:
		column = "monthly_rank"
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(ranks))
		for id := range ranks {
			ids = append(ids, id)
		}

		clear := tx.Model(&entity.GamificationProfile{}).Where(column + " IS NOT NULL")
		if len(ids) > 0 {
			clear = clear.Where("student_id NOT IN ?", ids)
		}
		if err := clear.Update(column, nil).Error; err != nil {
			return err
		}

		for id, rank := range ranks {
			err := tx.Model(&entity.GamificationProfile{}).
				Where("student_id = ?", id).
				Update(column, rank).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
