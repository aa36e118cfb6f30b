package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"learnly.id/gamification/internal/entity"
	achievementRepo "learnly.id/gamification/internal/modules/achievement/repository"
	"learnly.id/gamification/internal/modules/gamification/dto"
	"learnly.id/gamification/internal/modules/gamification/repository"
	lbservice "learnly.id/gamification/internal/modules/leaderboard/service"
	notifService "learnly.id/gamification/internal/modules/notification/service"
	"learnly.id/gamification/pkg/apperror"
)

const awardMaxRetries = 3

type GamificationService interface {
	AwardPoints(ctx context.Context, studentID uuid.UUID, input dto.AwardRequest) (*dto.AwardResult, error)
	GetProfile(ctx context.Context, studentID uuid.UUID) (*dto.ProfileResponse, error)
	GetAchievementsProgress(ctx context.Context, studentID uuid.UUID) ([]dto.AchievementProgress, error)
	GetStatistics(ctx context.Context, studentID uuid.UUID) (*entity.Statistics, error)
	GetStreak(ctx context.Context, studentID uuid.UUID) (*dto.StreakResponse, error)
	GetRecentActivity(ctx context.Context, studentID uuid.UUID, limit int) ([]entity.PointLog, error)
	GetDailyChallenges(ctx context.Context, studentID uuid.UUID) ([]dto.DailyChallenge, error)
	GetDashboard(ctx context.Context, studentID uuid.UUID) (*dto.DashboardResponse, error)
	UpdatePreferences(ctx context.Context, studentID uuid.UUID, input dto.PreferencesRequest) (*entity.Preferences, error)
	LevelInfo(level int) dto.LevelInfoResponse
}

type gamificationService struct {
	profiles     repository.ProfileRepository
	achievements achievementRepo.AchievementRepository
	notifier     notifService.NotificationService
}

func NewGamificationService(profiles repository.ProfileRepository, achievements achievementRepo.AchievementRepository, notifier notifService.NotificationService) GamificationService {
	return &gamificationService{
		profiles:     profiles,
		achievements: achievements,
		notifier:     notifier,
	}
}

// AwardPoints runs the whole bookkeeping sequence for one activity event.
// The sequence reads the profile, mutates it in memory and writes it back
// under an optimistic version check; a concurrent award on the same
// student makes the write fail and the sequence retries from the read.
func (s *gamificationService) AwardPoints(ctx context.Context, studentID uuid.UUID, input dto.AwardRequest) (*dto.AwardResult, error) {
	if strings.TrimSpace(input.Activity) == "" {
		return nil, apperror.New(400, "activity is required", apperror.ErrInvalidInput)
	}
	if input.Points <= 0 {
		return nil, apperror.New(400, "points must be positive", apperror.ErrInvalidInput)
	}

	var result *dto.AwardResult
	var notify func()

	operation := func() error {
		res, post, err := s.applyAward(ctx, studentID, input)
		if err != nil {
			if errors.Is(err, apperror.ErrVersionConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		notify = post
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), awardMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	if notify != nil {
		go notify()
	}

	return result, nil
}

// applyAward is one attempt of the award sequence. It returns the result
// plus the notification side effects to run after the commit.
func (s *gamificationService) applyAward(ctx context.Context, studentID uuid.UUID, input dto.AwardRequest) (*dto.AwardResult, func(), error) {
	now := time.Now().UTC()

	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	earnedRows, err := s.profiles.GetEarned(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	earned := make(map[uuid.UUID]*entity.StudentAchievement, len(earnedRows))
	for i := range earnedRows {
		earned[earnedRows[i].AchievementID] = &earnedRows[i]
	}

	expectedVersion := profile.Version
	oldLevel := profile.Level
	pointsBefore := profile.TotalPointsEarned
	experienceBefore := profile.Experience

	// 1. Ledger: points and experience move together on a base award.
	AddPoints(profile, input.Points)
	AddExperience(profile, input.Points)

	// 2. Statistics
	if !RecordActivity(profile, input.Activity, input.Metadata, now) {
		log.Printf("gamification: no counter mapped for activity %q, points still applied", input.Activity)
	}

	// 3. Streak
	UpdateStreak(profile, now)

	// 4. Achievements. A missing catalog must not block the award itself.
	var grants []Grant
	defs, err := s.achievements.ListActive(ctx)
	if err != nil {
		log.Printf("gamification: achievement catalog unavailable, skipping evaluation for %s: %v", studentID, err)
	} else {
		grants = EvaluateAchievements(profile, defs, earned, now)
	}

	// 5. Period totals get the full delta, achievement rewards included.
	lbservice.ApplyPeriodPoints(profile, profile.TotalPointsEarned-pointsBefore, now)

	profile.Version = expectedVersion + 1

	records := make([]*entity.StudentAchievement, 0, len(grants))
	for _, grant := range grants {
		records = append(records, grant.Record)
	}

	logEntry := &entity.PointLog{
		StudentID:  studentID,
		Activity:   input.Activity,
		Points:     input.Points,
		Experience: profile.Experience - experienceBefore,
	}
	if input.Metadata != nil {
		if raw, err := json.Marshal(input.Metadata); err == nil {
			encoded := string(raw)
			logEntry.Metadata = &encoded
		}
	}

	if err := s.profiles.SaveAward(ctx, profile, expectedVersion, records, logEntry); err != nil {
		return nil, nil, err
	}

	result := &dto.AwardResult{
		Points:            profile.Points,
		TotalPointsEarned: profile.TotalPointsEarned,
		Level:             profile.Level,
		CurrentStreak:     profile.CurrentStreak,
		NewAchievements:   make([]dto.AchievementSummary, 0, len(grants)),
	}
	if profile.Level > oldLevel {
		result.LevelUp = &dto.LevelUpInfo{From: oldLevel, To: profile.Level}
	}
	for _, grant := range grants {
		result.NewAchievements = append(result.NewAchievements, toAchievementSummary(grant.Achievement))
	}

	notify := s.buildNotifications(studentID, profile, result)
	return result, notify, nil
}

// buildNotifications captures the post-commit side effects. They run in
// their own goroutine with a fresh context so a slow notification never
// holds up the award response.
func (s *gamificationService) buildNotifications(studentID uuid.UUID, profile *entity.GamificationProfile, result *dto.AwardResult) func() {
	if s.notifier == nil || !profile.Preferences.Notifications {
		return nil
	}
	if result.LevelUp == nil && len(result.NewAchievements) == 0 {
		return nil
	}

	levelUp := result.LevelUp
	achievements := result.NewAchievements

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, achievement := range achievements {
			message := fmt.Sprintf("Kamu mendapat achievement %q!", achievement.Name)
			err := s.notifier.Notify(ctx, studentID, entity.NotificationAchievementEarned, message, map[string]any{
				"achievement_id": achievement.ID,
				"name":           achievement.Name,
				"icon":           achievement.Icon,
				"rarity":         achievement.Rarity,
			})
			if err != nil {
				log.Printf("gamification: achievement notification failed for %s: %v", studentID, err)
			}
		}

		if levelUp != nil {
			message := fmt.Sprintf("Selamat, kamu naik ke level %d!", levelUp.To)
			err := s.notifier.Notify(ctx, studentID, entity.NotificationLevelUp, message, map[string]any{
				"from": levelUp.From,
				"to":   levelUp.To,
			})
			if err != nil {
				log.Printf("gamification: level up notification failed for %s: %v", studentID, err)
			}
		}
	}
}

func (s *gamificationService) GetProfile(ctx context.Context, studentID uuid.UUID) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	count, err := s.profiles.CountEarned(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		Profile:          profile,
		LevelInfo:        s.LevelInfo(profile.Level),
		AchievementCount: count,
	}, nil
}

// GetAchievementsProgress reports every visible definition with the
// student's distance to it. Hidden definitions only show up once earned.
func (s *gamificationService) GetAchievementsProgress(ctx context.Context, studentID uuid.UUID) ([]dto.AchievementProgress, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	defs, err := s.achievements.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	earnedRows, err := s.profiles.GetEarned(ctx, studentID)
	if err != nil {
		return nil, err
	}
	earned := make(map[uuid.UUID]*entity.StudentAchievement, len(earnedRows))
	for i := range earnedRows {
		earned[earnedRows[i].AchievementID] = &earnedRows[i]
	}

	progress := make([]dto.AchievementProgress, 0, len(defs))
	for _, def := range defs {
		record := earned[def.ID]
		if def.IsHidden && record == nil {
			continue
		}

		value, known := CriteriaValue(profile, def.CriteriaType)
		if !known {
			value = 0
		}

		item := dto.AchievementProgress{
			Achievement:  toAchievementSummary(def),
			Earned:       record != nil,
			CurrentValue: value,
			Threshold:    def.Threshold,
			Percent:      progressPercent(value, def.Threshold),
		}
		if record != nil {
			earnedAt := record.EarnedAt
			item.EarnedAt = &earnedAt
			item.Completions = record.Completions
		}
		progress = append(progress, item)
	}
	return progress, nil
}

func (s *gamificationService) GetStatistics(ctx context.Context, studentID uuid.UUID) (*entity.Statistics, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &profile.Statistics, nil
}

func (s *gamificationService) GetStreak(ctx context.Context, studentID uuid.UUID) (*dto.StreakResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.StreakResponse{
		CurrentStreak:    profile.CurrentStreak,
		LongestStreak:    profile.LongestStreak,
		LastActivityDate: profile.LastActivityDate,
	}, nil
}

func (s *gamificationService) GetRecentActivity(ctx context.Context, studentID uuid.UUID, limit int) ([]entity.PointLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.profiles.RecentActivity(ctx, studentID, limit)
}

// GetDailyChallenges derives today's challenge progress from the point
// log, so it needs no extra daily counters on the profile.
func (s *gamificationService) GetDailyChallenges(ctx context.Context, studentID uuid.UUID) ([]dto.DailyChallenge, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	logs, err := s.profiles.ActivitySince(ctx, studentID, midnight)
	if err != nil {
		return nil, err
	}

	return buildDailyChallenges(logs), nil
}

func (s *gamificationService) GetDashboard(ctx context.Context, studentID uuid.UUID) (*dto.DashboardResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}
	recent, err := s.profiles.RecentActivity(ctx, studentID, 10)
	if err != nil {
		return nil, err
	}
	challenges, err := s.GetDailyChallenges(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Profile:   profile,
		LevelInfo: s.LevelInfo(profile.Level),
		Ranks: dto.RankSummary{
			Total:   profile.TotalRank,
			Weekly:  profile.WeeklyRank,
			Monthly: profile.MonthlyRank,
		},
		RecentActivity: recent,
		Challenges:     challenges,
	}, nil
}

func (s *gamificationService) UpdatePreferences(ctx context.Context, studentID uuid.UUID, input dto.PreferencesRequest) (*entity.Preferences, error) {
	profile, err := s.profiles.GetOrCreate(ctx, studentID)
	if err != nil {
		return nil, err
	}

	prefs := profile.Preferences
	if input.ShowOnLeaderboard != nil {
		prefs.ShowOnLeaderboard = *input.ShowOnLeaderboard
	}
	if input.ShowAchievements != nil {
		prefs.ShowAchievements = *input.ShowAchievements
	}
	if input.Notifications != nil {
		prefs.Notifications = *input.Notifications
	}

	if err := s.profiles.UpdatePreferences(ctx, studentID, prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (s *gamificationService) LevelInfo(level int) dto.LevelInfoResponse {
	info := InfoForLevel(level)
	return dto.LevelInfoResponse{
		Level:         info.Level,
		MinExperience: info.MinExperience,
		NextLevelAt:   info.NextLevelAt,
	}
}

func toAchievementSummary(a entity.Achievement) dto.AchievementSummary {
	return dto.AchievementSummary{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		Icon:             a.Icon,
		Category:         a.Category,
		Rarity:           a.Rarity,
		PointsReward:     a.PointsReward,
		ExperienceReward: a.ExperienceReward,
	}
}

func progressPercent(value, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	percent := value * 100 / threshold
	if percent > 100 {
		percent = 100
	}
	return percent
}
