package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"learnly.id/gamification/internal/entity"
	profileRepo "learnly.id/gamification/internal/modules/gamification/repository"
	leaderboardDto "learnly.id/gamification/internal/modules/leaderboard/dto"
	leaderboardRepo "learnly.id/gamification/internal/modules/leaderboard/repository"
	notifService "learnly.id/gamification/internal/modules/notification/service"
	commonDto "learnly.id/gamification/pkg/dto"
	"learnly.id/gamification/pkg/apperror"
)

// MaxEntries caps every snapshot. Rank queries outside the top come back
// empty instead of scanning the whole profile table.
const MaxEntries = 100

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, leaderboardType string, limit int) (*leaderboardDto.LeaderboardResponse, error)
	// GetStudentRank returns nil when the student is not on the board.
	GetStudentRank(ctx context.Context, studentID uuid.UUID, leaderboardType string) (*leaderboardDto.StudentRank, error)
	Rebuild(ctx context.Context, leaderboardType string) (*leaderboardDto.LeaderboardResponse, error)
	StartRefreshWorker(interval time.Duration)
}

type leaderboardService struct {
	repo            leaderboardRepo.LeaderboardRepository
	profiles        profileRepo.ProfileRepository
	notifier        notifService.NotificationService
	redisClient     *redis.Client
	refreshInterval time.Duration
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, profiles profileRepo.ProfileRepository, notifier notifService.NotificationService, redisClient *redis.Client, refreshInterval time.Duration) LeaderboardService {
	if refreshInterval <= 0 {
		refreshInterval = time.Hour
	}
	return &leaderboardService{
		repo:            repo,
		profiles:        profiles,
		notifier:        notifier,
		redisClient:     redisClient,
		refreshInterval: refreshInterval,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, leaderboardType string, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	leaderboardType, err := normalizeType(leaderboardType)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 50
	}
	if limit > MaxEntries {
		limit = MaxEntries
	}

	response, err := s.getFresh(ctx, leaderboardType)
	if err != nil {
		return nil, err
	}

	if len(response.Entries) > limit {
		trimmed := *response
		trimmed.Entries = response.Entries[:limit]
		return &trimmed, nil
	}
	return response, nil
}

func (s *leaderboardService) GetStudentRank(ctx context.Context, studentID uuid.UUID, leaderboardType string) (*leaderboardDto.StudentRank, error) {
	leaderboardType, err := normalizeType(leaderboardType)
	if err != nil {
		return nil, err
	}

	response, err := s.getFresh(ctx, leaderboardType)
	if err != nil {
		return nil, err
	}

	for _, entry := range response.Entries {
		if entry.StudentID == studentID {
			return &leaderboardDto.StudentRank{
				Type:   response.Type,
				Period: response.Period,
				Rank:   entry.Rank,
				Points: entry.Points,
			}, nil
		}
	}
	return nil, nil
}

// getFresh serves the snapshot in cache-aside order: redis, then the DB
// snapshot if it is still inside the staleness window, then a rebuild.
func (s *leaderboardService) getFresh(ctx context.Context, leaderboardType string) (*leaderboardDto.LeaderboardResponse, error) {
	period := PeriodKey(leaderboardType, time.Now())

	if cached := s.cacheGet(ctx, leaderboardType, period); cached != nil {
		return cached, nil
	}

	snapshot, err := s.repo.GetByTypePeriod(ctx, leaderboardType, period)
	if err != nil {
		return nil, err
	}
	if snapshot != nil && time.Since(snapshot.LastUpdated) < s.refreshInterval {
		response := s.toResponse(snapshot)
		s.cacheSet(ctx, response)
		return response, nil
	}

	return s.Rebuild(ctx, leaderboardType)
}

// Rebuild recomputes one snapshot from the profiles and swaps it in. Ranks
// are dense 1..N in point order; the write-back of cached ranks onto the
// profiles is best effort.
func (s *leaderboardService) Rebuild(ctx context.Context, leaderboardType string) (*leaderboardDto.LeaderboardResponse, error) {
	leaderboardType, err := normalizeType(leaderboardType)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	period := PeriodKey(leaderboardType, now)

	profiles, err := s.profiles.TopProfiles(ctx, leaderboardType, period, MaxEntries)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.StudentID)
	}
	counts, err := s.profiles.AchievementCounts(ctx, ids)
	if err != nil {
		log.Printf("leaderboard: achievement counts unavailable: %v", err)
		counts = map[uuid.UUID]int{}
	}

	entries := make([]entity.LeaderboardEntry, 0, len(profiles))
	ranks := make(map[uuid.UUID]int, len(profiles))
	for i, profile := range profiles {
		rank := i + 1
		ranks[profile.StudentID] = rank
		entries = append(entries, entity.LeaderboardEntry{
			StudentID:        profile.StudentID,
			Rank:             rank,
			Points:           pointsFor(&profile, leaderboardType),
			Level:            profile.Level,
			Streak:           profile.CurrentStreak,
			AchievementCount: counts[profile.StudentID],
		})
	}

	snapshot, err := s.repo.ReplaceEntries(ctx, leaderboardType, period, entries, now)
	if err != nil {
		return nil, err
	}

	s.notifyPodiumClimbers(leaderboardType, profiles)

	if err := s.profiles.UpdateCachedRanks(ctx, leaderboardType, ranks); err != nil {
		log.Printf("leaderboard: cached rank write-back failed for %s: %v", leaderboardType, err)
	}

	response := s.toResponse(snapshot)
	s.cacheSet(ctx, response)
	return response, nil
}

// notifyPodiumClimbers pings students who just entered the total top 3.
func (s *leaderboardService) notifyPodiumClimbers(leaderboardType string, profiles []entity.GamificationProfile) {
	if s.notifier == nil || leaderboardType != entity.LeaderboardTotal {
		return
	}

	podium := profiles
	if len(podium) > 3 {
		podium = podium[:3]
	}

	for i := range podium {
		profile := podium[i]
		rank := i + 1
		if !profile.Preferences.Notifications {
			continue
		}
		if profile.TotalRank != nil && *profile.TotalRank <= 3 {
			continue
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			message := fmt.Sprintf("Kamu masuk 3 besar leaderboard, peringkat %d!", rank)
			err := s.notifier.Notify(ctx, profile.StudentID, entity.NotificationRankUp, message, map[string]any{
				"rank": rank,
				"type": entity.LeaderboardTotal,
			})
			if err != nil {
				log.Printf("leaderboard: rank up notification failed for %s: %v", profile.StudentID, err)
			}
		}()
	}
}

// StartRefreshWorker keeps every board warm so reads rarely pay for a
// rebuild. Lazy rebuilds still cover correctness when it is not running.
func (s *leaderboardService) StartRefreshWorker(interval time.Duration) {
	if interval <= 0 {
		interval = s.refreshInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("Leaderboard refresh worker started (interval: %v)", interval)

		for range ticker.C {
			for _, leaderboardType := range []string{entity.LeaderboardTotal, entity.LeaderboardWeekly, entity.LeaderboardMonthly} {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if _, err := s.Rebuild(ctx, leaderboardType); err != nil {
					log.Printf("leaderboard: scheduled rebuild failed for %s: %v", leaderboardType, err)
				}
				cancel()
			}
		}
	}()
}

func (s *leaderboardService) toResponse(snapshot *entity.Leaderboard) *leaderboardDto.LeaderboardResponse {
	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(snapshot.Entries))
	for _, entry := range snapshot.Entries {
		item := leaderboardDto.LeaderboardEntry{
			Rank:      entry.Rank,
			StudentID: entry.StudentID,
			Student: commonDto.StudentSummary{
				Username:  entry.Student.Username,
				FullName:  entry.Student.FullName,
				AvatarURL: entry.Student.AvatarURL,
			},
			Points:           entry.Points,
			Level:            entry.Level,
			Streak:           entry.Streak,
			AchievementCount: entry.AchievementCount,
		}
		switch snapshot.Type {
		case entity.LeaderboardTotal:
			item.Title = TitleFor(entry.Points)
		case entity.LeaderboardWeekly:
			item.ActivityLabel = ActivityLabelFor(entry.Points)
		}
		entries = append(entries, item)
	}

	return &leaderboardDto.LeaderboardResponse{
		Type:        snapshot.Type,
		Period:      snapshot.Period,
		LastUpdated: snapshot.LastUpdated,
		Entries:     entries,
	}
}

func (s *leaderboardService) cacheKey(leaderboardType, period string) string {
	return fmt.Sprintf("leaderboard:%s:%s", leaderboardType, period)
}

func (s *leaderboardService) cacheGet(ctx context.Context, leaderboardType, period string) *leaderboardDto.LeaderboardResponse {
	if s.redisClient == nil {
		return nil
	}
	raw, err := s.redisClient.Get(ctx, s.cacheKey(leaderboardType, period)).Result()
	if err != nil {
		return nil
	}
	var response leaderboardDto.LeaderboardResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil
	}
	return &response
}

func (s *leaderboardService) cacheSet(ctx context.Context, response *leaderboardDto.LeaderboardResponse) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	key := s.cacheKey(response.Type, response.Period)
	if err := s.redisClient.Set(ctx, key, payload, s.refreshInterval).Err(); err != nil {
		log.Printf("leaderboard: cache write failed for %s: %v", key, err)
	}
}

func pointsFor(profile *entity.GamificationProfile, leaderboardType string) int {
	switch leaderboardType {
	case entity.LeaderboardWeekly:
		return profile.WeeklyPoints
	case entity.LeaderboardMonthly:
		return profile.MonthlyPoints
	default:
		return profile.TotalPointsEarned
	}
}

func normalizeType(leaderboardType string) (string, error) {
	switch leaderboardType {
	case "", entity.LeaderboardTotal, "all-time", "all_time":
		return entity.LeaderboardTotal, nil
	case entity.LeaderboardWeekly, entity.LeaderboardMonthly:
		return leaderboardType, nil
	default:
		return "", apperror.New(400, "unknown leaderboard type", apperror.ErrInvalidInput)
	}
}
