package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/pkg/apperror"
)

type fakeLeaderboardRepo struct {
	snapshots map[string]*entity.Leaderboard
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{snapshots: map[string]*entity.Leaderboard{}}
}

func snapshotKey(leaderboardType, period string) string {
	return leaderboardType + "/" + period
}

func (f *fakeLeaderboardRepo) GetByTypePeriod(ctx context.Context, leaderboardType, period string) (*entity.Leaderboard, error) {
	return f.snapshots[snapshotKey(leaderboardType, period)], nil
}

func (f *fakeLeaderboardRepo) ReplaceEntries(ctx context.Context, leaderboardType, period string, entries []entity.LeaderboardEntry, updatedAt time.Time) (*entity.Leaderboard, error) {
	snapshot := &entity.Leaderboard{
		Type:        leaderboardType,
		Period:      period,
		LastUpdated: updatedAt,
		Entries:     entries,
	}
	f.snapshots[snapshotKey(leaderboardType, period)] = snapshot
	return snapshot, nil
}

type fakeProfilesRepo struct {
	top         []entity.GamificationProfile
	topCalls    int
	lastType    string
	lastPeriod  string
	cachedRanks map[uuid.UUID]int
}

func (f *fakeProfilesRepo) GetOrCreate(ctx context.Context, studentID uuid.UUID) (*entity.GamificationProfile, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeProfilesRepo) GetEarned(ctx context.Context, studentID uuid.UUID) ([]entity.StudentAchievement, error) {
	return nil, nil
}

func (f *fakeProfilesRepo) CountEarned(ctx context.Context, studentID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeProfilesRepo) SaveAward(ctx context.Context, profile *entity.GamificationProfile, expectedVersion int, records []*entity.StudentAchievement, logEntry *entity.PointLog) error {
	return nil
}

func (f *fakeProfilesRepo) UpdatePreferences(ctx context.Context, studentID uuid.UUID, prefs entity.Preferences) error {
	return nil
}

func (f *fakeProfilesRepo) RecentActivity(ctx context.Context, studentID uuid.UUID, limit int) ([]entity.PointLog, error) {
	return nil, nil
}

func (f *fakeProfilesRepo) ActivitySince(ctx context.Context, studentID uuid.UUID, since time.Time) ([]entity.PointLog, error) {
	return nil, nil
}

func (f *fakeProfilesRepo) TopProfiles(ctx context.Context, leaderboardType, periodKey string, limit int) ([]entity.GamificationProfile, error) {
	f.topCalls++
	f.lastType = leaderboardType
	f.lastPeriod = periodKey
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeProfilesRepo) AchievementCounts(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(studentIDs))
	for i, id := range studentIDs {
		counts[id] = i + 1
	}
	return counts, nil
}

func (f *fakeProfilesRepo) UpdateCachedRanks(ctx context.Context, leaderboardType string, ranks map[uuid.UUID]int) error {
	f.cachedRanks = ranks
	return nil
}

func rankedProfile(total, weekly int) entity.GamificationProfile {
	return entity.GamificationProfile{
		StudentID:         uuid.New(),
		Level:             total/100 + 1,
		TotalPointsEarned: total,
		WeeklyPoints:      weekly,
		Preferences:       entity.Preferences{ShowOnLeaderboard: true},
	}
}

func TestRebuildAssignsDenseRanks(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{top: []entity.GamificationProfile{
		rankedProfile(9000, 120),
		rankedProfile(700, 60),
		rankedProfile(150, 10),
	}}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	response, err := svc.Rebuild(context.Background(), entity.LeaderboardTotal)
	require.NoError(t, err)

	assert.Equal(t, entity.LeaderboardTotal, response.Type)
	assert.Equal(t, entity.PeriodAllTime, response.Period)
	require.Len(t, response.Entries, 3)

	assert.Equal(t, 1, response.Entries[0].Rank)
	assert.Equal(t, 9000, response.Entries[0].Points)
	assert.Equal(t, "Sarjana", response.Entries[0].Title)
	assert.Equal(t, 2, response.Entries[1].Rank)
	assert.Equal(t, "Juara Kelas", response.Entries[1].Title)
	assert.Equal(t, 3, response.Entries[2].Rank)
	assert.Equal(t, "Pelajar", response.Entries[2].Title)

	// Ranks get written back onto the profiles.
	require.Len(t, profiles.cachedRanks, 3)
	assert.Equal(t, 1, profiles.cachedRanks[profiles.top[0].StudentID])
	assert.Equal(t, 3, profiles.cachedRanks[profiles.top[2].StudentID])
}

func TestRebuildWeeklyUsesWeeklyPoints(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{top: []entity.GamificationProfile{
		rankedProfile(9000, 120),
		rankedProfile(700, 30),
	}}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	response, err := svc.Rebuild(context.Background(), entity.LeaderboardWeekly)
	require.NoError(t, err)

	assert.Equal(t, entity.LeaderboardWeekly, profiles.lastType)
	assert.Equal(t, WeekKey(time.Now()), profiles.lastPeriod)
	require.Len(t, response.Entries, 2)
	assert.Equal(t, 120, response.Entries[0].Points)
	assert.Equal(t, "On Fire!", response.Entries[0].ActivityLabel)
	assert.Equal(t, "Active", response.Entries[1].ActivityLabel)
	assert.Empty(t, response.Entries[0].Title)
}

func TestGetLeaderboardTrimsToLimit(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{}
	for i := 0; i < 5; i++ {
		profiles.top = append(profiles.top, rankedProfile(1000-i*100, 0))
	}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	response, err := svc.GetLeaderboard(context.Background(), entity.LeaderboardTotal, 2)
	require.NoError(t, err)
	assert.Len(t, response.Entries, 2)

	// Oversized limits clamp to the snapshot cap instead of erroring.
	response, err = svc.GetLeaderboard(context.Background(), entity.LeaderboardTotal, 5000)
	require.NoError(t, err)
	assert.Len(t, response.Entries, 5)
}

func TestGetLeaderboardServesFreshSnapshotWithoutRebuild(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{}

	repo.snapshots[snapshotKey(entity.LeaderboardTotal, entity.PeriodAllTime)] = &entity.Leaderboard{
		Type:        entity.LeaderboardTotal,
		Period:      entity.PeriodAllTime,
		LastUpdated: time.Now().Add(-time.Minute),
		Entries: []entity.LeaderboardEntry{
			{StudentID: uuid.New(), Rank: 1, Points: 500},
		},
	}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	response, err := svc.GetLeaderboard(context.Background(), "", 50)
	require.NoError(t, err)

	assert.Len(t, response.Entries, 1)
	assert.Zero(t, profiles.topCalls)
}

func TestGetLeaderboardRebuildsStaleSnapshot(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{top: []entity.GamificationProfile{rankedProfile(300, 0)}}

	repo.snapshots[snapshotKey(entity.LeaderboardTotal, entity.PeriodAllTime)] = &entity.Leaderboard{
		Type:        entity.LeaderboardTotal,
		Period:      entity.PeriodAllTime,
		LastUpdated: time.Now().Add(-2 * time.Hour),
	}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	response, err := svc.GetLeaderboard(context.Background(), entity.LeaderboardTotal, 50)
	require.NoError(t, err)

	assert.Equal(t, 1, profiles.topCalls)
	assert.Len(t, response.Entries, 1)
}

func TestGetStudentRank(t *testing.T) {
	repo := newFakeLeaderboardRepo()
	profiles := &fakeProfilesRepo{top: []entity.GamificationProfile{
		rankedProfile(900, 0),
		rankedProfile(400, 0),
	}}

	svc := NewLeaderboardService(repo, profiles, nil, nil, time.Hour)

	rank, err := svc.GetStudentRank(context.Background(), profiles.top[1].StudentID, "all-time")
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 2, rank.Rank)
	assert.Equal(t, 400, rank.Points)
	assert.Equal(t, entity.LeaderboardTotal, rank.Type)

	// Off the board means nil, not an error.
	rank, err = svc.GetStudentRank(context.Background(), uuid.New(), entity.LeaderboardTotal)
	require.NoError(t, err)
	assert.Nil(t, rank)
}

func TestGetLeaderboardRejectsUnknownType(t *testing.T) {
	svc := NewLeaderboardService(newFakeLeaderboardRepo(), &fakeProfilesRepo{}, nil, nil, time.Hour)

	_, err := svc.GetLeaderboard(context.Background(), "yearly", 10)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestTitleLadder(t *testing.T) {
	assert.Equal(t, "Pemula", TitleFor(0))
	assert.Equal(t, "Pelajar", TitleFor(100))
	assert.Equal(t, "Juara Kelas", TitleFor(600))
	assert.Equal(t, "Cendekiawan", TitleFor(3000))
	assert.Equal(t, "Sarjana", TitleFor(8000))
	assert.Equal(t, "Guru Besar", TitleFor(25000))
}

func TestActivityLabels(t *testing.T) {
	assert.Empty(t, ActivityLabelFor(5))
	assert.Equal(t, "Active", ActivityLabelFor(20))
	assert.Equal(t, "Trending", ActivityLabelFor(70))
	assert.Equal(t, "On Fire!", ActivityLabelFor(150))
}
