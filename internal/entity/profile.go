package entity

import (
	"time"

	"github.com/google/uuid"
)

// Statistics is the embedded counter block the achievement evaluator reads.
// Counters only ever grow; there is no windowed reset here.
type Statistics struct {
	LecturesCompleted       int `gorm:"default:0" json:"lectures_completed"`
	CoursesStarted          int `gorm:"default:0" json:"courses_started"`
	CoursesCompleted        int `gorm:"default:0" json:"courses_completed"`
	AssignmentsSubmitted    int `gorm:"default:0" json:"assignments_submitted"`
	PerfectScores           int `gorm:"default:0" json:"perfect_scores"`
	TotalScore              int `gorm:"default:0" json:"total_score"`
	AverageScore            int `gorm:"default:0" json:"average_score"`
	TotalTimeSpent          int `gorm:"default:0" json:"total_time_spent"` // minutes
	SocialInteractions      int `gorm:"default:0" json:"social_interactions"`
	DiscussionsParticipated int `gorm:"default:0" json:"discussions_participated"`
	PeerReviewsGiven        int `gorm:"default:0" json:"peer_reviews_given"`
	PeerReviewsReceived     int `gorm:"default:0" json:"peer_reviews_received"`
	HelpRequestsAnswered    int `gorm:"default:0" json:"help_requests_answered"`
	MentorSessions          int `gorm:"default:0" json:"mentor_sessions"`
	MaterialsDownloaded     int `gorm:"default:0" json:"materials_downloaded"`
	BookmarksCreated        int `gorm:"default:0" json:"bookmarks_created"`
	NotesTaken              int `gorm:"default:0" json:"notes_taken"`
	QuestionsAsked          int `gorm:"default:0" json:"questions_asked"`
	AnswersProvided         int `gorm:"default:0" json:"answers_provided"`
	KnowledgeShares         int `gorm:"default:0" json:"knowledge_shares"`
	CommunityContributions  int `gorm:"default:0" json:"community_contributions"`
	CourseRecommendations   int `gorm:"default:0" json:"course_recommendations"`
	FeedbackProvided        int `gorm:"default:0" json:"feedback_provided"`
	EarlyBirdSessions       int `gorm:"default:0" json:"early_bird_sessions"`
	NightOwlSessions        int `gorm:"default:0" json:"night_owl_sessions"`
	WeekendSessions         int `gorm:"default:0" json:"weekend_sessions"`
	SpeedLearningSessions   int `gorm:"default:0" json:"speed_learning_sessions"`
	ConsecutiveWeeks        int `gorm:"default:0" json:"consecutive_weeks"`
}

type Preferences struct {
	ShowOnLeaderboard bool `gorm:"default:true" json:"show_on_leaderboard"`
	ShowAchievements  bool `gorm:"default:true" json:"show_achievements"`
	Notifications     bool `gorm:"default:true" json:"notifications"`
}

// GamificationProfile is the single aggregate mutated by an award.
// Writers bump Version; the repository refuses a save whose expected
// version no longer matches, which forces the caller to retry.
type GamificationProfile struct {
	StudentID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"student_id"`
	Student           Student    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Level             int        `gorm:"default:1" json:"level"`
	Experience        int        `gorm:"default:0" json:"experience"`
	Points            int        `gorm:"default:0" json:"points"`
	TotalPointsEarned int        `gorm:"default:0;index" json:"total_points_earned"`
	Statistics        Statistics `gorm:"embedded;embeddedPrefix:stat_" json:"statistics"`

	CurrentStreak    int        `gorm:"default:0" json:"current_streak"`
	LongestStreak    int        `gorm:"default:0" json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`

	WeeklyPoints  int    `gorm:"default:0" json:"weekly_points"`
	WeeklyPeriod  string `gorm:"size:10" json:"weekly_period"`
	MonthlyPoints int    `gorm:"default:0" json:"monthly_points"`
	MonthlyPeriod string `gorm:"size:7" json:"monthly_period"`

	// Ranks cached from the last leaderboard rebuild, nil outside the top 100.
	TotalRank   *int `json:"total_rank"`
	WeeklyRank  *int `json:"weekly_rank"`
	MonthlyRank *int `json:"monthly_rank"`

	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	Version   int       `gorm:"default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
