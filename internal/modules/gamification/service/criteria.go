package service

import "learnly.id/gamification/internal/entity"

const (
	CriteriaLecturesCompleted    = "lectures_completed"
	CriteriaCoursesCompleted     = "courses_completed"
	CriteriaStreakDays           = "streak_days"
	CriteriaPointsEarned         = "points_earned"
	CriteriaLevelReached         = "level_reached"
	CriteriaAssignmentsSubmitted = "assignments_submitted"
	CriteriaPerfectScores        = "perfect_scores"
	CriteriaSocialInteractions   = "social_interactions"
	CriteriaTimeSpentLearning    = "time_spent_learning"
	CriteriaMaterialsDownloaded  = "materials_downloaded"
	CriteriaDiscussions          = "discussions_participated"
	CriteriaPeerReviews          = "peer_reviews"
	CriteriaHelpOthers           = "help_others"
	CriteriaEarlyBird            = "early_bird"
	CriteriaNightOwl             = "night_owl"
	CriteriaWeekendWarrior       = "weekend_warrior"
	CriteriaSpeedLearner         = "speed_learner"
	CriteriaAccuracyMaster       = "accuracy_master"
	CriteriaConsistencyChampion  = "consistency_champion"
	CriteriaExplorer             = "explorer"
	CriteriaMaster               = "master"
	CriteriaInnovator            = "innovator"
	CriteriaMentor               = "mentor"
	CriteriaCommunityBuilder     = "community_builder"
	CriteriaKnowledgeSharer      = "knowledge_sharer"
	CriteriaBookmarksCreated     = "bookmarks_created"
	CriteriaNotesTaken           = "notes_taken"
	CriteriaQuestionsAsked       = "questions_asked"
	CriteriaAnswersProvided      = "answers_provided"
	CriteriaFeedbackProvided     = "feedback_provided"
	CriteriaRecommendations      = "course_recommendations"
)

// criteriaAccessors maps each criteria type to the profile value it is
// measured against. The catalog is data driven: a new counter only needs a
// row here, the evaluator itself never changes.
var criteriaAccessors = map[string]func(p *entity.GamificationProfile) int{
	CriteriaLecturesCompleted:    func(p *entity.GamificationProfile) int { return p.Statistics.LecturesCompleted },
	CriteriaCoursesCompleted:     func(p *entity.GamificationProfile) int { return p.Statistics.CoursesCompleted },
	CriteriaStreakDays:           func(p *entity.GamificationProfile) int { return p.CurrentStreak },
	CriteriaPointsEarned:         func(p *entity.GamificationProfile) int { return p.TotalPointsEarned },
	CriteriaLevelReached:         func(p *entity.GamificationProfile) int { return p.Level },
	CriteriaAssignmentsSubmitted: func(p *entity.GamificationProfile) int { return p.Statistics.AssignmentsSubmitted },
	CriteriaPerfectScores:        func(p *entity.GamificationProfile) int { return p.Statistics.PerfectScores },
	CriteriaSocialInteractions:   func(p *entity.GamificationProfile) int { return p.Statistics.SocialInteractions },
	CriteriaTimeSpentLearning:    func(p *entity.GamificationProfile) int { return p.Statistics.TotalTimeSpent },
	CriteriaMaterialsDownloaded:  func(p *entity.GamificationProfile) int { return p.Statistics.MaterialsDownloaded },
	CriteriaDiscussions:          func(p *entity.GamificationProfile) int { return p.Statistics.DiscussionsParticipated },
	CriteriaPeerReviews: func(p *entity.GamificationProfile) int {
		return p.Statistics.PeerReviewsGiven + p.Statistics.PeerReviewsReceived
	},
	CriteriaHelpOthers:          func(p *entity.GamificationProfile) int { return p.Statistics.HelpRequestsAnswered },
	CriteriaEarlyBird:           func(p *entity.GamificationProfile) int { return p.Statistics.EarlyBirdSessions },
	CriteriaNightOwl:            func(p *entity.GamificationProfile) int { return p.Statistics.NightOwlSessions },
	CriteriaWeekendWarrior:      func(p *entity.GamificationProfile) int { return p.Statistics.WeekendSessions },
	CriteriaSpeedLearner:        func(p *entity.GamificationProfile) int { return p.Statistics.SpeedLearningSessions },
	CriteriaAccuracyMaster:      func(p *entity.GamificationProfile) int { return p.Statistics.AverageScore },
	CriteriaConsistencyChampion: func(p *entity.GamificationProfile) int { return p.Statistics.ConsecutiveWeeks },
	CriteriaExplorer:            func(p *entity.GamificationProfile) int { return p.Statistics.CoursesStarted },
	CriteriaMaster:              func(p *entity.GamificationProfile) int { return p.Statistics.CoursesCompleted },
	CriteriaInnovator:           func(p *entity.GamificationProfile) int { return p.Statistics.KnowledgeShares },
	CriteriaMentor:              func(p *entity.GamificationProfile) int { return p.Statistics.MentorSessions },
	CriteriaCommunityBuilder:    func(p *entity.GamificationProfile) int { return p.Statistics.CommunityContributions },
	CriteriaKnowledgeSharer:     func(p *entity.GamificationProfile) int { return p.Statistics.KnowledgeShares },
	CriteriaBookmarksCreated:    func(p *entity.GamificationProfile) int { return p.Statistics.BookmarksCreated },
	CriteriaNotesTaken:          func(p *entity.GamificationProfile) int { return p.Statistics.NotesTaken },
	CriteriaQuestionsAsked:      func(p *entity.GamificationProfile) int { return p.Statistics.QuestionsAsked },
	CriteriaAnswersProvided:     func(p *entity.GamificationProfile) int { return p.Statistics.AnswersProvided },
	CriteriaFeedbackProvided:    func(p *entity.GamificationProfile) int { return p.Statistics.FeedbackProvided },
	CriteriaRecommendations:     func(p *entity.GamificationProfile) int { return p.Statistics.CourseRecommendations },
}

// CriteriaValue resolves the current value of a criteria type for a
// profile. ok is false for unknown types, which the evaluator skips.
func CriteriaValue(p *entity.GamificationProfile, criteriaType string) (int, bool) {
	accessor, ok := criteriaAccessors[criteriaType]
	if !ok {
		return 0, false
	}
	return accessor(p), true
}

// KnownCriteriaType is used by the catalog admin endpoints to reject
// definitions no accessor can ever satisfy.
func KnownCriteriaType(criteriaType string) bool {
	_, ok := criteriaAccessors[criteriaType]
	return ok
}
