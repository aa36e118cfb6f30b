package service

import (
	"time"

	"learnly.id/gamification/internal/entity"
)

const (
	ActivityLectureCompleted      = "lecture_completed"
	ActivityCourseStarted         = "course_started"
	ActivityCourseCompleted       = "course_completed"
	ActivityAssignmentSubmitted   = "assignment_submitted"
	ActivitySocialInteraction     = "social_interaction"
	ActivityDiscussion            = "discussion_participated"
	ActivityPeerReviewGiven       = "peer_review_given"
	ActivityPeerReviewReceived    = "peer_review_received"
	ActivityHelpRequestAnswered   = "help_request_answered"
	ActivityMentorSession         = "mentor_session"
	ActivityMaterialDownloaded    = "material_downloaded"
	ActivityBookmarkCreated       = "bookmark_created"
	ActivityNoteTaken             = "note_taken"
	ActivityQuestionAsked         = "question_asked"
	ActivityAnswerProvided        = "answer_provided"
	ActivityKnowledgeShared       = "knowledge_shared"
	ActivityCommunityContribution = "community_contribution"
	ActivityCourseRecommended     = "course_recommended"
	ActivityFeedbackProvided      = "feedback_provided"
)

// activityEffects maps an activity kind to the statistics it bumps. An
// unmapped kind is not an error: points and streak still apply, only the
// counters stay put.
var activityEffects = map[string]func(p *entity.GamificationProfile, meta map[string]any, now time.Time){
	ActivityLectureCompleted: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.LecturesCompleted++
		if minutes, ok := metaInt(meta, "duration_minutes"); ok {
			p.Statistics.TotalTimeSpent += minutes
			if minutes > 0 && minutes < 10 {
				p.Statistics.SpeedLearningSessions++
			}
		}
		recordSessionTime(p, now)
	},
	ActivityCourseStarted: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.CoursesStarted++
	},
	ActivityCourseCompleted: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.CoursesCompleted++
	},
	ActivityAssignmentSubmitted: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.AssignmentsSubmitted++
		if score, ok := metaInt(meta, "score"); ok {
			// Deriving the average from the running sum avoids the drift a
			// floored running average accumulates across submissions.
			p.Statistics.TotalScore += score
			p.Statistics.AverageScore = p.Statistics.TotalScore / p.Statistics.AssignmentsSubmitted
			if score >= 100 {
				p.Statistics.PerfectScores++
			}
		}
	},
	ActivitySocialInteraction: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.SocialInteractions++
	},
	ActivityDiscussion: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.DiscussionsParticipated++
		p.Statistics.SocialInteractions++
	},
	ActivityPeerReviewGiven: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.PeerReviewsGiven++
	},
	ActivityPeerReviewReceived: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.PeerReviewsReceived++
	},
	ActivityHelpRequestAnswered: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.HelpRequestsAnswered++
		p.Statistics.SocialInteractions++
	},
	ActivityMentorSession: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.MentorSessions++
	},
	ActivityMaterialDownloaded: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.MaterialsDownloaded++
	},
	ActivityBookmarkCreated: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.BookmarksCreated++
	},
	ActivityNoteTaken: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.NotesTaken++
	},
	ActivityQuestionAsked: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.QuestionsAsked++
	},
	ActivityAnswerProvided: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.AnswersProvided++
	},
	ActivityKnowledgeShared: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.KnowledgeShares++
	},
	ActivityCommunityContribution: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.CommunityContributions++
	},
	ActivityCourseRecommended: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.CourseRecommendations++
	},
	ActivityFeedbackProvided: func(p *entity.GamificationProfile, meta map[string]any, now time.Time) {
		p.Statistics.FeedbackProvided++
	},
}

// RecordActivity applies the counter effects of one activity. It reports
// whether the kind was recognized.
func RecordActivity(p *entity.GamificationProfile, activity string, meta map[string]any, now time.Time) bool {
	effect, ok := activityEffects[activity]
	if !ok {
		return false
	}
	effect(p, meta, now)
	return true
}

// recordSessionTime classifies when a learning session happened. Hours are
// the student's local time as reported by the caller clock.
func recordSessionTime(p *entity.GamificationProfile, now time.Time) {
	switch hour := now.Hour(); {
	case hour < 8:
		p.Statistics.EarlyBirdSessions++
	case hour >= 22:
		p.Statistics.NightOwlSessions++
	}
	if day := now.Weekday(); day == time.Saturday || day == time.Sunday {
		p.Statistics.WeekendSessions++
	}
}

// metaInt reads a numeric metadata field. JSON numbers arrive as float64.
func metaInt(meta map[string]any, key string) (int, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
