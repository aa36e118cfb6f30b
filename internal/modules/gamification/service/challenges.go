package service

import (
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/internal/modules/gamification/dto"
)

// Daily challenges are computed on read from today's point log, nothing
// about them is stored.
func buildDailyChallenges(logs []entity.PointLog) []dto.DailyChallenge {
	var lectures, assignments, social, points int
	for _, entry := range logs {
		switch entry.Activity {
		case ActivityLectureCompleted:
			lectures++
		case ActivityAssignmentSubmitted:
			assignments++
		case ActivitySocialInteraction, ActivityDiscussion, ActivityHelpRequestAnswered:
			social++
		}
		points += entry.Points
	}

	return []dto.DailyChallenge{
		makeChallenge("daily_lectures", "Belajar Hari Ini", "Selesaikan 3 materi hari ini", lectures, 3, 15),
		makeChallenge("daily_assignment", "Kumpulkan Tugas", "Kumpulkan 1 tugas hari ini", assignments, 1, 20),
		makeChallenge("daily_social", "Aktif di Komunitas", "Lakukan 2 interaksi sosial hari ini", social, 2, 10),
		makeChallenge("daily_points", "Kumpulkan Poin", "Raih 50 poin hari ini", points, 50, 25),
	}
}

func makeChallenge(id, title, description string, progress, target, reward int) dto.DailyChallenge {
	if progress > target {
		progress = target
	}
	return dto.DailyChallenge{
		ID:           id,
		Title:        title,
		Description:  description,
		Target:       target,
		Progress:     progress,
		Completed:    progress >= target,
		PointsReward: reward,
	}
}
