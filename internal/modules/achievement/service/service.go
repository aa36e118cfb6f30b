package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"learnly.id/gamification/internal/entity"
	"learnly.id/gamification/internal/modules/achievement/dto"
	"learnly.id/gamification/internal/modules/achievement/repository"
	gamificationService "learnly.id/gamification/internal/modules/gamification/service"
	searchService "learnly.id/gamification/internal/modules/search/service"
	"learnly.id/gamification/pkg/apperror"
)

type AchievementService interface {
	List(ctx context.Context, filter dto.ListAchievementsFilter) ([]entity.Achievement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Achievement, error)
	Create(ctx context.Context, input dto.CreateAchievementRequest) (*entity.Achievement, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAchievementRequest) (*entity.Achievement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type achievementService struct {
	repo  repository.AchievementRepository
	meili searchService.SearchService
}

func NewAchievementService(repo repository.AchievementRepository, meili searchService.SearchService) AchievementService {
	return &achievementService{repo: repo, meili: meili}
}

// List serves the public catalog. Hidden definitions never show up here,
// students discover those by earning them.
func (s *achievementService) List(ctx context.Context, filter dto.ListAchievementsFilter) ([]entity.Achievement, error) {
	if filter.Search != "" {
		return s.search(ctx, filter.Search)
	}

	achievements, err := s.repo.List(ctx, filter.IncludeInactive)
	if err != nil {
		return nil, err
	}

	visible := make([]entity.Achievement, 0, len(achievements))
	for _, achievement := range achievements {
		if achievement.IsHidden {
			continue
		}
		if filter.Category != "" && achievement.Category != filter.Category {
			continue
		}
		visible = append(visible, achievement)
	}
	return visible, nil
}

// search goes through Meilisearch when it is wired and falls back to a
// plain ILIKE query when it is not.
func (s *achievementService) search(ctx context.Context, query string) ([]entity.Achievement, error) {
	if s.meili == nil {
		return s.repo.Search(ctx, query, 50)
	}

	ids, err := s.meili.SearchAchievements(query, 50)
	if err != nil {
		log.Printf("achievement: meilisearch unavailable, falling back to DB search: %v", err)
		return s.repo.Search(ctx, query, 50)
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *achievementService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Achievement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *achievementService) Create(ctx context.Context, input dto.CreateAchievementRequest) (*entity.Achievement, error) {
	if !gamificationService.KnownCriteriaType(input.CriteriaType) {
		return nil, apperror.New(400, "unknown criteria type", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.GetByName(ctx, input.Name); err == nil {
		return nil, apperror.New(409, "achievement name already exists", apperror.ErrConflict)
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	achievement := &entity.Achievement{
		Name:             input.Name,
		Description:      input.Description,
		Icon:             input.Icon,
		Category:         input.Category,
		Rarity:           input.Rarity,
		CriteriaType:     input.CriteriaType,
		Threshold:        input.Threshold,
		TimeFrame:        input.TimeFrame,
		PointsReward:     input.PointsReward,
		ExperienceReward: input.ExperienceReward,
		IsActive:         true,
		IsHidden:         input.IsHidden,
		IsRepeatable:     input.IsRepeatable,
		MaxCompletions:   input.MaxCompletions,
	}
	if achievement.Rarity == "" {
		achievement.Rarity = entity.RarityCommon
	}
	if achievement.TimeFrame == "" {
		achievement.TimeFrame = entity.TimeFrameLifetime
	}
	if !achievement.IsRepeatable {
		achievement.MaxCompletions = 1
	}

	if err := s.repo.Create(ctx, achievement); err != nil {
		return nil, err
	}

	s.reindex(achievement)
	return achievement, nil
}

func (s *achievementService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAchievementRequest) (*entity.Achievement, error) {
	achievement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CriteriaType != nil {
		if !gamificationService.KnownCriteriaType(*input.CriteriaType) {
			return nil, apperror.New(400, "unknown criteria type", apperror.ErrInvalidInput)
		}
		achievement.CriteriaType = *input.CriteriaType
	}
	if input.Name != nil {
		achievement.Name = *input.Name
	}
	if input.Description != nil {
		achievement.Description = *input.Description
	}
	if input.Icon != nil {
		achievement.Icon = *input.Icon
	}
	if input.Category != nil {
		achievement.Category = *input.Category
	}
	if input.Rarity != nil {
		achievement.Rarity = *input.Rarity
	}
	if input.Threshold != nil {
		achievement.Threshold = *input.Threshold
	}
	if input.TimeFrame != nil {
		achievement.TimeFrame = *input.TimeFrame
	}
	if input.PointsReward != nil {
		achievement.PointsReward = *input.PointsReward
	}
	if input.ExperienceReward != nil {
		achievement.ExperienceReward = *input.ExperienceReward
	}
	if input.IsActive != nil {
		achievement.IsActive = *input.IsActive
	}
	if input.IsHidden != nil {
		achievement.IsHidden = *input.IsHidden
	}
	if input.IsRepeatable != nil {
		achievement.IsRepeatable = *input.IsRepeatable
	}
	if input.MaxCompletions != nil {
		achievement.MaxCompletions = *input.MaxCompletions
	}

	if err := s.repo.Update(ctx, achievement); err != nil {
		return nil, err
	}

	s.reindex(achievement)
	return achievement, nil
}

func (s *achievementService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.meili != nil {
		if err := s.meili.DeleteAchievement(id.String()); err != nil {
			log.Printf("achievement: failed to remove %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *achievementService) reindex(achievement *entity.Achievement) {
	if s.meili == nil {
		return
	}
	if err := s.meili.IndexAchievement(achievement); err != nil {
		log.Printf("achievement: failed to index %s: %v", achievement.ID, err)
	}
}
