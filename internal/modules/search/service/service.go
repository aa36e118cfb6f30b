package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"learnly.id/gamification/internal/entity"
)

const achievementsIndex = "achievements"

// SearchService mirrors the achievement catalog into Meilisearch. Hidden
// definitions stay out of the index entirely.
type SearchService interface {
	IndexAchievement(achievement *entity.Achievement) error
	DeleteAchievement(id string) error
	SearchAchievements(query string, limit int) ([]uuid.UUID, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"category", "rarity"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index(achievementsIndex).UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update achievements filterable attributes: %v", err)
	}

	sortableAttrs := []string{"threshold", "created_at"}
	_, err = s.client.Index(achievementsIndex).UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update achievements sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliAchievementDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Threshold   int    `json:"threshold"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *searchService) IndexAchievement(achievement *entity.Achievement) error {
	if achievement.IsHidden || !achievement.IsActive {
		return s.DeleteAchievement(achievement.ID.String())
	}

	doc := meiliAchievementDoc{
		ID:          achievement.ID.String(),
		Name:        achievement.Name,
		Description: achievement.Description,
		Category:    achievement.Category,
		Rarity:      achievement.Rarity,
		Threshold:   achievement.Threshold,
		CreatedAt:   achievement.CreatedAt.Unix(),
	}

	task, err := s.client.Index(achievementsIndex).AddDocuments([]meiliAchievementDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed achievement %s, task id: %d", achievement.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteAchievement(id string) error {
	_, err := s.client.Index(achievementsIndex).DeleteDocument(id)
	return err
}

// SearchAchievements returns matching catalog IDs. Callers reload the rows
// from the database so responses never serve a stale index copy.
func (s *searchService) SearchAchievements(query string, limit int) ([]uuid.UUID, error) {
	resp, err := s.client.Index(achievementsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc meiliAchievementDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if id, err := uuid.Parse(doc.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
