package dto

type CreateAchievementRequest struct {
	Name             string `json:"name" binding:"required,min=3,max=100"`
	Description      string `json:"description" binding:"required"`
	Icon             string `json:"icon" binding:"max=50"`
	Category         string `json:"category" binding:"required,oneof=learning social streak milestone special"`
	Rarity           string `json:"rarity" binding:"omitempty,oneof=common uncommon rare epic legendary"`
	CriteriaType     string `json:"criteria_type" binding:"required"`
	Threshold        int    `json:"threshold" binding:"required,gt=0"`
	TimeFrame        string `json:"time_frame" binding:"omitempty,oneof=lifetime daily weekly monthly"`
	PointsReward     int    `json:"points_reward" binding:"gte=0"`
	ExperienceReward int    `json:"experience_reward" binding:"gte=0"`
	IsHidden         bool   `json:"is_hidden"`
	IsRepeatable     bool   `json:"is_repeatable"`
	MaxCompletions   int    `json:"max_completions" binding:"gte=0"`
}

// Update uses pointers so the handler can tell an omitted field from a
// zero value.
type UpdateAchievementRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description      *string `json:"description"`
	Icon             *string `json:"icon" binding:"omitempty,max=50"`
	Category         *string `json:"category" binding:"omitempty,oneof=learning social streak milestone special"`
	Rarity           *string `json:"rarity" binding:"omitempty,oneof=common uncommon rare epic legendary"`
	CriteriaType     *string `json:"criteria_type"`
	Threshold        *int    `json:"threshold" binding:"omitempty,gt=0"`
	TimeFrame        *string `json:"time_frame" binding:"omitempty,oneof=lifetime daily weekly monthly"`
	PointsReward     *int    `json:"points_reward" binding:"omitempty,gte=0"`
	ExperienceReward *int    `json:"experience_reward" binding:"omitempty,gte=0"`
	IsActive         *bool   `json:"is_active"`
	IsHidden         *bool   `json:"is_hidden"`
	IsRepeatable     *bool   `json:"is_repeatable"`
	MaxCompletions   *int    `json:"max_completions" binding:"omitempty,gte=0"`
}

type ListAchievementsFilter struct {
	Search          string `form:"search"`
	Category        string `form:"category"`
	IncludeInactive bool   `form:"include_inactive"`
}
