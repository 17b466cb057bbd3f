package domain

import "time"

const (
	TipDifficultyBeginner = "beginner"
	TipSkinTypeAll        = "all"
)

type SkincareTip struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FullContent string    `json:"fullContent"`
	SkinType    string    `json:"skinType"`
	Concerns    []string  `json:"concerns"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Duration    string    `json:"duration"`
	Image       string    `json:"image"`
	Icon        string    `json:"icon"`
	Tags        []string  `json:"tags"`
	IsActive    bool      `json:"isActive"`
	Featured    bool      `json:"featured"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TipFilter agrupa los filtros del listado de tips.
type TipFilter struct {
	SkinType   string
	Concerns   []string
	Category   string
	Difficulty string
	Featured   bool
	Search     string
	Page       int
	Limit      int
}
