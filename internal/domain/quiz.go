package domain

import "time"

type SkinCareRoutine struct {
	Morning []string `json:"morning"`
	Evening []string `json:"evening"`
	Weekly  []string `json:"weekly"`
}

type AdditionalInsights struct {
	SkinCondition    string   `json:"skinCondition,omitempty"`
	RecommendedFocus string   `json:"recommendedFocus,omitempty"`
	AvoidIngredients []string `json:"avoidIngredients,omitempty"`
	SeekIngredients  []string `json:"seekIngredients,omitempty"`
}

// RecommendedProduct es una recomendacion ya empaquetada para persistir y devolver.
type RecommendedProduct struct {
	ProductID  string         `json:"productId"`
	Product    ProductSummary `json:"product"`
	Reason     string         `json:"reason"`
	Priority   string         `json:"priority"`
	Score      int            `json:"score"`
	Backfilled bool           `json:"backfilled,omitempty"`
}

// SkinAnalysis es el resultado del quiz: analisis basico, opcionalmente enriquecido por el LLM.
type SkinAnalysis struct {
	PrimaryConcerns     []string             `json:"primaryConcerns"`
	SkinCareRoutine     SkinCareRoutine      `json:"skinCareRoutine"`
	Tips                []string             `json:"tips"`
	AdditionalInsights  *AdditionalInsights  `json:"additionalInsights,omitempty"`
	EnhancedByAI        bool                 `json:"enhancedByAI,omitempty"`
	RecommendedProducts []RecommendedProduct `json:"recommendedProducts"`
}

type QuizResponse struct {
	ID          string       `json:"_id"`
	UserID      string       `json:"userId,omitempty"`
	SessionID   string       `json:"sessionId"`
	Responses   Profile      `json:"responses"`
	Analysis    SkinAnalysis `json:"analysis"`
	IsActive    bool         `json:"isActive"`
	CompletedAt time.Time    `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
}
