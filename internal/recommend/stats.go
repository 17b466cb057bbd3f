package recommend

import (
	"sort"

	"metizcare/internal/domain"
)

const topConcernsLimit = 10

type ConcernCount struct {
	Concern string `json:"concern"`
	Count   int    `json:"count"`
}

// Stats resume las respuestas historicas del quiz.
type Stats struct {
	TotalResponses       int            `json:"totalResponses"`
	SkinTypeDistribution map[string]int `json:"skinTypeDistribution"`
	TopConcerns          []ConcernCount `json:"topConcerns"`
	BudgetDistribution   map[string]int `json:"budgetDistribution"`
}

// Aggregate cuenta frecuencias sobre las respuestas recibidas. Los concerns empatados conservan el orden de aparicion.
func Aggregate(records []domain.Profile) Stats {
	stats := Stats{
		TotalResponses:       len(records),
		SkinTypeDistribution: make(map[string]int),
		TopConcerns:          []ConcernCount{},
		BudgetDistribution:   make(map[string]int),
	}

	concernIndex := make(map[string]int)
	for _, r := range records {
		stats.SkinTypeDistribution[r.SkinType]++
		stats.BudgetDistribution[r.Budget]++
		for _, c := range r.Concerns {
			if i, ok := concernIndex[c]; ok {
				stats.TopConcerns[i].Count++
				continue
			}
			concernIndex[c] = len(stats.TopConcerns)
			stats.TopConcerns = append(stats.TopConcerns, ConcernCount{Concern: c, Count: 1})
		}
	}

	sort.SliceStable(stats.TopConcerns, func(a, b int) bool {
		return stats.TopConcerns[a].Count > stats.TopConcerns[b].Count
	})
	if len(stats.TopConcerns) > topConcernsLimit {
		stats.TopConcerns = stats.TopConcerns[:topConcernsLimit]
	}
	return stats
}
