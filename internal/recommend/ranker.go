package recommend

import (
	"sort"

	"metizcare/internal/domain"
)

const (
	DefaultLimit   = 6
	BackfillTarget = 3
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityForRank asigna el nivel solo por posicion: 0-2 high, 3-4 medium, 5+ low.
func PriorityForRank(index int) Priority {
	switch {
	case index < 3:
		return PriorityHigh
	case index < 5:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Recommendation referencia un producto del catalogo recibido; no lo copia.
type Recommendation struct {
	Product    *domain.Product
	Score      int
	Reason     string
	Priority   Priority
	Backfilled bool
}

// Policy describe como selecciona cada superficie.
type Policy struct {
	Path  Path
	Limit int
	// MatchedOnly descarta productos que no sumaron ningun punto sobre BaseScore.
	MatchedOnly bool
	// BackfillTo completa con los productos mejor valorados hasta este minimo. 0 desactiva el relleno.
	BackfillTo int
}

// QuizPolicy: top N sin filtrar y sin relleno.
func QuizPolicy(limit int) Policy {
	return Policy{Path: PathQuiz, Limit: limit}
}

// FacePolicy: top N entre los productos con coincidencias y relleno hasta BackfillTarget.
func FacePolicy(limit int) Policy {
	return Policy{Path: PathFace, Limit: limit, MatchedOnly: true, BackfillTo: BackfillTarget}
}

type scored struct {
	index int
	score int
}

// Select puntua el catalogo, ordena de forma estable por score descendente y recorta a Limit.
// Un catalogo vacio devuelve una lista vacia.
func (e *Engine) Select(products []domain.Product, profile domain.Profile, policy Policy) []Recommendation {
	limit := policy.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	profile = profile.Normalize()

	candidates := make([]scored, 0, len(products))
	for i := range products {
		s := e.score(productText(products[i]), products[i], profile, policy.Path)
		if policy.MatchedOnly && s <= BaseScore {
			continue
		}
		candidates = append(candidates, scored{index: i, score: s})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]Recommendation, 0, len(candidates))
	taken := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		taken[c.index] = true
		out = append(out, Recommendation{
			Product: &products[c.index],
			Score:   c.score,
		})
	}

	target := policy.BackfillTo
	if target > limit {
		target = limit
	}
	if len(out) < target {
		out = append(out, e.backfill(products, profile, policy.Path, taken, target-len(out))...)
	}

	for i := range out {
		out[i].Priority = PriorityForRank(i)
		out[i].Reason = e.explain(*out[i].Product, profile, policy.Path)
	}
	return out
}

// backfill toma los productos no seleccionados con mejor rating, respetando el orden del catalogo en empates.
func (e *Engine) backfill(products []domain.Product, profile domain.Profile, path Path, taken map[int]bool, need int) []Recommendation {
	rest := make([]int, 0, len(products))
	for i := range products {
		if !taken[i] {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return products[rest[a]].Rating > products[rest[b]].Rating
	})
	if len(rest) > need {
		rest = rest[:need]
	}
	out := make([]Recommendation, 0, len(rest))
	for _, i := range rest {
		out = append(out, Recommendation{
			Product:    &products[i],
			Score:      e.score(productText(products[i]), products[i], profile, path),
			Backfilled: true,
		})
	}
	return out
}
