package recommend

import (
	"strings"

	"metizcare/internal/domain"
)

// Path distingue las dos superficies que consumen el motor.
type Path int

const (
	// PathQuiz corresponde al quiz de piel.
	PathQuiz Path = iota
	// PathFace corresponde al analisis facial (imagen o query params).
	PathFace
)

func (p Path) String() string {
	if p == PathFace {
		return "face"
	}
	return "quiz"
}

// Pesos del sistema aditivo de puntuacion.
const (
	BaseScore          = 10
	ConcernKeywordHit  = 3
	ToneKeywordHit     = 2
	SkinTypeHit        = 2
	BudgetFitBonus     = 10
	AgeFitBonus        = 2
	GenderFitBonus     = 1
	matureAgeThreshold = 30
)

var (
	ageKeywords    = []string{"anti-aging", "firming", "wrinkle"}
	genderKeywords = []string{"men", "beard", "grooming"}
)

// Engine puntua, ordena y explica productos. Es puro: no hace I/O ni guarda estado mutable.
type Engine struct {
	tax *Taxonomy
}

// NewEngine crea un motor sobre la taxonomia dada; nil usa DefaultTaxonomy.
func NewEngine(tax *Taxonomy) *Engine {
	if tax == nil {
		tax = DefaultTaxonomy()
	}
	return &Engine{tax: tax}
}

// Score calcula la relevancia de un producto para un perfil. Nunca es menor que BaseScore.
func (e *Engine) Score(product domain.Product, profile domain.Profile, path Path) int {
	return e.score(productText(product), product, profile.Normalize(), path)
}

func (e *Engine) score(text string, product domain.Product, profile domain.Profile, path Path) int {
	score := BaseScore

	for _, concern := range profile.Concerns {
		entry, ok := e.tax.concerns[concern]
		if !ok {
			continue
		}
		score += ConcernKeywordHit * countHits(text, entry.Keywords)
	}

	switch path {
	case PathFace:
		if entry, ok := e.tax.tones[profile.SkinTone]; ok {
			score += ToneKeywordHit * countHits(text, entry.Keywords)
		}
		if entry, ok := e.tax.undertones[profile.Undertone]; ok {
			score += ToneKeywordHit * countHits(text, entry.Keywords)
		}
	case PathQuiz:
		if matchesSkinType(product, profile.SkinType) {
			score += SkinTypeHit
		}
	}

	if r, ok := domain.RangeForBudget(profile.Budget); ok && r.Contains(product.Price) {
		score += BudgetFitBonus
	}

	if profile.EffectiveAge() > matureAgeThreshold && containsAny(text, ageKeywords) {
		score += AgeFitBonus
	}

	if strings.EqualFold(profile.Gender, "man") && containsAny(text, genderKeywords) {
		score += GenderFitBonus
	}

	return score
}

// productText concatena los campos de texto una sola vez por producto.
func productText(p domain.Product) string {
	return strings.ToLower(p.Name + " " + p.Description + " " + p.Brand + " " + p.Category)
}

func matchesSkinType(p domain.Product, skinType string) bool {
	if skinType == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Category), skinType) ||
		strings.Contains(strings.ToLower(p.Description), skinType)
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}
	return hits
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
