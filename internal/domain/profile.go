package domain

import (
	"errors"
	"strconv"
	"strings"
)

const (
	SkinTypeOily        = "oily"
	SkinTypeDry         = "dry"
	SkinTypeCombination = "combination"
	SkinTypeSensitive   = "sensitive"
	SkinTypeNormal      = "normal"
)

const (
	BudgetLow     = "budget"
	BudgetMid     = "mid-range"
	BudgetPremium = "premium"
	BudgetLuxury  = "luxury"
)

var (
	ErrMissingSkinType = errors.New("missing skin type")
	ErrMissingBudget   = errors.New("missing budget")
	ErrUnknownSkinType = errors.New("unknown skin type")
	ErrUnknownBudget   = errors.New("unknown budget")
)

// Profile describe la piel y preferencias del usuario; es la entrada del motor de recomendaciones.
type Profile struct {
	SkinType         string   `json:"skinType"`
	Concerns         []string `json:"concerns"`
	Budget           string   `json:"budget"`
	SkinTone         string   `json:"skinTone,omitempty"`
	Undertone        string   `json:"undertone,omitempty"`
	AgeRange         string   `json:"ageRange,omitempty"`
	Age              int      `json:"age,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	Lifestyle        []string `json:"lifestyle,omitempty"`
	FinishPreference []string `json:"finishPreference,omitempty"`
}

// BudgetRange es un rango de precio semiabierto [Min, Max). Max == 0 significa sin tope.
type BudgetRange struct {
	Min float64
	Max float64
}

// Contains indica si el precio cae dentro del rango.
func (r BudgetRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Max == 0 || price < r.Max
}

var budgetRanges = map[string]BudgetRange{
	BudgetLow:     {Min: 0, Max: 26},
	BudgetMid:     {Min: 26, Max: 76},
	BudgetPremium: {Min: 76, Max: 151},
	BudgetLuxury:  {Min: 151},
}

// RangeForBudget devuelve el rango de precio de un tramo de presupuesto.
func RangeForBudget(budget string) (BudgetRange, bool) {
	r, ok := budgetRanges[strings.ToLower(strings.TrimSpace(budget))]
	return r, ok
}

var skinTypes = map[string]bool{
	SkinTypeOily:        true,
	SkinTypeDry:         true,
	SkinTypeCombination: true,
	SkinTypeSensitive:   true,
	SkinTypeNormal:      true,
}

// ValidateForQuiz exige skinType y budget antes de invocar al scorer.
func (p Profile) ValidateForQuiz() error {
	skinType := strings.ToLower(strings.TrimSpace(p.SkinType))
	if skinType == "" {
		return ErrMissingSkinType
	}
	if !skinTypes[skinType] {
		return ErrUnknownSkinType
	}
	if strings.TrimSpace(p.Budget) == "" {
		return ErrMissingBudget
	}
	if _, ok := RangeForBudget(p.Budget); !ok {
		return ErrUnknownBudget
	}
	return nil
}

// Normalize devuelve una copia con valores en minusculas, sin espacios y sin concerns repetidos.
// Los alias del servicio de analisis facial (fine_lines, pigmentation, none) se traducen al vocabulario del quiz.
func (p Profile) Normalize() Profile {
	out := p
	out.SkinType = strings.ToLower(strings.TrimSpace(p.SkinType))
	out.Budget = strings.ToLower(strings.TrimSpace(p.Budget))
	out.SkinTone = strings.ToLower(strings.TrimSpace(p.SkinTone))
	out.Undertone = strings.ToLower(strings.TrimSpace(p.Undertone))
	out.AgeRange = strings.TrimSpace(p.AgeRange)
	out.Gender = strings.TrimSpace(p.Gender)
	out.Concerns = normalizeConcerns(p.Concerns)
	out.Lifestyle = dedupe(p.Lifestyle)
	out.FinishPreference = dedupe(p.FinishPreference)
	return out
}

var concernAliases = map[string]string{
	"fine_lines":   "fine-lines",
	"dark_spots":   "dark-spots",
	"uneven_tone":  "uneven-tone",
	"pigmentation": "hyperpigmentation",
}

func normalizeConcerns(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if alias, ok := concernAliases[c]; ok {
			c = alias
		}
		if c == "" || c == "none" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// EffectiveAge devuelve la edad cruda si existe; si no, el limite inferior del tramo (18-25, 26-35, ..., 55+).
// Devuelve 0 cuando no hay informacion.
func (p Profile) EffectiveAge() int {
	if p.Age > 0 {
		return p.Age
	}
	bucket := strings.TrimSpace(p.AgeRange)
	if bucket == "" {
		return 0
	}
	bucket = strings.TrimSuffix(bucket, "+")
	if idx := strings.Index(bucket, "-"); idx >= 0 {
		bucket = bucket[:idx]
	}
	n, err := strconv.Atoi(strings.TrimSpace(bucket))
	if err != nil {
		return 0
	}
	return n
}

// HasConcern indica si el perfil incluye el concern dado.
func (p Profile) HasConcern(concern string) bool {
	for _, c := range p.Concerns {
		if c == concern {
			return true
		}
	}
	return false
}

// HasLifestyle indica si el perfil incluye el habito dado.
func (p Profile) HasLifestyle(habit string) bool {
	for _, l := range p.Lifestyle {
		if l == habit {
			return true
		}
	}
	return false
}
