package recommend

import (
	"strings"

	"metizcare/internal/domain"
)

const (
	DefaultFaceReason = "Recommended based on your skin analysis and high customer ratings"
	DefaultQuizReason = "Recommended based on your skin profile"

	quizConcernsExplained = 2
)

// Explain genera la justificacion de un producto. Nunca devuelve un string vacio.
// Cada superficie tiene su propia politica: el quiz revisa menos reglas que el analisis facial.
func (e *Engine) Explain(product domain.Product, profile domain.Profile, path Path) string {
	return e.explain(product, profile.Normalize(), path)
}

func (e *Engine) explain(product domain.Product, profile domain.Profile, path Path) string {
	if path == PathFace {
		return e.explainFace(product, profile)
	}
	return explainQuiz(product, profile)
}

func (e *Engine) explainFace(product domain.Product, profile domain.Profile) string {
	text := strings.ToLower(product.Name + " " + product.Description)
	var reasons []string

	for _, concern := range orderConcerns(profile.Concerns) {
		if entry, ok := e.tax.concerns[concern]; ok && containsAny(text, entry.Cues) {
			reasons = appendUnique(reasons, entry.Reason)
		}
	}
	if entry, ok := e.tax.tones[profile.SkinTone]; ok && containsAny(text, entry.Cues) {
		reasons = appendUnique(reasons, entry.Reason)
	}
	if entry, ok := e.tax.undertones[profile.Undertone]; ok && containsAny(text, entry.Cues) {
		reasons = appendUnique(reasons, entry.Reason)
	}

	if len(reasons) == 0 {
		return DefaultFaceReason
	}
	return strings.Join(reasons, ". ")
}

func explainQuiz(product domain.Product, profile domain.Profile) string {
	var reasons []string

	if profile.SkinType != "" && strings.Contains(strings.ToLower(product.Category), profile.SkinType) {
		reasons = append(reasons, "Perfect for "+profile.SkinType+" skin")
	}

	description := strings.ToLower(product.Description)
	concerns := profile.Concerns
	if len(concerns) > quizConcernsExplained {
		concerns = concerns[:quizConcernsExplained]
	}
	for _, concern := range concerns {
		if strings.Contains(description, concern) {
			reasons = append(reasons, "Addresses "+strings.ReplaceAll(concern, "-", " "))
		}
	}

	if len(reasons) == 0 {
		return DefaultQuizReason
	}
	return strings.Join(reasons, ", ")
}

// wrinkles y fine-lines comparten frase; no se repite.
func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
