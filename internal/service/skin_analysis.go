package service

import "metizcare/internal/domain"

const (
	maxPrimaryConcerns = 3
	maxTips            = 5
	retinolAge         = 36
)

// BuildSkinAnalysis arma el analisis basico del quiz (rutina y tips) sin productos ni LLM.
// Espera un perfil ya normalizado.
func BuildSkinAnalysis(profile domain.Profile) domain.SkinAnalysis {
	primary := profile.Concerns
	if len(primary) > maxPrimaryConcerns {
		primary = primary[:maxPrimaryConcerns]
	}
	return domain.SkinAnalysis{
		PrimaryConcerns:     append([]string{}, primary...),
		SkinCareRoutine:     buildRoutine(profile),
		Tips:                buildTips(profile),
		RecommendedProducts: []domain.RecommendedProduct{},
	}
}

func buildRoutine(profile domain.Profile) domain.SkinCareRoutine {
	routine := domain.SkinCareRoutine{
		Morning: []string{"Gentle cleanser", "Moisturizer", "Sunscreen SPF 30+"},
		Evening: []string{"Makeup remover", "Cleanser", "Moisturizer"},
		Weekly:  []string{},
	}

	switch profile.SkinType {
	case domain.SkinTypeOily:
		routine.Morning = append(routine.Morning, "Oil-free moisturizer")
		routine.Evening = append(routine.Evening, "Exfoliating treatment")
	case domain.SkinTypeDry:
		routine.Morning = append(routine.Morning, "Hydrating serum")
		routine.Evening = append(routine.Evening, "Rich night cream")
	case domain.SkinTypeSensitive:
		routine.Morning = []string{"Gentle cleanser", "Soothing moisturizer", "Mineral sunscreen"}
		routine.Evening = []string{"Gentle makeup remover", "Gentle cleanser", "Calming moisturizer"}
	}

	if profile.HasConcern("acne") {
		routine.Weekly = append(routine.Weekly, "Salicylic acid treatment")
	}
	if profile.HasConcern("aging") || profile.EffectiveAge() >= retinolAge {
		routine.Weekly = append(routine.Weekly, "Retinol treatment")
	}
	if profile.HasConcern("dullness") {
		routine.Weekly = append(routine.Weekly, "Vitamin C treatment")
	}
	return routine
}

func buildTips(profile domain.Profile) []string {
	tips := []string{}

	switch profile.SkinType {
	case domain.SkinTypeOily:
		tips = append(tips,
			"Use oil-free products to prevent clogged pores",
			"Don't skip moisturizer - your skin still needs hydration",
		)
	case domain.SkinTypeDry:
		tips = append(tips,
			"Apply moisturizer while skin is still damp for better absorption",
			"Consider using a humidifier at night",
		)
	case domain.SkinTypeSensitive:
		tips = append(tips,
			"Always patch test new products before full application",
			"Avoid products with fragrance and harsh chemicals",
		)
	}

	if profile.HasConcern("acne") {
		tips = append(tips,
			"Be consistent with your routine - results take 4-6 weeks",
			"Don't over-exfoliate as it can worsen acne",
		)
	}
	if profile.HasConcern("aging") {
		tips = append(tips,
			"Sunscreen is your best anti-aging product",
			"Start with retinol gradually to avoid irritation",
		)
	}

	if profile.HasLifestyle("workout") {
		tips = append(tips, "Cleanse your face immediately after working out")
	}
	if profile.HasLifestyle("travel") {
		tips = append(tips, "Keep your routine simple when traveling")
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
