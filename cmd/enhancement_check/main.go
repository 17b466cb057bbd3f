package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"metizcare/internal/config"
	"metizcare/internal/domain"
	"metizcare/internal/llm"
	"metizcare/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

var scenarios = []Scenario{
	{
		Name:    "Piel grasa con acne",
		Profile: domain.Profile{SkinType: "oily", Concerns: []string{"acne", "pores"}, Budget: "budget", AgeRange: "18-24"},
		Avoid:   []string{"coconut oil"},
		Expect:  []string{"spf", "salicylic"},
	},
	{
		Name:    "Piel sensible y seca",
		Profile: domain.Profile{SkinType: "sensitive", Concerns: []string{"dryness", "sensitivity"}, Budget: "mid-range"},
		Avoid:   []string{"glycolic", "retinol"},
		Expect:  []string{"spf", "fragrance"},
	},
	{
		Name:    "Piel madura",
		Profile: domain.Profile{SkinType: "normal", Concerns: []string{"aging", "dark-spots"}, Budget: "premium", AgeRange: "45-54"},
		Avoid:   []string{"retinol"},
		Expect:  []string{"spf", "retinol"},
	},
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY es requerida para el chequeo")
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer gemini.Close()

	enhancer := service.NewQuizEnhancer(gemini, logger)

	var totalRel, totalSafe, passed int
	for _, sc := range scenarios {
		fmt.Printf("%s[Escenario]%s %s\n", colorCyan, colorReset, sc.Name)

		profile := sc.Profile.Normalize()
		analysis, err := enhancer.Enhance(ctx, profile, service.BuildSkinAnalysis(profile))
		if err != nil {
			fmt.Printf("%senriquecimiento fallido:%s %v\n", colorRed, colorReset, err)
		}

		h := checkHeuristics(sc, analysis)
		status := colorGreen + "OK" + colorReset
		if h.Passed() {
			passed++
		} else {
			status = colorRed + "FALLA" + colorReset
		}
		fmt.Printf("Heuristicas: %s (enhanced=%t rutina_vacia=%t prohibidos=%v faltantes=%v)\n",
			status, h.Enhanced, h.EmptyRoutine, h.ForbiddenMorning, h.MissingExpected)

		jr, err := evaluateAnalysis(ctx, gemini, sc, analysis)
		if err != nil {
			log.Fatalf("judge failed: %v", err)
		}
		fmt.Printf("%sJuez%s %q\n", colorCyan, colorReset, jr.Reasoning)
		fmt.Printf("Scores: Relevancia %d/5 | Seguridad %d/5\n\n", jr.RelevanceScore, jr.SafetyScore)

		totalRel += jr.RelevanceScore
		totalSafe += jr.SafetyScore
	}

	n := len(scenarios)
	fmt.Println("==== Promedios ====")
	fmt.Printf("Relevancia: %.2f/5 | Seguridad: %.2f/5 | Heuristicas OK: %d/%d\n",
		float64(totalRel)/float64(n), float64(totalSafe)/float64(n), passed, n)
}
