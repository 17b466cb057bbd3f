package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/llm"
)

var ErrEnhancementUnparseable = errors.New("llm enhancement response has no json object")

// QuizEnhancer pide al LLM una version mas detallada del analisis basico del quiz.
type QuizEnhancer struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewQuizEnhancer(llmClient llm.LLMClient, logger *zap.Logger) *QuizEnhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizEnhancer{llmClient: llmClient, logger: logger}
}

type enhancedAnalysis struct {
	PrimaryConcerns    []string                   `json:"primaryConcerns"`
	SkinCareRoutine    *domain.SkinCareRoutine    `json:"skinCareRoutine"`
	Tips               []string                   `json:"tips"`
	AdditionalInsights *domain.AdditionalInsights `json:"additionalInsights"`
}

// Enhance devuelve el analisis enriquecido. Ante cualquier error devuelve el analisis original junto al error.
func (e *QuizEnhancer) Enhance(ctx context.Context, profile domain.Profile, base domain.SkinAnalysis) (domain.SkinAnalysis, error) {
	if e == nil || e.llmClient == nil {
		return base, llm.ErrDisabled
	}
	prompt, err := buildEnhancementPrompt(profile, base)
	if err != nil {
		return base, err
	}

	raw, err := e.llmClient.Generate(ctx, prompt)
	if err != nil {
		return base, fmt.Errorf("llm generate: %w", err)
	}

	payload := llm.ExtractJSON(raw)
	if payload == "" {
		return base, ErrEnhancementUnparseable
	}
	var parsed enhancedAnalysis
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return base, fmt.Errorf("parse llm response: %w", err)
	}
	return mergeEnhancement(base, parsed), nil
}

// mergeEnhancement solo pisa los campos que el LLM devolvio con contenido.
func mergeEnhancement(base domain.SkinAnalysis, parsed enhancedAnalysis) domain.SkinAnalysis {
	out := base
	if len(parsed.PrimaryConcerns) > 0 {
		out.PrimaryConcerns = parsed.PrimaryConcerns
	}
	if r := parsed.SkinCareRoutine; r != nil {
		if len(r.Morning) > 0 {
			out.SkinCareRoutine.Morning = r.Morning
		}
		if len(r.Evening) > 0 {
			out.SkinCareRoutine.Evening = r.Evening
		}
		if r.Weekly != nil {
			out.SkinCareRoutine.Weekly = r.Weekly
		}
	}
	if len(parsed.Tips) > 0 {
		out.Tips = parsed.Tips
	}
	if parsed.AdditionalInsights != nil {
		out.AdditionalInsights = parsed.AdditionalInsights
	}
	out.EnhancedByAI = true
	return out
}

func buildEnhancementPrompt(profile domain.Profile, base domain.SkinAnalysis) (string, error) {
	current, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}

	var b strings.Builder
	b.WriteString("As a professional dermatologist, enhance this skincare analysis:\n\n")
	b.WriteString("SKIN PROFILE:\n")
	fmt.Fprintf(&b, "- Skin Type: %s\n", profile.SkinType)
	fmt.Fprintf(&b, "- Concerns: %s\n", strings.Join(profile.Concerns, ", "))
	fmt.Fprintf(&b, "- Finish Preference: %s\n", strings.Join(profile.FinishPreference, ", "))
	fmt.Fprintf(&b, "- Lifestyle: %s\n", strings.Join(profile.Lifestyle, ", "))
	fmt.Fprintf(&b, "- Budget: %s\n", profile.Budget)
	fmt.Fprintf(&b, "- Skin Tone: %s\n", profile.SkinTone)
	fmt.Fprintf(&b, "- Age Range: %s\n\n", profile.AgeRange)
	b.WriteString("CURRENT ANALYSIS:\n")
	b.Write(current)
	b.WriteString(`

Please provide an enhanced analysis in JSON format with more detailed, personalized recommendations:
{
  "primaryConcerns": ["enhanced concern analysis"],
  "skinCareRoutine": {
    "morning": ["detailed morning steps"],
    "evening": ["detailed evening steps"],
    "weekly": ["weekly treatments"]
  },
  "tips": ["5 personalized tips based on their profile"],
  "additionalInsights": {
    "skinCondition": "detailed skin condition analysis",
    "recommendedFocus": "specific areas to focus on",
    "avoidIngredients": ["ingredients to avoid"],
    "seekIngredients": ["beneficial ingredients"]
  }
}

Make the recommendations more specific to their skin type, age, and lifestyle. Return ONLY the JSON object.`)
	return b.String(), nil
}
