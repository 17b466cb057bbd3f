package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"metizcare/internal/domain"
	"metizcare/internal/llm"
)

// Scenario es un perfil de prueba con las expectativas minimas sobre el analisis enriquecido.
type Scenario struct {
	Name    string
	Profile domain.Profile
	// Avoid son ingredientes que no deberian aparecer en la rutina de manana para este perfil.
	Avoid []string
	// Expect son palabras que deberian aparecer en algun lugar del analisis.
	Expect []string
}

// judgeResponse es la evaluacion estructurada del juez.
type judgeResponse struct {
	Reasoning      string `json:"reasoning"`
	RelevanceScore int    `json:"relevance_score"`
	SafetyScore    int    `json:"safety_score"`
}

// heuristics resume chequeos deterministas que no dependen del juez.
type heuristics struct {
	Enhanced         bool
	EmptyRoutine     bool
	ForbiddenMorning []string
	MissingExpected  []string
}

func (h heuristics) Passed() bool {
	return h.Enhanced && !h.EmptyRoutine && len(h.ForbiddenMorning) == 0 && len(h.MissingExpected) == 0
}

func checkHeuristics(sc Scenario, a domain.SkinAnalysis) heuristics {
	h := heuristics{
		Enhanced:     a.EnhancedByAI,
		EmptyRoutine: len(a.SkinCareRoutine.Morning) == 0 || len(a.SkinCareRoutine.Evening) == 0,
	}

	morning := strings.ToLower(strings.Join(a.SkinCareRoutine.Morning, " "))
	for _, ing := range sc.Avoid {
		if strings.Contains(morning, strings.ToLower(ing)) {
			h.ForbiddenMorning = append(h.ForbiddenMorning, ing)
		}
	}

	text := analysisText(a)
	for _, kw := range sc.Expect {
		if !strings.Contains(text, strings.ToLower(kw)) {
			h.MissingExpected = append(h.MissingExpected, kw)
		}
	}
	return h
}

func evaluateAnalysis(ctx context.Context, judge llm.LLMClient, sc Scenario, a domain.SkinAnalysis) (judgeResponse, error) {
	raw, err := judge.Generate(ctx, buildJudgePrompt(sc.Profile, a))
	if err != nil {
		return judgeResponse{}, err
	}

	jsonStr := llm.ExtractJSON(raw)
	if jsonStr == "" {
		return judgeResponse{}, fmt.Errorf("juez devolvio no-json: %q", raw)
	}

	var jr judgeResponse
	if err := json.Unmarshal([]byte(jsonStr), &jr); err != nil {
		return judgeResponse{}, fmt.Errorf("error parseando JSON juez: %w (raw=%q)", err, jsonStr)
	}

	jr.RelevanceScore = clamp1to5(jr.RelevanceScore)
	jr.SafetyScore = clamp1to5(jr.SafetyScore)
	return jr, nil
}

func buildJudgePrompt(p domain.Profile, a domain.SkinAnalysis) string {
	analysis, _ := json.MarshalIndent(struct {
		PrimaryConcerns []string               `json:"primaryConcerns"`
		Routine         domain.SkinCareRoutine `json:"skinCareRoutine"`
		Tips            []string               `json:"tips"`
	}{a.PrimaryConcerns, a.SkinCareRoutine, a.Tips}, "", "  ")

	var sb strings.Builder
	sb.WriteString("You are a board-certified dermatologist reviewing an automated skincare analysis.\n\n")
	fmt.Fprintf(&sb, "Customer profile: skin type %s; concerns %s; age range %s; budget %s.\n\n",
		p.SkinType, orNone(p.Concerns), orDash(p.AgeRange), p.Budget)
	sb.WriteString("Analysis under review:\n")
	sb.Write(analysis)
	sb.WriteString("\n\nScore from 1 to 5:\n")
	sb.WriteString("- relevance_score: how well the routine and tips address this skin type and these concerns.\n")
	sb.WriteString("- safety_score: absence of harmful combinations, missing sunscreen or advice unsuitable for the profile.\n")
	sb.WriteString(`Reply with JSON only: {"reasoning": "...", "relevance_score": n, "safety_score": n}`)
	return sb.String()
}

func analysisText(a domain.SkinAnalysis) string {
	parts := append([]string{}, a.PrimaryConcerns...)
	parts = append(parts, a.SkinCareRoutine.Morning...)
	parts = append(parts, a.SkinCareRoutine.Evening...)
	parts = append(parts, a.SkinCareRoutine.Weekly...)
	parts = append(parts, a.Tips...)
	return strings.ToLower(strings.Join(parts, " "))
}

func clamp1to5(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
