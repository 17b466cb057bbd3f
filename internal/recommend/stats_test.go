package recommend

import (
	"fmt"
	"reflect"
	"testing"

	"metizcare/internal/domain"
)

func TestAggregate(t *testing.T) {
	records := []domain.Profile{
		{SkinType: "oily", Budget: "budget", Concerns: []string{"acne", "pores"}},
		{SkinType: "dry", Budget: "premium", Concerns: []string{"dryness", "acne"}},
		{SkinType: "oily", Budget: "budget", Concerns: []string{"pores", "dullness"}},
	}

	stats := Aggregate(records)
	if stats.TotalResponses != 3 {
		t.Fatalf("expected 3 responses, got %d", stats.TotalResponses)
	}
	if !reflect.DeepEqual(stats.SkinTypeDistribution, map[string]int{"oily": 2, "dry": 1}) {
		t.Fatalf("unexpected skin type distribution %v", stats.SkinTypeDistribution)
	}
	if !reflect.DeepEqual(stats.BudgetDistribution, map[string]int{"budget": 2, "premium": 1}) {
		t.Fatalf("unexpected budget distribution %v", stats.BudgetDistribution)
	}
	want := []ConcernCount{
		{Concern: "acne", Count: 2},
		{Concern: "pores", Count: 2},
		{Concern: "dryness", Count: 1},
		{Concern: "dullness", Count: 1},
	}
	if !reflect.DeepEqual(stats.TopConcerns, want) {
		t.Fatalf("expected %v, got %v", want, stats.TopConcerns)
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalResponses != 0 || len(stats.TopConcerns) != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.TopConcerns == nil || stats.SkinTypeDistribution == nil || stats.BudgetDistribution == nil {
		t.Fatalf("expected empty collections, not nil")
	}
}

func TestAggregateTopTenLimit(t *testing.T) {
	var concerns []string
	for i := 0; i < 12; i++ {
		concerns = append(concerns, fmt.Sprintf("c%02d", i))
	}
	records := []domain.Profile{
		{SkinType: "normal", Budget: "budget", Concerns: concerns},
		{SkinType: "normal", Budget: "budget", Concerns: []string{"c11"}},
	}

	stats := Aggregate(records)
	if len(stats.TopConcerns) != 10 {
		t.Fatalf("expected 10 concerns, got %d", len(stats.TopConcerns))
	}
	if stats.TopConcerns[0].Concern != "c11" || stats.TopConcerns[0].Count != 2 {
		t.Fatalf("expected c11 first, got %+v", stats.TopConcerns[0])
	}
	if stats.TopConcerns[1].Concern != "c00" || stats.TopConcerns[9].Concern != "c08" {
		t.Fatalf("expected first-seen order among ties, got %+v", stats.TopConcerns)
	}
}
