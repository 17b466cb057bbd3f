package recommend

import (
	"testing"

	"metizcare/internal/domain"
)

func TestExplainFace(t *testing.T) {
	engine := NewEngine(nil)
	cases := []struct {
		name    string
		product domain.Product
		profile domain.Profile
		want    string
	}{
		{
			name:    "acne cleanser",
			product: domain.Product{Name: "Daily Cleanser"},
			profile: domain.Profile{Concerns: []string{"acne"}},
			want:    "Perfect for acne-prone skin - helps control breakouts and clear blemishes",
		},
		{
			name:    "concern tone and undertone",
			product: domain.Product{Name: "Golden Glow", Description: "light brightening veil"},
			profile: domain.Profile{Concerns: []string{"dullness"}, SkinTone: "fair", Undertone: "warm"},
			want: "Brightens dull skin and restores natural radiance. " +
				"Lightweight formula perfect for fair skin tones. " +
				"Warm undertones complement your golden complexion",
		},
		{
			name:    "wrinkles and fine lines share a sentence",
			product: domain.Product{Name: "Firming Night Cream"},
			profile: domain.Profile{Concerns: []string{"wrinkles", "fine_lines"}},
			want:    "Targets fine lines and wrinkles for a more youthful appearance",
		},
		{
			name:    "brand and category are not checked",
			product: domain.Product{Name: "Cream", Brand: "Soothing Labs", Category: "calming"},
			profile: domain.Profile{Concerns: []string{"redness"}},
			want:    DefaultFaceReason,
		},
		{
			name:    "no match",
			product: domain.Product{},
			profile: domain.Profile{SkinTone: "dark", Undertone: "cool"},
			want:    DefaultFaceReason,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Explain(tc.product, tc.profile, PathFace); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExplainFaceUsesFixedConcernOrder(t *testing.T) {
	engine := NewEngine(nil)
	product := domain.Product{Name: "Glow Cleanser", Description: "anti-acne brightening wash"}
	want := "Perfect for acne-prone skin - helps control breakouts and clear blemishes. " +
		"Brightens dull skin and restores natural radiance"

	for _, concerns := range [][]string{{"dullness", "acne"}, {"acne", "dullness"}} {
		got := engine.Explain(product, domain.Profile{Concerns: concerns}, PathFace)
		if got != want {
			t.Fatalf("concerns %v: expected %q, got %q", concerns, want, got)
		}
	}
}

func TestOrderConcernsKeepsUnknownLast(t *testing.T) {
	got := orderConcerns([]string{"custom", "pores", "acne", "acne"})
	want := []string{"acne", "pores", "custom"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestExplainQuiz(t *testing.T) {
	engine := NewEngine(nil)
	cases := []struct {
		name    string
		product domain.Product
		profile domain.Profile
		want    string
	}{
		{
			name:    "skin type and concerns",
			product: domain.Product{Category: "Oily skin care", Description: "targets acne and dark-spots"},
			profile: domain.Profile{SkinType: "oily", Concerns: []string{"acne", "dark-spots"}},
			want:    "Perfect for oily skin, Addresses acne, Addresses dark spots",
		},
		{
			name:    "only first two concerns are checked",
			product: domain.Product{Description: "helps with pores"},
			profile: domain.Profile{SkinType: "oily", Concerns: []string{"acne", "aging", "pores"}},
			want:    DefaultQuizReason,
		},
		{
			name:    "face cues are ignored",
			product: domain.Product{Name: "Anti-Acne Cleanser"},
			profile: domain.Profile{SkinType: "dry", Concerns: []string{"acne"}},
			want:    DefaultQuizReason,
		},
		{
			name:    "malformed product",
			product: domain.Product{},
			profile: domain.Profile{SkinType: "dry", Budget: "budget"},
			want:    DefaultQuizReason,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Explain(tc.product, tc.profile, PathQuiz); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExplainNeverEmpty(t *testing.T) {
	engine := NewEngine(nil)
	products := []domain.Product{{}, {Name: "x"}, {Description: "acne"}}
	profiles := []domain.Profile{{}, {Concerns: []string{"acne"}}, {SkinType: "oily"}}
	for _, p := range products {
		for _, f := range profiles {
			for _, path := range []Path{PathQuiz, PathFace} {
				if engine.Explain(p, f, path) == "" {
					t.Fatalf("empty explanation for %+v / %+v on %s", p, f, path)
				}
			}
		}
	}
}

func TestTaxonomyLookupsAreCopies(t *testing.T) {
	tax := DefaultTaxonomy()
	entry, ok := tax.Concern("acne")
	if !ok {
		t.Fatalf("expected acne entry")
	}
	entry.Keywords[0] = "mutated"

	again, _ := tax.Concern("acne")
	if again.Keywords[0] != "anti-acne" {
		t.Fatalf("taxonomy was mutated through a lookup")
	}
}

func TestNewTaxonomyIsIsolatedFromCaller(t *testing.T) {
	concerns := map[string]Entry{"acne": {Keywords: []string{"zit"}}}
	tax := NewTaxonomy(concerns, nil, nil)
	concerns["acne"].Keywords[0] = "changed"

	engine := NewEngine(tax)
	got := engine.Score(domain.Product{Name: "zit zapper"}, domain.Profile{Concerns: []string{"acne"}}, PathFace)
	if got != BaseScore+ConcernKeywordHit {
		t.Fatalf("expected custom taxonomy to score, got %d", got)
	}
}
