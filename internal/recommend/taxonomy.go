package recommend

// Entry agrupa las keywords de puntuacion de un atributo del perfil junto con
// las pistas y la frase que usa la explicacion del analisis facial.
type Entry struct {
	Keywords []string
	Cues     []string
	Reason   string
}

func (e Entry) clone() Entry {
	return Entry{
		Keywords: append([]string(nil), e.Keywords...),
		Cues:     append([]string(nil), e.Cues...),
		Reason:   e.Reason,
	}
}

// Taxonomy es la tabla inmutable compartida por el scorer y el generador de explicaciones.
type Taxonomy struct {
	concerns   map[string]Entry
	tones      map[string]Entry
	undertones map[string]Entry
}

// NewTaxonomy copia las tablas recibidas; el llamador puede reutilizar sus mapas sin afectar al motor.
func NewTaxonomy(concerns, tones, undertones map[string]Entry) *Taxonomy {
	return &Taxonomy{
		concerns:   copyEntries(concerns),
		tones:      copyEntries(tones),
		undertones: copyEntries(undertones),
	}
}

func copyEntries(in map[string]Entry) map[string]Entry {
	out := make(map[string]Entry, len(in))
	for k, v := range in {
		out[k] = v.clone()
	}
	return out
}

// Concern devuelve una copia de la entrada del concern.
func (t *Taxonomy) Concern(concern string) (Entry, bool) {
	e, ok := t.concerns[concern]
	return e.clone(), ok
}

// Tone devuelve una copia de la entrada del tono de piel.
func (t *Taxonomy) Tone(tone string) (Entry, bool) {
	e, ok := t.tones[tone]
	return e.clone(), ok
}

// Undertone devuelve una copia de la entrada del subtono.
func (t *Taxonomy) Undertone(undertone string) (Entry, bool) {
	e, ok := t.undertones[undertone]
	return e.clone(), ok
}

// explanationOrder fija el orden de las frases de concerns en la explicacion facial.
// Los concerns que no aparecen aqui van al final, en el orden del perfil.
var explanationOrder = []string{
	"acne", "wrinkles", "dullness", "redness",
	"fine-lines", "aging", "sensitivity", "dark-spots", "hyperpigmentation",
	"uneven-tone", "dryness", "hydration", "oiliness", "pores",
}

func orderConcerns(concerns []string) []string {
	present := make(map[string]bool, len(concerns))
	for _, c := range concerns {
		present[c] = true
	}
	out := make([]string, 0, len(concerns))
	for _, c := range explanationOrder {
		if present[c] {
			out = append(out, c)
			delete(present, c)
		}
	}
	for _, c := range concerns {
		if present[c] {
			out = append(out, c)
			delete(present, c)
		}
	}
	return out
}

var defaultTaxonomy = NewTaxonomy(
	map[string]Entry{
		"acne": {
			Keywords: []string{"anti-acne", "cleanser", "toner", "spot treatment"},
			Cues:     []string{"anti-acne", "cleanser"},
			Reason:   "Perfect for acne-prone skin - helps control breakouts and clear blemishes",
		},
		"wrinkles": {
			Keywords: []string{"anti-aging", "serum", "moisturizer", "eye cream"},
			Cues:     []string{"anti-aging", "firming"},
			Reason:   "Targets fine lines and wrinkles for a more youthful appearance",
		},
		"fine-lines": {
			Keywords: []string{"anti-aging", "serum", "eye cream", "peptide"},
			Cues:     []string{"anti-aging", "firming"},
			Reason:   "Targets fine lines and wrinkles for a more youthful appearance",
		},
		"aging": {
			Keywords: []string{"anti-aging", "firming", "collagen", "retinol"},
			Cues:     []string{"anti-aging", "firming", "retinol"},
			Reason:   "Supports firmer, more resilient skin as it matures",
		},
		"dullness": {
			Keywords: []string{"brightening", "vitamin c", "exfoliant", "glow"},
			Cues:     []string{"brightening", "glow"},
			Reason:   "Brightens dull skin and restores natural radiance",
		},
		"redness": {
			Keywords: []string{"soothing", "calming", "anti-inflammatory", "gentle"},
			Cues:     []string{"soothing", "calming"},
			Reason:   "Soothes irritated skin and reduces redness",
		},
		"sensitivity": {
			Keywords: []string{"soothing", "calming", "fragrance-free", "gentle"},
			Cues:     []string{"soothing", "fragrance-free"},
			Reason:   "Gentle formula that calms sensitive skin",
		},
		"dark-spots": {
			Keywords: []string{"brightening", "vitamin c", "niacinamide", "spot corrector"},
			Cues:     []string{"niacinamide", "spot corrector"},
			Reason:   "Fades dark spots for a more even complexion",
		},
		"hyperpigmentation": {
			Keywords: []string{"brightening", "niacinamide", "vitamin c", "even tone"},
			Cues:     []string{"niacinamide", "even tone"},
			Reason:   "Helps fade pigmentation and even out skin tone",
		},
		"uneven-tone": {
			Keywords: []string{"brightening", "even tone", "exfoliant", "toner"},
			Cues:     []string{"even tone", "brightening"},
			Reason:   "Evens out skin tone for a smoother complexion",
		},
		"dryness": {
			Keywords: []string{"hydrating", "moisturizer", "hyaluronic", "nourishing"},
			Cues:     []string{"hydrating", "nourishing"},
			Reason:   "Deeply hydrates and comforts dry skin",
		},
		"hydration": {
			Keywords: []string{"hydrating", "hyaluronic", "moisture", "water cream"},
			Cues:     []string{"hydrating", "hyaluronic"},
			Reason:   "Boosts hydration for plump, supple skin",
		},
		"oiliness": {
			Keywords: []string{"oil-free", "mattifying", "oil control", "clay"},
			Cues:     []string{"oil-free", "mattifying"},
			Reason:   "Controls excess oil and shine throughout the day",
		},
		"pores": {
			Keywords: []string{"pore", "clay", "salicylic", "exfoliant"},
			Cues:     []string{"pore", "salicylic"},
			Reason:   "Minimizes the look of enlarged pores",
		},
	},
	map[string]Entry{
		"fair": {
			Keywords: []string{"light coverage", "sheer", "tinted moisturizer"},
			Cues:     []string{"light"},
			Reason:   "Lightweight formula perfect for fair skin tones",
		},
		"light": {
			Keywords: []string{"light coverage", "sheer", "natural finish"},
			Cues:     []string{"sheer"},
			Reason:   "Sheer coverage that suits light skin tones",
		},
		"light-medium": {
			Keywords: []string{"medium coverage", "buildable"},
			Cues:     []string{"buildable"},
			Reason:   "Buildable coverage for light-medium skin tones",
		},
		"medium": {
			Keywords: []string{"full coverage", "long-lasting"},
			Cues:     []string{"long-lasting"},
			Reason:   "Long-lasting coverage for medium skin tones",
		},
		"olive": {
			Keywords: []string{"medium coverage", "olive", "neutral shade"},
			Cues:     []string{"olive"},
			Reason:   "Shades balanced for olive skin tones",
		},
		"tan": {
			Keywords: []string{"bronze", "full coverage", "warm shade"},
			Cues:     []string{"bronze"},
			Reason:   "Bronzed shades that flatter tan skin tones",
		},
		"dark": {
			Keywords: []string{"rich pigmentation", "deep tones"},
			Cues:     []string{"rich"},
			Reason:   "Rich pigmentation ideal for deeper skin tones",
		},
		"deep": {
			Keywords: []string{"rich pigmentation", "deep tones", "deep shade"},
			Cues:     []string{"rich", "deep"},
			Reason:   "Rich pigmentation ideal for deeper skin tones",
		},
	},
	map[string]Entry{
		"warm": {
			Keywords: []string{"golden", "peachy", "warm undertones"},
			Cues:     []string{"golden", "warm"},
			Reason:   "Warm undertones complement your golden complexion",
		},
		"cool": {
			Keywords: []string{"pink", "cool undertones", "blue-based"},
			Cues:     []string{"cool", "pink"},
			Reason:   "Cool undertones enhance your natural pink undertones",
		},
		"neutral": {
			Keywords: []string{"neutral", "balanced"},
			Cues:     []string{"neutral", "balanced"},
			Reason:   "Balanced shades that suit your neutral undertone",
		},
	},
)

// DefaultTaxonomy devuelve la taxonomia compartida del catalogo MetizCare.
func DefaultTaxonomy() *Taxonomy {
	return defaultTaxonomy
}
