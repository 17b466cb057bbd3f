package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/repository"
)

const (
	defaultTipPageSize = 12
	maxTipPageSize     = 100
)

var (
	ErrTipNotFound = errors.New("skincare tip not found")
	ErrInvalidTip  = errors.New("invalid skincare tip")
)

var (
	tipSkinTypes    = setOf("all", "oily", "dry", "combination", "sensitive", "normal")
	tipCategories   = setOf("cleansing", "moisturizing", "protection", "treatment", "lifestyle", "ingredients")
	tipDifficulties = setOf("beginner", "intermediate", "advanced")
	tipConcerns     = setOf("acne", "aging", "dark-spots", "dryness", "oiliness", "sensitivity", "dullness", "uneven-tone", "pores", "hydration")
)

// TipService gestiona el contenido editorial de tips de cuidado de la piel.
type TipService struct {
	tips   repository.TipRepository
	logger *zap.Logger
}

func NewTipService(tips repository.TipRepository, logger *zap.Logger) *TipService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TipService{tips: tips, logger: logger}
}

// TipPage es una pagina del listado.
type TipPage struct {
	Tips  []domain.SkincareTip `json:"tips"`
	Page  int                  `json:"page"`
	Pages int                  `json:"pages"`
	Total int                  `json:"total"`
}

func (s *TipService) List(ctx context.Context, filter domain.TipFilter) (TipPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultTipPageSize
	}
	if filter.Limit > maxTipPageSize {
		filter.Limit = maxTipPageSize
	}
	filter.SkinType = strings.ToLower(strings.TrimSpace(filter.SkinType))
	filter.Search = strings.TrimSpace(filter.Search)

	tips, total, err := s.tips.List(ctx, filter)
	if err != nil {
		return TipPage{}, fmt.Errorf("list tips: %w", err)
	}
	return TipPage{
		Tips:  tips,
		Page:  filter.Page,
		Pages: (total + filter.Limit - 1) / filter.Limit,
		Total: total,
	}, nil
}

// Get devuelve un tip activo y cuenta la vista.
func (s *TipService) Get(ctx context.Context, id string) (domain.SkincareTip, error) {
	tip, err := s.tips.IncrementViews(ctx, id)
	if err != nil {
		return domain.SkincareTip{}, mapTipErr(err)
	}
	return tip, nil
}

func (s *TipService) Like(ctx context.Context, id string) (int, error) {
	tip, err := s.tips.IncrementLikes(ctx, id)
	if err != nil {
		return 0, mapTipErr(err)
	}
	return tip.Likes, nil
}

// TipInput es el cuerpo de creacion y actualizacion. En updates, los campos nil se conservan.
type TipInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	FullContent *string   `json:"fullContent"`
	SkinType    *string   `json:"skinType"`
	Concerns    *[]string `json:"concerns"`
	Category    *string   `json:"category"`
	Difficulty  *string   `json:"difficulty"`
	Duration    *string   `json:"duration"`
	Image       *string   `json:"image"`
	Icon        *string   `json:"icon"`
	Tags        *[]string `json:"tags"`
	Featured    *bool     `json:"featured"`
	IsActive    *bool     `json:"isActive"`
}

func (s *TipService) Create(ctx context.Context, input TipInput) (domain.SkincareTip, error) {
	now := time.Now().UTC()
	tip := domain.SkincareTip{
		ID:         uuid.NewString(),
		SkinType:   domain.TipSkinTypeAll,
		Concerns:   []string{},
		Difficulty: domain.TipDifficultyBeginner,
		Tags:       []string{},
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	applyTipInput(&tip, input)
	if err := validateTip(tip); err != nil {
		return domain.SkincareTip{}, err
	}
	if err := s.tips.Create(ctx, tip); err != nil {
		return domain.SkincareTip{}, fmt.Errorf("create tip: %w", err)
	}
	s.logger.Info("skincare tip created", zap.String("tip_id", tip.ID), zap.String("category", tip.Category))
	return tip, nil
}

func (s *TipService) Update(ctx context.Context, id string, input TipInput) (domain.SkincareTip, error) {
	tip, err := s.tips.GetByID(ctx, id)
	if err != nil {
		return domain.SkincareTip{}, mapTipErr(err)
	}
	applyTipInput(&tip, input)
	tip.UpdatedAt = time.Now().UTC()
	if err := validateTip(tip); err != nil {
		return domain.SkincareTip{}, err
	}
	if err := s.tips.Update(ctx, tip); err != nil {
		return domain.SkincareTip{}, mapTipErr(err)
	}
	return tip, nil
}

func (s *TipService) Delete(ctx context.Context, id string) error {
	if err := s.tips.Delete(ctx, id); err != nil {
		return mapTipErr(err)
	}
	s.logger.Info("skincare tip deleted", zap.String("tip_id", id))
	return nil
}

func (s *TipService) Categories(ctx context.Context) ([]string, error) {
	return s.tips.DistinctCategories(ctx)
}

func (s *TipService) Concerns(ctx context.Context) ([]string, error) {
	return s.tips.DistinctConcerns(ctx)
}

// applyTipInput ignora strings vacios en los campos de texto requeridos, igual que un PATCH parcial.
func applyTipInput(tip *domain.SkincareTip, in TipInput) {
	setText := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = strings.TrimSpace(*v)
		}
	}
	setText(&tip.Title, in.Title)
	setText(&tip.Description, in.Description)
	setText(&tip.FullContent, in.FullContent)
	setText(&tip.Duration, in.Duration)
	if in.SkinType != nil && *in.SkinType != "" {
		tip.SkinType = strings.ToLower(strings.TrimSpace(*in.SkinType))
	}
	if in.Category != nil && *in.Category != "" {
		tip.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.Difficulty != nil && *in.Difficulty != "" {
		tip.Difficulty = strings.ToLower(strings.TrimSpace(*in.Difficulty))
	}
	if in.Concerns != nil {
		tip.Concerns = append([]string{}, *in.Concerns...)
	}
	if in.Tags != nil {
		tip.Tags = append([]string{}, *in.Tags...)
	}
	if in.Image != nil {
		tip.Image = *in.Image
	}
	if in.Icon != nil {
		tip.Icon = *in.Icon
	}
	if in.Featured != nil {
		tip.Featured = *in.Featured
	}
	if in.IsActive != nil {
		tip.IsActive = *in.IsActive
	}
}

func validateTip(tip domain.SkincareTip) error {
	switch {
	case tip.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidTip)
	case tip.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidTip)
	case tip.FullContent == "":
		return fmt.Errorf("%w: fullContent is required", ErrInvalidTip)
	case tip.Duration == "":
		return fmt.Errorf("%w: duration is required", ErrInvalidTip)
	case !tipSkinTypes[tip.SkinType]:
		return fmt.Errorf("%w: unknown skinType %q", ErrInvalidTip, tip.SkinType)
	case !tipCategories[tip.Category]:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTip, tip.Category)
	case !tipDifficulties[tip.Difficulty]:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidTip, tip.Difficulty)
	}
	for _, c := range tip.Concerns {
		if !tipConcerns[c] {
			return fmt.Errorf("%w: unknown concern %q", ErrInvalidTip, c)
		}
	}
	return nil
}

func mapTipErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTipNotFound
	}
	return err
}

func setOf(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
