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
	"metizcare/internal/llm"
	"metizcare/internal/metrics"
	"metizcare/internal/recommend"
	"metizcare/internal/repository"
)

const defaultCatalogSnapshot = 20

var (
	ErrQuizNotFound = errors.New("quiz response not found")
	ErrInvalidQuiz  = errors.New("invalid quiz responses")
)

// QuizService resuelve el flujo del quiz: analisis, recomendaciones, enriquecimiento y persistencia.
type QuizService struct {
	quizzes      repository.QuizRepository
	products     repository.ProductRepository
	engine       *recommend.Engine
	enhancer     *QuizEnhancer
	logger       *zap.Logger
	limit        int
	catalogLimit int
}

type QuizServiceOption func(*QuizService)

// WithQuizLimits fija cuantos productos se recomiendan y cuantos se cargan del catalogo.
func WithQuizLimits(limit, catalogLimit int) QuizServiceOption {
	return func(s *QuizService) {
		if limit > 0 {
			s.limit = limit
		}
		if catalogLimit > 0 {
			s.catalogLimit = catalogLimit
		}
	}
}

func NewQuizService(
	quizzes repository.QuizRepository,
	products repository.ProductRepository,
	engine *recommend.Engine,
	enhancer *QuizEnhancer,
	logger *zap.Logger,
	opts ...QuizServiceOption,
) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = recommend.NewEngine(nil)
	}
	s := &QuizService{
		quizzes:      quizzes,
		products:     products,
		engine:       engine,
		enhancer:     enhancer,
		logger:       logger,
		limit:        recommend.DefaultLimit,
		catalogLimit: defaultCatalogSnapshot,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SubmitQuizInput struct {
	SessionID string
	UserID    string
	Responses domain.Profile
}

// Submit valida las respuestas antes de tocar el catalogo; un perfil invalido nunca llega al scorer.
func (s *QuizService) Submit(ctx context.Context, input SubmitQuizInput) (domain.QuizResponse, error) {
	if err := input.Responses.ValidateForQuiz(); err != nil {
		return domain.QuizResponse{}, fmt.Errorf("%w: %w", ErrInvalidQuiz, err)
	}
	profile := input.Responses.Normalize()

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	analysis := BuildSkinAnalysis(profile)

	budgetRange, _ := domain.RangeForBudget(profile.Budget)
	catalog, err := s.products.ListActiveByPriceRange(ctx, budgetRange, s.catalogLimit)
	if err != nil {
		return domain.QuizResponse{}, fmt.Errorf("load catalog: %w", err)
	}
	recs := s.engine.Select(catalog, profile, recommend.QuizPolicy(s.limit))
	recordSelection(recommend.PathQuiz, recs)

	analysis = s.enhance(ctx, profile, analysis)
	analysis.RecommendedProducts = toRecommendedProducts(recs)

	now := time.Now().UTC()
	quiz := domain.QuizResponse{
		ID:          uuid.NewString(),
		UserID:      strings.TrimSpace(input.UserID),
		SessionID:   sessionID,
		Responses:   profile,
		Analysis:    analysis,
		IsActive:    true,
		CompletedAt: now,
		CreatedAt:   now,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return domain.QuizResponse{}, fmt.Errorf("save quiz response: %w", err)
	}

	s.logger.Info("quiz submitted",
		zap.String("session_id", sessionID),
		zap.String("skin_type", profile.SkinType),
		zap.Int("catalog_size", len(catalog)),
		zap.Int("recommended", len(recs)),
		zap.Bool("enhanced", analysis.EnhancedByAI),
	)
	return quiz, nil
}

// enhance nunca falla: si el LLM no responde se devuelve el analisis basico.
func (s *QuizService) enhance(ctx context.Context, profile domain.Profile, analysis domain.SkinAnalysis) domain.SkinAnalysis {
	if s.enhancer == nil {
		return analysis
	}
	enhanced, err := s.enhancer.Enhance(ctx, profile, analysis)
	switch {
	case err == nil:
		metrics.QuizEnhancements.WithLabelValues("enhanced").Inc()
		return enhanced
	case errors.Is(err, llm.ErrDisabled):
		metrics.QuizEnhancements.WithLabelValues("disabled").Inc()
	default:
		metrics.QuizEnhancements.WithLabelValues("failed").Inc()
		s.logger.Warn("quiz enhancement failed, using basic analysis", zap.Error(err))
	}
	return analysis
}

func (s *QuizService) GetBySession(ctx context.Context, sessionID string) (domain.QuizResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.QuizResponse{}, ErrQuizNotFound
	}
	quiz, err := s.quizzes.GetActiveBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuizResponse{}, ErrQuizNotFound
		}
		return domain.QuizResponse{}, err
	}
	return quiz, nil
}

func (s *QuizService) Stats(ctx context.Context) (recommend.Stats, error) {
	responses, err := s.quizzes.ListActiveResponses(ctx)
	if err != nil {
		return recommend.Stats{}, fmt.Errorf("list quiz responses: %w", err)
	}
	return recommend.Aggregate(responses), nil
}

func toRecommendedProducts(recs []recommend.Recommendation) []domain.RecommendedProduct {
	out := make([]domain.RecommendedProduct, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.RecommendedProduct{
			ProductID:  r.Product.ID,
			Product:    r.Product.Summary(),
			Reason:     r.Reason,
			Priority:   string(r.Priority),
			Score:      r.Score,
			Backfilled: r.Backfilled,
		})
	}
	return out
}

func recordSelection(path recommend.Path, recs []recommend.Recommendation) {
	backfilled := 0
	for _, r := range recs {
		if r.Backfilled {
			backfilled++
		}
	}
	metrics.RecordRecommendations(path.String(), len(recs)-backfilled, backfilled)
}
