package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/faceanalysis"
	"metizcare/internal/recommend"
	"metizcare/internal/repository"
)

const defaultFaceAge = 25

// FaceAnalysisResult es la respuesta del analisis facial con sus recomendaciones.
type FaceAnalysisResult struct {
	Analysis        faceanalysis.Analysis       `json:"analysis"`
	AnnotatedImage  string                      `json:"annotatedImage,omitempty"`
	Recommendations []domain.RecommendedProduct `json:"recommendations"`
}

// FaceService combina el servicio externo de vision con el motor de recomendaciones.
type FaceService struct {
	analyzer faceanalysis.Analyzer
	products repository.ProductRepository
	engine   *recommend.Engine
	logger   *zap.Logger
	limit    int
}

func NewFaceService(
	analyzer faceanalysis.Analyzer,
	products repository.ProductRepository,
	engine *recommend.Engine,
	logger *zap.Logger,
	limit int,
) *FaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = recommend.NewEngine(nil)
	}
	if limit <= 0 {
		limit = recommend.DefaultLimit
	}
	return &FaceService{
		analyzer: analyzer,
		products: products,
		engine:   engine,
		logger:   logger,
		limit:    limit,
	}
}

// Analyze envia la imagen al servicio de vision y recomienda sobre el catalogo completo.
// Los errores de faceanalysis (ErrServiceUnavailable, RejectedError, ErrEmptyImage) se propagan envueltos.
func (s *FaceService) Analyze(ctx context.Context, image string) (FaceAnalysisResult, error) {
	res, err := s.analyzer.Analyze(ctx, image)
	if err != nil {
		return FaceAnalysisResult{}, fmt.Errorf("face analysis: %w", err)
	}

	recs, err := s.Recommend(ctx, ProfileFromAnalysis(res.Analysis))
	if err != nil {
		return FaceAnalysisResult{}, err
	}
	return FaceAnalysisResult{
		Analysis:        res.Analysis,
		AnnotatedImage:  res.AnnotatedImage,
		Recommendations: recs,
	}, nil
}

// Recommend aplica la politica facial sobre el catalogo completo, sin filtrar por isActive:
// solo productos con coincidencias, con relleno por rating.
func (s *FaceService) Recommend(ctx context.Context, profile domain.Profile) ([]domain.RecommendedProduct, error) {
	catalog, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	recs := s.engine.Select(catalog, profile, recommend.FacePolicy(s.limit))
	recordSelection(recommend.PathFace, recs)

	s.logger.Debug("face recommendations",
		zap.String("skin_tone", profile.SkinTone),
		zap.String("undertone", profile.Undertone),
		zap.Int("catalog_size", len(catalog)),
		zap.Int("recommended", len(recs)),
	)
	return toRecommendedProducts(recs), nil
}

// ProfileFromAnalysis traduce la salida del servicio de vision al perfil del motor.
func ProfileFromAnalysis(a faceanalysis.Analysis) domain.Profile {
	return domain.Profile{
		SkinTone:  a.SkinTone,
		Undertone: a.Undertone,
		Concerns:  a.Concerns,
		Age:       a.Age,
		Gender:    a.Gender,
	}.Normalize()
}

// FaceQuery son los parametros de /api/face-analysis/recommendations.
type FaceQuery struct {
	SkinTone  string
	Undertone string
	Concerns  string
	Age       int
	Gender    string
}

// ProfileFromQuery arma un perfil desde la query. concerns viene separado por comas y la edad por defecto es 25.
func ProfileFromQuery(q FaceQuery) domain.Profile {
	var concerns []string
	for _, c := range strings.Split(q.Concerns, ",") {
		if c = strings.TrimSpace(c); c != "" {
			concerns = append(concerns, c)
		}
	}
	age := q.Age
	if age <= 0 {
		age = defaultFaceAge
	}
	return domain.Profile{
		SkinTone:  q.SkinTone,
		Undertone: q.Undertone,
		Concerns:  concerns,
		Age:       age,
		Gender:    q.Gender,
	}.Normalize()
}
