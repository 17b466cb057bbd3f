package http

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/faceanalysis"
	"metizcare/internal/llm"
	"metizcare/internal/service"
)

type testEnv struct {
	router   *gin.Engine
	jwt      *service.JWTService
	users    *mockUserRepo
	quizzes  *mockQuizRepo
	tips     *mockTipRepo
	analyzer *fakeAnalyzer
	llm      *llm.MockClient
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Clear Gel", Description: "anti-acne cleanser for breakouts", Category: "oily skin", Price: 20, Rating: 4.2, IsActive: true},
		{ID: "p2", Name: "Rich Cream", Description: "barrier moisturizer", Category: "cream", Price: 18, Rating: 4.8, IsActive: true},
		{ID: "p3", Name: "Golden Oil", Description: "warm golden glow oil", Category: "oil", Price: 60, Rating: 4.0, IsActive: true},
	}
}

func newTestEnv(faceLimit int) *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	env := &testEnv{
		jwt:      newTestJWT(),
		users:    newMockUserRepo(),
		quizzes:  &mockQuizRepo{},
		tips:     newMockTipRepo(domain.SkincareTip{ID: "t1", Title: "SPF daily", Category: "protection", IsActive: true}),
		analyzer: &fakeAnalyzer{},
		llm:      &llm.MockClient{Response: "Use sunscreen."},
	}
	products := &mockProductRepo{products: testCatalog()}

	userSvc := service.NewUserService(logger, env.users, nil)
	quizSvc := service.NewQuizService(env.quizzes, products, nil, service.NewQuizEnhancer(llm.NewDisabledClient(), logger), logger)
	faceSvc := service.NewFaceService(env.analyzer, products, nil, logger, 6)

	env.router = NewRouter(logger, RouterDeps{
		Users:       NewUserHandler(logger, userSvc, env.jwt),
		Products:    NewProductHandler(logger, service.NewProductService(products, 0)),
		Quiz:        NewQuizHandler(logger, quizSvc),
		Face:        NewFaceHandler(logger, faceSvc),
		Tips:        NewTipHandler(logger, service.NewTipService(env.tips, logger)),
		Assistant:   NewAssistantHandler(logger, service.NewAssistantService(env.llm, logger)),
		JWT:         env.jwt,
		FaceLimiter: service.NewMemoryRateLimiter(time.Minute, faceLimit),
	})
	return env
}

func TestRouterHealthAndMetrics(t *testing.T) {
	env := newTestEnv(10)

	rec := performRequest(env.router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	performRequest(env.router, http.MethodGet, "/api/products", nil)
	rec = performRequest(env.router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="/api/products"`) {
		t.Fatalf("expected request metrics labelled by route")
	}
}

func TestProductRoutes(t *testing.T) {
	env := newTestEnv(10)

	rec := performRequest(env.router, http.MethodGet, "/api/products?pageNumber=1", nil)
	var page service.ProductPage
	if rec.Code != http.StatusOK || decodeBody(rec, &page) != nil || page.Total != 3 {
		t.Fatalf("unexpected list response %d %s", rec.Code, rec.Body.String())
	}

	if rec := performRequest(env.router, http.MethodGet, "/api/products/p2", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := performRequest(env.router, http.MethodGet, "/api/products/missing", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAssistantChatRoute(t *testing.T) {
	env := newTestEnv(10)

	rec := performRequest(env.router, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "best spf?"}},
	})
	var body struct {
		Reply string `json:"reply"`
	}
	if rec.Code != http.StatusOK || decodeBody(rec, &body) != nil || body.Reply != "Use sunscreen." {
		t.Fatalf("unexpected chat response %d %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(env.router, http.MethodPost, "/api/ai/chat", map[string]any{"messages": []any{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty conversation, got %d", rec.Code)
	}

	rec = performRequest(env.router, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hi"}, {"role": "assistant", "content": "hello"}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when the last turn is from the assistant, got %d", rec.Code)
	}
}

func TestFaceAnalyzeRoute(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "ok", status: http.StatusOK},
		{name: "rejected", err: &faceanalysis.RejectedError{Message: "No face detected"}, status: http.StatusBadRequest},
		{name: "unavailable", err: faceanalysis.ErrServiceUnavailable, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(10)
			env.analyzer.result = faceanalysis.Result{Analysis: faceanalysis.Analysis{SkinTone: "medium", Undertone: "warm", Concerns: []string{"acne"}}}
			env.analyzer.err = tt.err

			rec := performRequest(env.router, http.MethodPost, "/api/face-analysis/analyze", map[string]string{"image": "data:image/png;base64,AAA"})
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d (%s)", tt.status, rec.Code, rec.Body.String())
			}
			if tt.name == "rejected" && !strings.Contains(rec.Body.String(), "No face detected") {
				t.Fatalf("expected rejection message, got %s", rec.Body.String())
			}
		})
	}
}

func TestFaceAnalyzeMissingImage(t *testing.T) {
	env := newTestEnv(10)
	rec := performRequest(env.router, http.MethodPost, "/api/face-analysis/analyze", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFaceAnalyzeRateLimited(t *testing.T) {
	env := newTestEnv(1)
	body := map[string]string{"image": "img"}

	if rec := performRequest(env.router, http.MethodPost, "/api/face-analysis/analyze", body); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	if rec := performRequest(env.router, http.MethodPost, "/api/face-analysis/analyze", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestFaceRecommendationsRequiresAuth(t *testing.T) {
	env := newTestEnv(10)
	path := "/api/face-analysis/recommendations?skinTone=medium&undertone=warm&concerns=acne"

	if rec := performRequest(env.router, http.MethodGet, path, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	auth := bearer(t, env.jwt, domain.User{ID: "u1", Email: "a@b.com"})
	rec := performRequest(env.router, http.MethodGet, path, nil, "Authorization", auth)
	var body struct {
		Recommendations []domain.RecommendedProduct `json:"recommendations"`
	}
	if rec.Code != http.StatusOK || decodeBody(rec, &body) != nil {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if len(body.Recommendations) != 3 || body.Recommendations[0].ProductID != "p1" {
		t.Fatalf("unexpected recommendations %+v", body.Recommendations)
	}
}
