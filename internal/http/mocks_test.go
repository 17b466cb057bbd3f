package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"metizcare/internal/domain"
	"metizcare/internal/faceanalysis"
	"metizcare/internal/service"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type mockProductRepo struct {
	products []domain.Product
}

func (m *mockProductRepo) ListActiveByPriceRange(_ context.Context, r domain.BudgetRange, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range m.products {
		if p.IsActive && r.Contains(p.Price) && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product{}, m.products...), nil
}

func (m *mockProductRepo) List(_ context.Context, _ string, offset, limit int) ([]domain.Product, int, error) {
	if offset >= len(m.products) {
		return []domain.Product{}, len(m.products), nil
	}
	out := m.products[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, len(m.products), nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, pgx.ErrNoRows
}

type mockQuizRepo struct {
	saved []domain.QuizResponse
}

func (m *mockQuizRepo) Create(_ context.Context, quiz domain.QuizResponse) error {
	m.saved = append(m.saved, quiz)
	return nil
}

func (m *mockQuizRepo) GetActiveBySessionID(_ context.Context, sessionID string) (domain.QuizResponse, error) {
	for _, q := range m.saved {
		if q.SessionID == sessionID && q.IsActive {
			return q, nil
		}
	}
	return domain.QuizResponse{}, pgx.ErrNoRows
}

func (m *mockQuizRepo) ListActiveResponses(_ context.Context) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, q := range m.saved {
		out = append(out, q.Responses)
	}
	return out, nil
}

type mockTipRepo struct {
	tips map[string]domain.SkincareTip
}

func newMockTipRepo(tips ...domain.SkincareTip) *mockTipRepo {
	m := &mockTipRepo{tips: make(map[string]domain.SkincareTip)}
	for _, t := range tips {
		m.tips[t.ID] = t
	}
	return m
}

func (m *mockTipRepo) List(_ context.Context, _ domain.TipFilter) ([]domain.SkincareTip, int, error) {
	out := []domain.SkincareTip{}
	for _, t := range m.tips {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *mockTipRepo) GetByID(_ context.Context, id string) (domain.SkincareTip, error) {
	t, ok := m.tips[id]
	if !ok {
		return domain.SkincareTip{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *mockTipRepo) Create(_ context.Context, tip domain.SkincareTip) error {
	m.tips[tip.ID] = tip
	return nil
}

func (m *mockTipRepo) Update(_ context.Context, tip domain.SkincareTip) error {
	m.tips[tip.ID] = tip
	return nil
}

func (m *mockTipRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tips[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.tips, id)
	return nil
}

func (m *mockTipRepo) IncrementViews(_ context.Context, id string) (domain.SkincareTip, error) {
	t, ok := m.tips[id]
	if !ok || !t.IsActive {
		return domain.SkincareTip{}, pgx.ErrNoRows
	}
	t.Views++
	m.tips[id] = t
	return t, nil
}

func (m *mockTipRepo) IncrementLikes(_ context.Context, id string) (domain.SkincareTip, error) {
	t, ok := m.tips[id]
	if !ok || !t.IsActive {
		return domain.SkincareTip{}, pgx.ErrNoRows
	}
	t.Likes++
	m.tips[id] = t
	return t, nil
}

func (m *mockTipRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return []string{"cleansing"}, nil
}

func (m *mockTipRepo) DistinctConcerns(_ context.Context) ([]string, error) {
	return []string{"acne"}, nil
}

type fakeAnalyzer struct {
	result faceanalysis.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (faceanalysis.Result, error) {
	return f.result, f.err
}

func newTestJWT() *service.JWTService {
	return service.NewJWTService("secret", 15*time.Minute, time.Hour, service.NewMemoryRefreshTokenStore())
}

func bearer(t interface{ Fatalf(string, ...any) }, jwtSvc *service.JWTService, user domain.User) string {
	pair, err := jwtSvc.GeneratePair(context.Background(), user)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return "Bearer " + pair.AccessToken
}

func performRequest(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}
