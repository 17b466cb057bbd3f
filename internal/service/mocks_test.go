package service

import (
	"context"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"metizcare/internal/domain"
)

type mockProductRepo struct {
	products    []domain.Product
	err         error
	lastRange   domain.BudgetRange
	lastLimit   int
	lastKeyword string
	lastOffset  int
}

func (m *mockProductRepo) ListActiveByPriceRange(_ context.Context, r domain.BudgetRange, limit int) ([]domain.Product, error) {
	m.lastRange = r
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Product{}
	for _, p := range m.products {
		if p.IsActive && r.Contains(p.Price) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Product{}, m.products...), nil
}

func (m *mockProductRepo) List(_ context.Context, keyword string, offset, limit int) ([]domain.Product, int, error) {
	m.lastKeyword = keyword
	m.lastOffset = offset
	m.lastLimit = limit
	if m.err != nil {
		return nil, 0, m.err
	}
	matched := []domain.Product{}
	for _, p := range m.products {
		if keyword == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			matched = append(matched, p)
		}
	}
	total := len(matched)
	if offset >= len(matched) {
		return []domain.Product{}, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
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
	saved     []domain.QuizResponse
	createErr error
	listErr   error
}

func (m *mockQuizRepo) Create(_ context.Context, quiz domain.QuizResponse) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.saved = append(m.saved, quiz)
	return nil
}

func (m *mockQuizRepo) GetActiveBySessionID(_ context.Context, sessionID string) (domain.QuizResponse, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].SessionID == sessionID && m.saved[i].IsActive {
			return m.saved[i], nil
		}
	}
	return domain.QuizResponse{}, pgx.ErrNoRows
}

func (m *mockQuizRepo) ListActiveResponses(_ context.Context) ([]domain.Profile, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []domain.Profile{}
	for _, q := range m.saved {
		if q.IsActive {
			out = append(out, q.Responses)
		}
	}
	return out, nil
}

type mockTipRepo struct {
	tips       map[string]domain.SkincareTip
	lastFilter domain.TipFilter
}

func newMockTipRepo(tips ...domain.SkincareTip) *mockTipRepo {
	m := &mockTipRepo{tips: make(map[string]domain.SkincareTip)}
	for _, t := range tips {
		m.tips[t.ID] = t
	}
	return m
}

func (m *mockTipRepo) List(_ context.Context, filter domain.TipFilter) ([]domain.SkincareTip, int, error) {
	m.lastFilter = filter
	out := []domain.SkincareTip{}
	for _, t := range m.tips {
		if t.IsActive {
			out = append(out, t)
		}
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
	if _, ok := m.tips[tip.ID]; !ok {
		return pgx.ErrNoRows
	}
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
	return m.distinct(func(t domain.SkincareTip) []string { return []string{t.Category} }), nil
}

func (m *mockTipRepo) DistinctConcerns(_ context.Context) ([]string, error) {
	return m.distinct(func(t domain.SkincareTip) []string { return t.Concerns }), nil
}

func (m *mockTipRepo) distinct(values func(domain.SkincareTip) []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range m.tips {
		for _, v := range values(t) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}
