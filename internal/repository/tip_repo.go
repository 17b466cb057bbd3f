package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"metizcare/internal/domain"
)

type TipRepository interface {
	List(ctx context.Context, filter domain.TipFilter) ([]domain.SkincareTip, int, error)
	GetByID(ctx context.Context, id string) (domain.SkincareTip, error)
	Create(ctx context.Context, tip domain.SkincareTip) error
	Update(ctx context.Context, tip domain.SkincareTip) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (domain.SkincareTip, error)
	IncrementLikes(ctx context.Context, id string) (domain.SkincareTip, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctConcerns(ctx context.Context) ([]string, error)
}

type PgTipRepository struct {
	pool *pgxpool.Pool
}

func NewPgTipRepository(pool *pgxpool.Pool) *PgTipRepository {
	return &PgTipRepository{pool: pool}
}

const tipColumns = `id, title, description, full_content, skin_type, concerns, category, difficulty, duration, image, icon, tags, is_active, featured, views, likes, created_at, updated_at`

// buildTipWhere arma el WHERE del listado; la busqueda se suma con AND para no pisar los demas filtros.
func buildTipWhere(filter domain.TipFilter) (string, []interface{}) {
	conds := []string{"is_active = TRUE"}
	var args []interface{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.SkinType != "" && filter.SkinType != domain.TipSkinTypeAll {
		conds = append(conds, fmt.Sprintf("(skin_type = %s OR skin_type = 'all')", next(filter.SkinType)))
	}
	if len(filter.Concerns) > 0 {
		conds = append(conds, fmt.Sprintf("concerns && %s::text[]", next(filter.Concerns)))
	}
	if filter.Category != "" {
		conds = append(conds, "category = "+next(filter.Category))
	}
	if filter.Difficulty != "" {
		conds = append(conds, "difficulty = "+next(filter.Difficulty))
	}
	if filter.Featured {
		conds = append(conds, "featured = TRUE")
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE %[1]s OR description ILIKE %[1]s OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE %[1]s))", p))
	}
	return strings.Join(conds, " AND "), args
}

func (r *PgTipRepository) List(ctx context.Context, filter domain.TipFilter) ([]domain.SkincareTip, int, error) {
	where, args := buildTipWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM skincare_tips WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM skincare_tips
		WHERE %s
		ORDER BY featured DESC, created_at DESC
		OFFSET %d
		LIMIT %d
	`, tipColumns, where, offset, filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tips := []domain.SkincareTip{}
	for rows.Next() {
		var tip domain.SkincareTip
		if err := scanTip(rows, &tip); err != nil {
			return nil, 0, err
		}
		tips = append(tips, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tips, total, nil
}

func (r *PgTipRepository) GetByID(ctx context.Context, id string) (domain.SkincareTip, error) {
	query := `SELECT ` + tipColumns + ` FROM skincare_tips WHERE id = $1`
	var tip domain.SkincareTip
	err := scanTip(r.pool.QueryRow(ctx, query, id), &tip)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SkincareTip{}, err
	}
	return tip, err
}

func (r *PgTipRepository) Create(ctx context.Context, tip domain.SkincareTip) error {
	const query = `
		INSERT INTO skincare_tips (
			id, title, description, full_content, skin_type, concerns, category, difficulty, duration, image, icon, tags, is_active, featured, views, likes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.pool.Exec(ctx, query,
		tip.ID,
		tip.Title,
		tip.Description,
		tip.FullContent,
		tip.SkinType,
		tip.Concerns,
		tip.Category,
		tip.Difficulty,
		tip.Duration,
		tip.Image,
		tip.Icon,
		tip.Tags,
		tip.IsActive,
		tip.Featured,
		tip.Views,
		tip.Likes,
		tip.CreatedAt,
		tip.UpdatedAt,
	)
	return err
}

func (r *PgTipRepository) Update(ctx context.Context, tip domain.SkincareTip) error {
	const query = `
		UPDATE skincare_tips SET
			title = $2, description = $3, full_content = $4, skin_type = $5, concerns = $6, category = $7,
			difficulty = $8, duration = $9, image = $10, icon = $11, tags = $12, is_active = $13, featured = $14,
			updated_at = $15
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		tip.ID,
		tip.Title,
		tip.Description,
		tip.FullContent,
		tip.SkinType,
		tip.Concerns,
		tip.Category,
		tip.Difficulty,
		tip.Duration,
		tip.Image,
		tip.Icon,
		tip.Tags,
		tip.IsActive,
		tip.Featured,
		tip.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgTipRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skincare_tips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementViews suma una vista solo a tips activos y devuelve el tip actualizado.
func (r *PgTipRepository) IncrementViews(ctx context.Context, id string) (domain.SkincareTip, error) {
	return r.increment(ctx, "views", id)
}

func (r *PgTipRepository) IncrementLikes(ctx context.Context, id string) (domain.SkincareTip, error) {
	return r.increment(ctx, "likes", id)
}

func (r *PgTipRepository) increment(ctx context.Context, column, id string) (domain.SkincareTip, error) {
	query := fmt.Sprintf(`
		UPDATE skincare_tips SET %[1]s = %[1]s + 1
		WHERE id = $1 AND is_active = TRUE
		RETURNING %[2]s
	`, column, tipColumns)
	var tip domain.SkincareTip
	err := scanTip(r.pool.QueryRow(ctx, query, id), &tip)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SkincareTip{}, err
	}
	return tip, err
}

func (r *PgTipRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT category FROM skincare_tips WHERE is_active = TRUE ORDER BY category`)
}

func (r *PgTipRepository) DistinctConcerns(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT c FROM skincare_tips, unnest(concerns) AS c WHERE is_active = TRUE ORDER BY c`)
}

func (r *PgTipRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanTip(row rowScanner, tip *domain.SkincareTip) error {
	return row.Scan(
		&tip.ID,
		&tip.Title,
		&tip.Description,
		&tip.FullContent,
		&tip.SkinType,
		&tip.Concerns,
		&tip.Category,
		&tip.Difficulty,
		&tip.Duration,
		&tip.Image,
		&tip.Icon,
		&tip.Tags,
		&tip.IsActive,
		&tip.Featured,
		&tip.Views,
		&tip.Likes,
		&tip.CreatedAt,
		&tip.UpdatedAt,
	)
}
