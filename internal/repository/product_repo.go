package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"metizcare/internal/domain"
)

// ProductRepository expone el catalogo en modo lectura.
type ProductRepository interface {
	ListActiveByPriceRange(ctx context.Context, r domain.BudgetRange, limit int) ([]domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	List(ctx context.Context, keyword string, offset, limit int) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
}

type PgProductRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

const productColumns = `id, name, description, brand, category, price, rating, num_reviews, image, count_in_stock, is_active, created_at`

// ListActiveByPriceRange devuelve el snapshot del quiz. El orden por created_at mantiene estable el desempate del ranker.
func (r *PgProductRepository) ListActiveByPriceRange(ctx context.Context, br domain.BudgetRange, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		  AND price >= $1::numeric
		  AND ($2::numeric = 0 OR price < $2::numeric)
		ORDER BY created_at ASC, id ASC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, br.Min, br.Max, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PgProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *PgProductRepository) List(ctx context.Context, keyword string, offset, limit int) ([]domain.Product, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM products
		WHERE is_active = TRUE
		  AND ($1::text = '' OR name ILIKE '%' || $1::text || '%')
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, keyword).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE
		  AND ($1::text = '' OR name ILIKE '%' || $1::text || '%')
		ORDER BY created_at DESC, id ASC
		OFFSET $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, keyword, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *PgProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	var p domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, err
	}
	return p, err
}

type rowScanner interface {
	Scan(...interface{}) error
}

// pgxRows es una interfaz minima sobre pgx.Rows para simplificar tests.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}

func scanProduct(row rowScanner, p *domain.Product) error {
	var description, brand, category, image *string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&brand,
		&category,
		&p.Price,
		&p.Rating,
		&p.NumReviews,
		&image,
		&p.CountInStock,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return err
	}
	p.Description = deref(description)
	p.Brand = deref(brand)
	p.Category = deref(category)
	p.Image = deref(image)
	return nil
}

func scanProducts(rows pgxRows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
