package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"metizcare/internal/domain"
	"metizcare/internal/repository"
)

const defaultProductPageSize = 12

var ErrProductNotFound = errors.New("product not found")

// ProductPage sigue el formato de listado del catalogo.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
}

type ProductService struct {
	products repository.ProductRepository
	pageSize int
}

func NewProductService(products repository.ProductRepository, pageSize int) *ProductService {
	if pageSize <= 0 {
		pageSize = defaultProductPageSize
	}
	return &ProductService{products: products, pageSize: pageSize}
}

// List busca por nombre (case-insensitive) sobre productos activos.
func (s *ProductService) List(ctx context.Context, keyword string, page int) (ProductPage, error) {
	if page <= 0 {
		page = 1
	}
	keyword = strings.TrimSpace(keyword)
	products, total, err := s.products.List(ctx, keyword, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return ProductPage{
		Products: products,
		Page:     page,
		Pages:    (total + s.pageSize - 1) / s.pageSize,
		Total:    total,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.products.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}
