package domain

import "time"

// Product es un articulo del catalogo. El motor de recomendaciones solo lo lee.
type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Image        string    `json:"image"`
	CountInStock int       `json:"countInStock"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductSummary es el subconjunto de campos que se devuelve junto a una recomendacion.
type ProductSummary struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
}

// Summary recorta el producto a los campos que necesita la UI.
func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Brand:       p.Brand,
		Rating:      p.Rating,
	}
}
