package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/service"
)

type ProductHandler struct {
	logger   *zap.Logger
	products *service.ProductService
}

func NewProductHandler(logger *zap.Logger, products *service.ProductService) *ProductHandler {
	return &ProductHandler{logger: logger, products: products}
}

// List maneja GET /api/products?keyword=&pageNumber=.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("pageNumber"))
	res, err := h.products.List(c.Request.Context(), c.Query("keyword"), page)
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get maneja GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("get product failed", zap.Error(err), zap.String("product_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
		return
	}
	c.JSON(http.StatusOK, p)
}
