package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/service"
)

type TipHandler struct {
	logger *zap.Logger
	tips   *service.TipService
}

func NewTipHandler(logger *zap.Logger, tips *service.TipService) *TipHandler {
	return &TipHandler{logger: logger, tips: tips}
}

// List maneja GET /api/skincare-tips.
func (h *TipHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := domain.TipFilter{
		SkinType:   c.Query("skinType"),
		Concerns:   splitCSV(c.Query("concerns")),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Featured:   c.Query("featured") == "true",
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}
	res, err := h.tips.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list tips failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list skincare tips"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get maneja GET /api/skincare-tips/:id.
func (h *TipHandler) Get(c *gin.Context) {
	tip, err := h.tips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTipError(c, err, "could not load skincare tip")
		return
	}
	c.JSON(http.StatusOK, tip)
}

// Create maneja POST /api/skincare-tips (admin).
func (h *TipHandler) Create(c *gin.Context) {
	var req service.TipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	tip, err := h.tips.Create(c.Request.Context(), req)
	if err != nil {
		h.writeTipError(c, err, "could not create skincare tip")
		return
	}
	c.JSON(http.StatusCreated, tip)
}

// Update maneja PUT /api/skincare-tips/:id (admin).
func (h *TipHandler) Update(c *gin.Context) {
	var req service.TipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	tip, err := h.tips.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeTipError(c, err, "could not update skincare tip")
		return
	}
	c.JSON(http.StatusOK, tip)
}

// Delete maneja DELETE /api/skincare-tips/:id (admin).
func (h *TipHandler) Delete(c *gin.Context) {
	if err := h.tips.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeTipError(c, err, "could not delete skincare tip")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skincare tip removed"})
}

// Like maneja POST /api/skincare-tips/:id/like.
func (h *TipHandler) Like(c *gin.Context) {
	likes, err := h.tips.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTipError(c, err, "could not like skincare tip")
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *TipHandler) Categories(c *gin.Context) {
	cats, err := h.tips.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("tip categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *TipHandler) Concerns(c *gin.Context) {
	concerns, err := h.tips.Concerns(c.Request.Context())
	if err != nil {
		h.logger.Error("tip concerns failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load concerns"})
		return
	}
	c.JSON(http.StatusOK, concerns)
}

func (h *TipHandler) writeTipError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTipNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "skincare tip not found"})
	case errors.Is(err, service.ErrInvalidTip):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err), zap.String("tip_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
