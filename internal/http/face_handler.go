package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/faceanalysis"
	"metizcare/internal/service"
)

type FaceHandler struct {
	logger *zap.Logger
	face   *service.FaceService
}

func NewFaceHandler(logger *zap.Logger, face *service.FaceService) *FaceHandler {
	return &FaceHandler{logger: logger, face: face}
}

// Analyze maneja POST /api/face-analysis/analyze.
func (h *FaceHandler) Analyze(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image provided"})
		return
	}

	res, err := h.face.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		var rejected *faceanalysis.RejectedError
		switch {
		case errors.As(err, &rejected):
			c.JSON(http.StatusBadRequest, gin.H{"error": rejected.Message})
		case errors.Is(err, faceanalysis.ErrEmptyImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no image provided"})
		case errors.Is(err, faceanalysis.ErrServiceUnavailable):
			h.logger.Warn("face service unavailable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "face analysis service is not available, please try again later"})
		default:
			h.logger.Error("face analysis failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze image"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"analysis":        res.Analysis,
		"annotatedImage":  res.AnnotatedImage,
		"recommendations": res.Recommendations,
	})
}

// Recommendations maneja GET /api/face-analysis/recommendations.
func (h *FaceHandler) Recommendations(c *gin.Context) {
	age, _ := strconv.Atoi(c.Query("age"))
	profile := service.ProfileFromQuery(service.FaceQuery{
		SkinTone:  c.Query("skinTone"),
		Undertone: c.Query("undertone"),
		Concerns:  c.Query("concerns"),
		Age:       age,
		Gender:    c.Query("gender"),
	})

	recs, err := h.face.Recommend(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("face recommendations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": recs})
}
