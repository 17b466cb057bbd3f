package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"metizcare/internal/domain"
	"metizcare/internal/service"
)

type QuizHandler struct {
	logger *zap.Logger
	quiz   *service.QuizService
}

func NewQuizHandler(logger *zap.Logger, quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{logger: logger, quiz: quiz}
}

// Submit maneja POST /api/quiz/submit.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req struct {
		SessionID string         `json:"sessionId"`
		Responses domain.Profile `json:"responses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quiz request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// El quiz es publico; si hay token valido se asocia el usuario.
	var userID string
	if claims, ok := GetAuthClaims(c); ok {
		userID = claims.UserID
	}

	quiz, err := h.quiz.Submit(c.Request.Context(), service.SubmitQuizInput{
		SessionID: req.SessionID,
		UserID:    userID,
		Responses: req.Responses,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuiz) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("submit quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": quiz.SessionID,
		"analysis":  quiz.Analysis,
		"quizId":    quiz.ID,
	})
}

// GetBySession maneja GET /api/quiz/:sessionId.
func (h *QuizHandler) GetBySession(c *gin.Context) {
	quiz, err := h.quiz.GetBySession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz results not found"})
			return
		}
		h.logger.Error("get quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load quiz"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Stats maneja GET /api/quiz/stats.
func (h *QuizHandler) Stats(c *gin.Context) {
	stats, err := h.quiz.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("quiz stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
