package faceanalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"metizcare/internal/metrics"
)

const breakerName = "face-analysis"

var (
	// ErrServiceUnavailable cubre caidas, timeouts, 5xx y circuito abierto.
	ErrServiceUnavailable = errors.New("face analysis service unavailable")
	// ErrAnalysisRejected indica que el servicio no pudo analizar la imagen (sin cara, varias caras, etc.).
	ErrAnalysisRejected = errors.New("face analysis rejected")
	ErrEmptyImage       = errors.New("image is required")
)

// RejectedError conserva el mensaje del servicio externo para devolverlo al usuario.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAnalysisRejected, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrAnalysisRejected }

// Analysis es el resultado crudo del servicio de vision.
type Analysis struct {
	SkinTone          string          `json:"skin_tone"`
	Undertone         string          `json:"undertone"`
	Concerns          []string        `json:"concerns"`
	EyeShape          string          `json:"eye_shape,omitempty"`
	LipFullness       string          `json:"lip_fullness,omitempty"`
	Emotion           string          `json:"emotion,omitempty"`
	EmotionConfidence float64         `json:"emotion_confidence,omitempty"`
	Age               int             `json:"age,omitempty"`
	Gender            string          `json:"gender,omitempty"`
	Boxes             json.RawMessage `json:"boxes,omitempty"`
	Stats             json.RawMessage `json:"stats,omitempty"`
}

// Result agrupa el analisis y la imagen anotada que devuelve el servicio.
type Result struct {
	Analysis       Analysis `json:"analysis"`
	AnnotatedImage string   `json:"annotatedImage,omitempty"`
}

type analyzeRequest struct {
	Image string `json:"image"`
	Fast  bool   `json:"fast,omitempty"`
}

type analyzeResponse struct {
	Success        bool     `json:"success"`
	Analysis       Analysis `json:"analysis"`
	AnnotatedImage string   `json:"annotatedImage"`
	Error          string   `json:"error"`
}

// Analyzer es la dependencia que consume FaceService.
type Analyzer interface {
	Analyze(ctx context.Context, image string) (Result, error)
}

// Client llama al servicio externo de analisis facial protegido por un circuit breaker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[Result]
	logger     *zap.Logger
}

// NewClient crea el cliente. El breaker abre con >= 60% de fallas sobre al menos 5 requests
// y vuelve a probar tras 30 segundos.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		// Una imagen rechazada es un error del usuario, no del servicio.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrAnalysisRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
	return c
}

// Analyze envia la imagen (data URL base64) y devuelve el analisis.
func (c *Client) Analyze(ctx context.Context, image string) (Result, error) {
	if strings.TrimSpace(image) == "" {
		return Result{}, ErrEmptyImage
	}

	result, err := c.cb.Execute(func() (Result, error) {
		return c.doAnalyze(ctx, image)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		case errors.Is(err, ErrAnalysisRejected):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
			return Result{}, err
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			return Result{}, err
		}
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return result, nil
}

func (c *Client) doAnalyze(ctx context.Context, image string) (Result, error) {
	payload, err := json.Marshal(analyzeRequest{Image: image})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.FaceServiceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn("face analysis request failed", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read body: %v", ErrServiceUnavailable, err)
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return Result{}, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
		}
		return Result{}, fmt.Errorf("%w: invalid response: %v", ErrServiceUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{}, fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode, parsed.Error)
	}
	if resp.StatusCode >= http.StatusBadRequest || !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "analysis failed"
		}
		return Result{}, &RejectedError{Message: msg}
	}

	return Result{Analysis: parsed.Analysis, AnnotatedImage: parsed.AnnotatedImage}, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
