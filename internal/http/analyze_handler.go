package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/metrics"
	"taste-persona/internal/service"
)

// MissingFieldError indica un campo obligatorio ausente en el body.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// AnalyzeHandler expone POST /analyze.
type AnalyzeHandler struct {
	logger  *zap.Logger
	analyze *service.AnalyzeService
}

// NewAnalyzeHandler crea una instancia de AnalyzeHandler con dependencias necesarias.
func NewAnalyzeHandler(logger *zap.Logger, analyze *service.AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:  logger,
		analyze: analyze,
	}
}

type analyzeRequest struct {
	Movies    *string `json:"movies"`
	Music     *string `json:"music"`
	Brands    *string `json:"brands"`
	Gender    *string `json:"gender"`
	Language  *string `json:"language"`
	Variation *int    `json:"variation"`
}

// toInput valida los campos obligatorios en el mismo orden en que se usan.
func (r analyzeRequest) toInput() (domain.PreferenceInput, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"music", r.Music},
		{"movies", r.Movies},
		{"brands", r.Brands},
		{"gender", r.Gender},
	}
	for _, f := range required {
		if f.value == nil {
			return domain.PreferenceInput{}, &MissingFieldError{Field: f.name}
		}
	}

	in := domain.PreferenceInput{
		Movies:   *r.Movies,
		Music:    *r.Music,
		Brands:   *r.Brands,
		Gender:   *r.Gender,
		Language: domain.DefaultLanguageCode,
	}
	if r.Language != nil {
		in.Language = *r.Language
	}
	if r.Variation != nil {
		in.Variation = *r.Variation
	}
	return in, nil
}

// Analyze maneja POST /analyze. Cualquier falla se responde como 500 con detail.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	in, err := req.toInput()
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.analyze.Analyze(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.AnalyzeRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	c.JSON(http.StatusOK, result)
}

func (h *AnalyzeHandler) fail(c *gin.Context, err error) {
	metrics.AnalyzeRequests.WithLabelValues(metrics.OutcomeError).Inc()
	h.logger.Error("analysis failed",
		zap.Error(err),
		zap.String("request_id", requestIDFrom(c)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Analysis failed: " + err.Error()})
}
