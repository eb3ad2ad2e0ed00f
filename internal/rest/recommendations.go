package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"recomart/domain"
	"recomart/pkg/logger"
	"recomart/pkg/metrics"
)

type (
	RecommendationHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, customerID uint, maxResults int, userContext string) (domain.RecommendationResult, error)
	}

	RecommendationRequest struct {
		MaxResults int    `json:"max_results" validate:"omitempty,lte=20"`
		Context    string `json:"context" validate:"omitempty,max=500"`
	}
)

func NewRecommendationHandler(recommendService RecommendService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:         validator.New(),
		recommendService: recommendService,
		// engine already bounds each provider attempt; this covers DB work
		// plus both attempts
		timeout: 30 * time.Second,
	}
}

// Recommend serves POST /customers/:id/recommendations. Provider outages
// never surface here: the engine answers with the heuristic fallback and
// the request still returns 200.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid customer id"})
	}

	// body is optional
	var request RecommendationRequest
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed recommendation validation", err)
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
	}

	// default only when omitted; the engine clamps explicit non-positive
	// values to 1
	if request.MaxResults == 0 {
		request.MaxResults = 5
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendService.Recommend(ctx, uint(id), request.MaxResults, request.Context)
	if err != nil {
		return writeServiceError(c, err)
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
