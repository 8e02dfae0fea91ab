package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/usecase"
)

// ModelHandler handles prediction service HTTP requests
type ModelHandler struct {
	predictionUC  usecase.PredictionUsecase
	verboseErrors bool
}

// NewModelHandler creates a new model handler. verboseErrors controls
// whether inference failures carry their cause.
func NewModelHandler(predictionUC usecase.PredictionUsecase, verboseErrors bool) *ModelHandler {
	return &ModelHandler{predictionUC: predictionUC, verboseErrors: verboseErrors}
}

// Status handles GET /
func (h *ModelHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionUC.Health(c.Request.Context()))
}

// Predict handles POST /predict
func (h *ModelHandler) Predict(c *gin.Context) {
	input := usecase.NewPredictInput()
	if err := c.ShouldBindJSON(input); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, ValidationDetail(err))
		return
	}

	output, err := h.predictionUC.Predict(c.Request.Context(), input)
	if err != nil {
		HandleModelError(c, err, h.verboseErrors)
		return
	}

	c.JSON(http.StatusOK, output)
}

// Reload handles POST /reload-model
func (h *ModelHandler) Reload(c *gin.Context) {
	output, err := h.predictionUC.Reload(c.Request.Context())
	if err != nil {
		HandleModelError(c, err, h.verboseErrors)
		return
	}

	c.JSON(http.StatusOK, output)
}
