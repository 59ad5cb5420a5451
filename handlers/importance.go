package handlers

import (
	"net/http"

	"traffic-dashboard-api/predictor"

	"github.com/gin-gonic/gin"
)

type ImportanceHandler struct {
	model predictor.Model
}

func NewImportanceHandler(model predictor.Model) *ImportanceHandler {
	return &ImportanceHandler{model: model}
}

// GetImportances reports per-feature importance weights, sorted descending.
// Models without the capability get a 200 with available=false; this is an
// expected state, not a failure.
func (h *ImportanceHandler) GetImportances(c *gin.Context) {
	weights, ok := predictor.Importances(h.model)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"message":   "feature importance not available for this model",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available":   true,
		"importances": weights,
	})
}
