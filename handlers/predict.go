package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"traffic-dashboard-api/models"
	"traffic-dashboard-api/predictor"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PredictHandler struct {
	db    *gorm.DB
	cache *services.CacheService
	model predictor.Model
}

// NewPredictHandler wires the prediction endpoint. db may be nil, in which
// case prediction logging is skipped.
func NewPredictHandler(db *gorm.DB, cache *services.CacheService, model predictor.Model) *PredictHandler {
	return &PredictHandler{db: db, cache: cache, model: model}
}

// PredictRequest mirrors the dashboard's input widgets, including their
// ranges: hour slider 0-23, lanes 1-8, weekday selector 0-6. Temperature,
// rain and speed limit are free-form numbers and pass through to the model
// unclamped. Pointers so zero values survive the required check.
type PredictRequest struct {
	Hour     *int     `json:"hour" binding:"required,min=0,max=23"`
	Temp     *float64 `json:"temp" binding:"required"`
	Rain1h   *float64 `json:"rain_1h" binding:"required"`
	Lanes    *int     `json:"lanes" binding:"required,min=1,max=8"`
	MaxSpeed *float64 `json:"maxspeed" binding:"required"`
	Weekday  *int     `json:"weekday" binding:"required,min=0,max=6"`
}

type PredictResponse struct {
	PredictedVolume float64           `json:"predicted_volume"`
	ModelVersion    string            `json:"model_version"`
	Features        predictor.Request `json:"features"`
}

// Predict builds the seven-feature row from the request body, scores it, and
// records the outcome. An inference failure is terminal for this request only.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := predictor.BuildRequest(*req.Hour, *req.Temp, *req.Rain1h, *req.Lanes, *req.MaxSpeed, *req.Weekday)

	start := time.Now()
	volume, err := h.model.Predict(row)
	predictionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		predictionsFailed.Inc()
		if errors.Is(err, predictor.ErrInference) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "model inference failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}
	predictionsServed.Inc()

	entry := models.PredictionLog{
		TS:              time.Now().UTC(),
		Hour:            *req.Hour,
		Temp:            *req.Temp,
		Rain1h:          *req.Rain1h,
		Lanes:           *req.Lanes,
		MaxSpeed:        *req.MaxSpeed,
		Weekday:         *req.Weekday,
		IsWeekend:       int(row.IsWeekend),
		PredictedVolume: volume,
		ModelVersion:    h.model.Version(),
	}
	if h.db != nil {
		if err := h.db.Create(&entry).Error; err != nil {
			log.Printf("prediction log insert failed: %v", err)
		}
	}
	go func() {
		if err := h.cache.Publish(context.Background(), "traffic:predictions", entry); err != nil {
			log.Printf("prediction publish failed: %v", err)
		}
	}()

	c.JSON(http.StatusOK, PredictResponse{
		PredictedVolume: volume,
		ModelVersion:    h.model.Version(),
		Features:        row,
	})
}
