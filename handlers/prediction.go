package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"traffic-dashboard-api/models"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PredictionHistoryHandler struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewPredictionHistoryHandler(db *gorm.DB, cache *services.CacheService) *PredictionHistoryHandler {
	return &PredictionHistoryHandler{db: db, cache: cache}
}

// GetHistory returns the served-prediction log, newest first, with cursor
// pagination and an optional model_version filter.
func (h *PredictionHistoryHandler) GetHistory(c *gin.Context) {
	p := ParsePagination(c)
	modelVersion := c.Query("model_version")

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("predictions:%s:%d:%s", modelVersion, p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	query := h.db.Model(&models.PredictionLog{}).
		Order("ts DESC").
		Limit(p.Limit + 1)

	if p.Before != nil {
		query = query.Where("ts < ?", *p.Before)
	}
	if modelVersion != "" {
		query = query.Where("model_version = ?", modelVersion)
	}

	var rows []models.PredictionLog
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].TS.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	go h.cache.Set(context.Background(), cacheKey, resp, 30*time.Second)

	c.JSON(http.StatusOK, resp)
}
