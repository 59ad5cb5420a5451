package handlers

import (
	"context"
	"net/http"
	"time"

	"traffic-dashboard-api/dataset"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
)

type RoadsHandler struct {
	table *dataset.Table
	cache *services.CacheService
}

func NewRoadsHandler(table *dataset.Table, cache *services.CacheService) *RoadsHandler {
	return &RoadsHandler{table: table, cache: cache}
}

// GetRoadTypes lists the distinct highway classifications in the dataset.
// This is the source for the dashboard's road-type selector.
func (h *RoadsHandler) GetRoadTypes(c *gin.Context) {
	const cacheKey = "roads:types"

	var cached struct {
		Data []string `json:"data"`
	}
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp := gin.H{"data": h.table.RoadTypes()}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}
