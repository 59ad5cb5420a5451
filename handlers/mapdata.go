package handlers

import (
	"net/http"
	"strconv"

	"traffic-dashboard-api/dataset"

	"github.com/gin-gonic/gin"
)

const defaultMapSample = 500

type MapHandler struct {
	table *dataset.Table
}

func NewMapHandler(table *dataset.Table) *MapHandler {
	return &MapHandler{table: table}
}

type MapPoint struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Highway       string  `json:"highway"`
	TrafficVolume float64 `json:"traffic_volume"`
}

// GetMapPoints returns a random sample of record locations for the map layer.
// The sample is drawn fresh per request, so it is intentionally not cached.
func (h *MapHandler) GetMapPoints(c *gin.Context) {
	n := defaultMapSample
	if nStr := c.Query("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid n parameter, must be a positive integer"})
			return
		}
		n = parsed
	}

	sample := h.table.Sample(n)
	points := make([]MapPoint, len(sample))
	for i, rec := range sample {
		points[i] = MapPoint{
			Lat:           rec.Geometry.Lat,
			Lng:           rec.Geometry.Lon,
			Highway:       rec.Highway,
			TrafficVolume: rec.TrafficVolume,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": points})
}
