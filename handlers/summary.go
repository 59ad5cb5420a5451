package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"traffic-dashboard-api/dataset"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Volume category bins, matching the dashboard's Low/Medium/High/Very High
// breakdown: (0,500], (500,1000], (1000,1500], (1500,max].
var categoryLabels = []string{"Low", "Medium", "High", "Very High"}
var categoryBounds = []float64{500, 1000, 1500}

type SummaryHandler struct {
	table *dataset.Table
	cache *services.CacheService
}

func NewSummaryHandler(table *dataset.Table, cache *services.CacheService) *SummaryHandler {
	return &SummaryHandler{table: table, cache: cache}
}

type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type SummaryResponse struct {
	Count         int             `json:"count"`
	MeanVolume    float64         `json:"mean_volume"`
	StdDevVolume  float64         `json:"stddev_volume"`
	MinVolume     float64         `json:"min_volume"`
	MaxVolume     float64         `json:"max_volume"`
	Categories    []CategoryCount `json:"categories"`
	HourlyProfile []float64       `json:"hourly_profile"`
}

// GetSummary returns the dataset statistics behind the dashboard's EDA and
// insights panels: volume moments, category breakdown, and the mean volume
// per hour of day, optionally scoped to one highway classification.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	highway := c.Query("highway")
	cacheKey := fmt.Sprintf("summary:%s", highway)

	var cached SummaryResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Count > 0 {
		c.JSON(http.StatusOK, cached)
		return
	}

	records := h.table.Filter(highway)
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records for the requested road type"})
		return
	}

	volumes := make([]float64, len(records))
	for i, rec := range records {
		volumes[i] = rec.TrafficVolume
	}

	counts := make([]int, len(categoryLabels))
	for _, v := range volumes {
		counts[categoryIndex(v)]++
	}
	categories := make([]CategoryCount, len(categoryLabels))
	for i, label := range categoryLabels {
		categories[i] = CategoryCount{Label: label, Count: counts[i]}
	}

	hourlySum := make([]float64, 24)
	hourlyN := make([]float64, 24)
	for _, rec := range records {
		if rec.Hour < 0 || rec.Hour > 23 {
			continue
		}
		hourlySum[rec.Hour] += rec.TrafficVolume
		hourlyN[rec.Hour]++
	}
	hourly := make([]float64, 24)
	for i := range hourly {
		if hourlyN[i] > 0 {
			hourly[i] = hourlySum[i] / hourlyN[i]
		}
	}

	resp := SummaryResponse{
		Count:         len(records),
		MeanVolume:    stat.Mean(volumes, nil),
		StdDevVolume:  stat.StdDev(volumes, nil),
		MinVolume:     floats.Min(volumes),
		MaxVolume:     floats.Max(volumes),
		Categories:    categories,
		HourlyProfile: hourly,
	}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}

func categoryIndex(v float64) int {
	for i, bound := range categoryBounds {
		if v <= bound {
			return i
		}
	}
	return len(categoryBounds)
}
