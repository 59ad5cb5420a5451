package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"traffic-dashboard-api/dataset"
	"traffic-dashboard-api/services"

	"github.com/gin-gonic/gin"
)

type RecordsHandler struct {
	table *dataset.Table
	cache *services.CacheService
}

func NewRecordsHandler(table *dataset.Table, cache *services.CacheService) *RecordsHandler {
	return &RecordsHandler{table: table, cache: cache}
}

// GetRecords returns a cursor-paginated slice of the dataset, newest first,
// optionally filtered by highway classification.
func (h *RecordsHandler) GetRecords(c *gin.Context) {
	p := ParsePagination(c)
	highway := c.Query("highway")

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("records:%s:%d:%s", highway, p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	// The table is sorted newest first, so records at or after the cursor
	// form a prefix.
	recs := h.table.Filter(highway)
	if p.Before != nil {
		for len(recs) > 0 && !recs[0].DateTime.Before(*p.Before) {
			recs = recs[1:]
		}
	}

	end := p.Limit
	if end > len(recs) {
		end = len(recs)
	}
	// The cursor is exclusive on date_time, so a timestamp shared across a
	// page boundary would lose its remaining rows. Keep the whole group on
	// this page, even past the limit.
	for end > 0 && end < len(recs) && recs[end].DateTime.Equal(recs[end-1].DateTime) {
		end++
	}

	rows := recs[:end]
	hasMore := end < len(recs)

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].DateTime.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}
