package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		page, size int
		offset     uint64
		limit      int
	}{
		{1, 10, 0, 10},
		{3, 20, 40, 20},
		{0, 5, 0, 5},
		{2, 0, 10, DefaultPageSize},
		{2, MaxPageSize + 1, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := CalculateOffsetLimit(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset, "page %d size %d", tt.page, tt.size)
		assert.Equal(t, tt.limit, limit, "page %d size %d", tt.page, tt.size)
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(21, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	info = NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, info.CurrentPage, "current page is clamped to the last page")
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query      string
		page, size int
	}{
		{"", 1, DefaultPageSize},
		{"?page=4&size=25", 4, 25},
		{"?page=-1&size=abc", 1, DefaultPageSize},
		{"?size=1000", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/elections"+tt.query, nil)
		page, size := ParsePaginationParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.size, size, tt.query)
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
