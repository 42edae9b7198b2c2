package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	assert.Equal(t, "user_id", toSnake("UserID"))
	assert.Equal(t, "start_time", toSnake("StartTime"))
	assert.Equal(t, "id", toSnake("ID"))
	assert.Equal(t, "name", toSnake("Name"))
}

func TestDescribeValidation(t *testing.T) {
	RegisterValidators()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	req := ReservationRequest{
		AmenityID: 1,
		Date:      "01/07/2024",
		StartTime: "9am",
		EndTime:   "10:00",
		Status:    "approved",
	}
	err := v.Struct(req)
	require.Error(t, err)

	msg := describeValidation(err.(validator.ValidationErrors))
	assert.Contains(t, msg, "user_id is required")
	assert.Contains(t, msg, "date must be YYYY-MM-DD")
	assert.Contains(t, msg, "start_time must be HH:MM or HH:MM:SS")
	assert.Contains(t, msg, "status failed on 'reservation_status'")
	assert.NotContains(t, msg, "end_time")
}

func TestPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 10},
		{"?page=3&page_size=25", 3, 25},
		{"?page=-1&page_size=500", 1, 10},
		{"?page=abc", 1, 10},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/condos/"+tt.query, nil)

		page, pageSize := pagination(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.pageSize, pageSize, tt.query)
	}
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "condo_id", Value: "0"}}

	_, ok := pathID(c, "condo_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "condo_id", Value: "12"}}
	id, ok := pathID(c, "condo_id")
	assert.True(t, ok)
	assert.Equal(t, uint(12), id)
}
