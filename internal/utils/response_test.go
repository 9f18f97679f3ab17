package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestPaginationDefaults(t *testing.T) {
	page, pageSize := Pagination(queryContext(t, ""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)
}

func TestPaginationValues(t *testing.T) {
	page, pageSize := Pagination(queryContext(t, "page=3&pageSize=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)
}

func TestPaginationClamps(t *testing.T) {
	page, pageSize := Pagination(queryContext(t, "page=-1&pageSize=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, pageSize)

	_, pageSize = Pagination(queryContext(t, "pageSize=0"))
	assert.Equal(t, 10, pageSize)
}
