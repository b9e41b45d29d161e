package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedRouter(format string, out *bytes.Buffer) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(LoggerConfig{Format: format, Output: out}))
	r.GET("/ok", func(c *gin.Context) {
		c.Header(HeaderGenerated, "3")
		c.Header(HeaderSkipped, "1")
		c.String(http.StatusOK, "done")
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})
	return r
}

func TestRequestLogger_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := loggedRouter("json", &out)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, "/ok", entry.Path)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
	assert.Equal(t, 4, entry.BytesOut)
	assert.Equal(t, "3", entry.Generated)
	assert.Equal(t, "1", entry.Skipped)
	assert.Empty(t, entry.Error)
}

func TestRequestLogger_Pretty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := loggedRouter("pretty", &out)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	line := out.String()
	assert.Contains(t, line, "GET /fail -> 500")
	assert.Contains(t, line, `error="Error #01: boom\n"`)
	assert.NotContains(t, line, "generated=")
}
