package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-invoice2pdf"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status   int            `json:"status"`
	Message  string         `json:"message"`
	Missing  []string       `json:"missing,omitempty"`  // absent required columns
	Failures []FailureEntry `json:"failures,omitempty"` // skipped rows when nothing was generated
}

// FailureEntry describes one skipped row.
type FailureEntry struct {
	Row    int    `json:"row"` // 1-based
	Reason string `json:"reason"`
}

// respondWithError sends a plain error response.
func respondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Status: status, Message: message})
}

// respondWithSchemaError sends the missing columns of a rejected table.
func respondWithSchemaError(c *gin.Context, err *invoice2pdf.SchemaError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Status:  http.StatusUnprocessableEntity,
		Message: err.Error(),
		Missing: err.Missing,
	})
}

// respondWithFailures sends every skipped row of a batch that produced nothing.
func respondWithFailures(c *gin.Context, message string, failures []invoice2pdf.RowFailure) {
	entries := make([]FailureEntry, len(failures))
	for i, f := range failures {
		entries[i] = FailureEntry{Row: f.Row(), Reason: f.Reason}
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Status:   http.StatusUnprocessableEntity,
		Message:  message,
		Failures: entries,
	})
}
