package server

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerConfig holds configuration for the request logger.
type LoggerConfig struct {
	Format string    // "json" or "pretty"
	Output io.Writer // where entries are written
}

// LogEntry is one logged request. Upload bodies are binary and never logged.
type LogEntry struct {
	Timestamp  string `json:"timestamp"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	StatusCode int    `json:"status_code"`
	Latency    string `json:"latency"`
	ClientIP   string `json:"client_ip"`
	UserAgent  string `json:"user_agent,omitempty"`
	BytesIn    int64  `json:"bytes_in"`
	BytesOut   int    `json:"bytes_out"`
	Generated  string `json:"invoices_generated,omitempty"`
	Skipped    string `json:"invoices_skipped,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RequestLogger logs every request after it has been handled.
func RequestLogger(cfg LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := LogEntry{
			Timestamp:  start.UTC().Format(time.RFC3339),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Latency:    time.Since(start).String(),
			ClientIP:   c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			BytesIn:    c.Request.ContentLength,
			BytesOut:   c.Writer.Size(),
			Generated:  c.Writer.Header().Get(HeaderGenerated),
			Skipped:    c.Writer.Header().Get(HeaderSkipped),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if cfg.Format == "pretty" {
			printPrettyLog(cfg.Output, entry)
		} else {
			printJSONLog(cfg.Output, entry)
		}
	}
}

func printJSONLog(w io.Writer, entry LogEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, "{\"error\": \"failed to marshal log entry: %v\"}\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func printPrettyLog(w io.Writer, entry LogEntry) {
	fmt.Fprintf(w, "%s %s %s -> %d in %s (%s)",
		entry.Timestamp, entry.Method, entry.Path, entry.StatusCode, entry.Latency, entry.ClientIP)
	if entry.Generated != "" {
		fmt.Fprintf(w, " generated=%s skipped=%s", entry.Generated, entry.Skipped)
	}
	if entry.Error != "" {
		fmt.Fprintf(w, " error=%q", entry.Error)
	}
	fmt.Fprintln(w)
}
