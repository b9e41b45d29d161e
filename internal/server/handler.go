package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// Response headers carrying the batch counts next to the archive.
const (
	HeaderGenerated = "X-Invoices-Generated"
	HeaderSkipped   = "X-Invoices-Skipped"
)

// Form fields of POST /v1/invoices.
const (
	fieldFile = "file"
	fieldLogo = "logo"
)

// Pool hands out generators for the duration of one request.
type Pool interface {
	Acquire(ctx context.Context) (*invoice2pdf.Generator, error)
	Release(g *invoice2pdf.Generator)
}

var _ Pool = (*invoice2pdf.GeneratorPool)(nil)

// InvoiceHandler turns uploaded tables into invoice archives.
type InvoiceHandler struct {
	pool     Pool
	maxBytes int64
}

// NewInvoiceHandler creates a handler. maxBytes caps the request body.
func NewInvoiceHandler(pool Pool, maxBytes int64) *InvoiceHandler {
	return &InvoiceHandler{pool: pool, maxBytes: maxBytes}
}

// CreateInvoices handles POST /v1/invoices.
//
// The multipart form carries the table under "file" and an optional logo
// under "logo". On success the zip archive is returned as an attachment.
func (h *InvoiceHandler) CreateInvoices(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	table, err := c.FormFile(fieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		respondWithError(c, http.StatusBadRequest, "missing invoice table in form field \"file\"")
		return
	}

	workDir, err := os.MkdirTemp("", fileutil.TempPrefix+"upload-*")
	if err != nil {
		_ = c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to prepare upload")
		return
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	req := invoice2pdf.Request{OutputDir: filepath.Join(workDir, "out")}

	req.InputPath, err = saveUpload(table, workDir, "table")
	if err != nil {
		_ = c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}

	if logo, err := c.FormFile(fieldLogo); err == nil {
		req.LogoPath, err = saveUpload(logo, workDir, "logo")
		if err != nil {
			_ = c.Error(err)
			respondWithError(c, http.StatusInternalServerError, "failed to store logo")
			return
		}
	}

	gen, err := h.pool.Acquire(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		h.respondWithGenerateError(c, nil, err)
		return
	}
	result, err := gen.Generate(c.Request.Context(), req)
	h.pool.Release(gen)
	if err != nil {
		_ = c.Error(err)
		h.respondWithGenerateError(c, result, err)
		return
	}

	c.Header(HeaderGenerated, strconv.Itoa(len(result.Documents)))
	c.Header(HeaderSkipped, strconv.Itoa(len(result.Failures)))
	c.Header("Content-Type", "application/zip")
	c.FileAttachment(result.ArchivePath, filepath.Base(result.ArchivePath))
}

// respondWithGenerateError maps a batch error to a status code.
func (h *InvoiceHandler) respondWithGenerateError(c *gin.Context, result *invoice2pdf.BatchResult, err error) {
	var schemaErr *invoice2pdf.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		respondWithSchemaError(c, schemaErr)
	case errors.Is(err, invoice2pdf.ErrUnsupportedFormat):
		respondWithError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, invoice2pdf.ErrNoDocuments) && result != nil:
		respondWithFailures(c, err.Error(), result.Failures)
	case errors.Is(err, invoice2pdf.ErrReadTable):
		respondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, invoice2pdf.ErrPoolClosed):
		respondWithError(c, http.StatusServiceUnavailable, "server is shutting down")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondWithError(c, http.StatusServiceUnavailable, "request cancelled")
	default:
		respondWithError(c, http.StatusInternalServerError, "failed to generate invoices")
	}
}

// saveUpload copies an uploaded file into dir as name plus the upload's
// lowercased extension, so format detection sees ".csv" or ".xlsx".
func saveUpload(fh *multipart.FileHeader, dir, name string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	path := filepath.Join(dir, name+strings.ToLower(filepath.Ext(fh.Filename)))
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, fileutil.FilePermissions) // #nosec G304 -- path built from a private temp dir
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	return path, dst.Close()
}
