package invoice2pdf

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/fileutil"
)

// archiveTimeLayout names archives invoices_YYYYMMDD_HHMMSS.zip.
const archiveTimeLayout = "20060102_150405"

// ArchiveName returns the archive file name for now.
func ArchiveName(now time.Time) string {
	return "invoices_" + now.Format(archiveTimeLayout) + ".zip"
}

// Archive writes a flat, deflate-compressed zip of paths into dir and returns
// its path. Entries are stored under their base names; when two paths share
// a base name the later one wins. dir is created if needed.
//
// Any failure wraps ErrArchive and leaves no partial archive behind.
func Archive(paths []string, dir string, now time.Time) (_ string, err error) {
	if err := os.MkdirAll(dir, fileutil.DirPermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}

	path := filepath.Join(dir, ArchiveName(now))
	f, err := os.Create(path) // #nosec G304 -- output directory chosen by the caller
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, p := range dedupeByBase(paths) {
		if err = addToArchive(zw, p); err != nil {
			return "", fmt.Errorf("%w: %v", ErrArchive, err)
		}
	}
	if err = zw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchive, err)
	}

	return path, nil
}

// dedupeByBase keeps the last path for every base name, in first-seen order.
func dedupeByBase(paths []string) []string {
	last := make(map[string]string, len(paths))
	var order []string
	for _, p := range paths {
		base := filepath.Base(p)
		if _, seen := last[base]; !seen {
			order = append(order, base)
		}
		last[base] = p
	}

	out := make([]string, len(order))
	for i, base := range order {
		out[i] = last[base]
	}
	return out
}

func addToArchive(zw *zip.Writer, path string) error {
	src, err := os.Open(path) // #nosec G304 -- generated document path
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
