package tabular

import (
	"bufio"
	"encoding/csv"
	"os"
)

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-selected input file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	skipBOM(br)

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1 // short rows leave trailing columns absent
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	return r.ReadAll()
}

// skipBOM consumes a UTF-8 byte order mark written by spreadsheet exports.
func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
}
