package tabular

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet with raw cell values, so numbers keep
// their stored precision instead of the sheet's display format.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no worksheets")
	}

	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}
