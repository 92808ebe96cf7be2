package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/profile-cli/internal/model"
)

const sheetName = "Profiles"

// XLSX writes profiles as a single-sheet workbook with the shared
// export columns.
func XLSX(w io.Writer, profiles []model.Profile) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Columns {
		header.AddCell().SetString(col)
	}
	for i := range profiles {
		row := sheet.AddRow()
		for _, v := range Row(&profiles[i]) {
			row.AddCell().SetString(v)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}
