package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jmendezr85/pdf-extractor-excel/internal/pipeline"
)

func TestWriteRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salida.xlsx")

	r1 := pipeline.NewRow()
	r1.Set("Cargo", "Soldador")
	r1.Set("Página PDF", "1")

	r2 := pipeline.NewRow()
	r2.Set("Cargo", "")
	r2.Set("Página PDF", "2")

	w := NewWriter()
	require.NoError(t, w.WriteRows([]pipeline.Row{r1, r2}, path, "Datos"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Datos"}, f.GetSheetList(), "the default Sheet1 is dropped")

	got := cellValues(t, f, "Datos", [][]string{
		{"A1", "B1"},
		{"A2", "B2"},
		{"A3", "B3"},
	})
	assert.Equal(t, [][]string{
		{"Cargo", "Página PDF"},
		{"Soldador", "1"},
		{"", "2"},
	}, got)
}

func TestWriteRows_UnionColumnsFirstSeenOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salida.xlsx")

	r1 := pipeline.NewRow()
	r1.Set("A", "1")
	r1.Set("B", "2")

	r2 := pipeline.NewRow()
	r2.Set("B", "3")
	r2.Set("C", "4")

	w := NewWriter()
	require.NoError(t, w.WriteRows([]pipeline.Row{r1, r2}, path, "Datos"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got := cellValues(t, f, "Datos", [][]string{
		{"A1", "B1", "C1"},
		{"A2", "B2", "C2"},
		{"A3", "B3", "C3"},
	})
	assert.Equal(t, [][]string{
		{"A", "B", "C"},
		{"1", "2", ""},
		{"", "3", "4"},
	}, got)
}

func TestWriteRows_EmptySheetNameUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salida.xlsx")

	row := pipeline.NewRow()
	row.Set("Cargo", "Soldador")

	w := NewWriter()
	require.NoError(t, w.WriteRows([]pipeline.Row{row}, path, ""))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())
}

func TestWriteRows_NoRows(t *testing.T) {
	// A run over an empty document still produces a workbook, just without data.
	path := filepath.Join(t.TempDir(), "salida.xlsx")

	w := NewWriter()
	require.NoError(t, w.WriteRows(nil, path, "Datos"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Datos")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWriteRows_EmptyPath(t *testing.T) {
	w := NewWriter()
	assert.Error(t, w.WriteRows(nil, "", "Datos"))
}

func cellValues(t *testing.T, f *excelize.File, sheet string, cells [][]string) [][]string {
	t.Helper()
	out := make([][]string, len(cells))
	for i, rowCells := range cells {
		out[i] = make([]string, len(rowCells))
		for j, cell := range rowCells {
			v, err := f.GetCellValue(sheet, cell)
			require.NoError(t, err)
			out[i][j] = v
		}
	}
	return out
}
