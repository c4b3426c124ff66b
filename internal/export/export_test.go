package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/clawfood/clawfood/internal/model"
)

func sampleRestaurants() []model.Restaurant {
	return []model.Restaurant{
		{
			ID:            "1",
			Name:          "Pho Hoa",
			Cuisine:       "Vietnamese",
			Rating:        model.Float(4.5),
			Distance:      "0.5km",
			PriceRange:    "$",
			Address:       "260C Pasteur",
			Latitude:      model.Float(10.7890),
			Longitude:     model.Float(106.6890),
			GoogleMapsURL: "https://www.google.com/maps/search/Pho%20Hoa/@10.789,106.689,17z",
			Image:         "https://example.org/pho.jpg",
			Description:   "Classic noodle soup & herbs",
		},
		{ID: "2", Name: "Banh Mi 37"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatJSON},
		{"json", FormatJSON},
		{".JSON", FormatJSON},
		{"yml", FormatYAML},
		{".yaml", FormatYAML},
		{"xlsx", FormatXLSX},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleRestaurants()))

	assert.Contains(t, buf.String(), "\n  {")
	assert.Contains(t, buf.String(), "Classic noodle soup & herbs")

	var got []model.Restaurant
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Pho Hoa", got[0].Name)
	assert.InDelta(t, 4.5, *got[0].Rating, 0.0001)
	assert.Nil(t, got[1].Rating)
}

func TestWrite_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleRestaurants()))

	out := buf.String()
	assert.Contains(t, out, "name: Pho Hoa")
	assert.Contains(t, out, "price_range:")

	got, err := Decode(buf.Bytes(), FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Banh Mi 37", got[1].Name)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("csv"), nil)
	assert.Error(t, err)
}

func TestWriteFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteFile(path, sampleRestaurants()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet[SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Pho Hoa", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "4.5", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "Banh Mi 37", sheet.Rows[2].Cells[1].String())
}

func TestReadFile_XLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.xlsx")
	require.NoError(t, WriteFile(path, sampleRestaurants()))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "260C Pasteur", got[0].Address)
	require.NotNil(t, got[0].Latitude)
	assert.InDelta(t, 10.789, *got[0].Latitude, 0.0001)
	assert.True(t, got[0].HasCoordinates())
	assert.False(t, got[1].HasCoordinates())
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadFile_XLSXHeaderOrder(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"address", " NAME ", "Notes", "Rating"},
		{"1 Main St", "Cafe X", "ignored", "4.2"},
		{"2 Side St", "", "", ""},
		{"", "Cafe Y", "", "n/a"},
	})

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cafe X", got[0].Name)
	assert.Equal(t, "1 Main St", got[0].Address)
	require.NotNil(t, got[0].Rating)
	assert.InDelta(t, 4.2, *got[0].Rating, 0.0001)
	assert.Equal(t, "Cafe Y", got[1].Name)
	assert.Nil(t, got[1].Rating)
}

func TestReadFile_XLSXMissingName(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Address", "Rating"},
		{"1 Main St", "4"},
	})

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestReadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Cafe X","address":"1 Main St"}]`), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cafe X", got[0].Name)
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o644))
	_, err = ReadFile(bad)
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "list.csv"))
	assert.Error(t, err)
}

type closeFailWriter struct {
	bytes.Buffer
	closed bool
}

func (w *closeFailWriter) Close() error {
	w.closed = true
	return errors.New("no space left on device")
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	w := &closeFailWriter{}
	err := writeAndClose(w, FormatJSON, sampleRestaurants())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: close file")
	assert.True(t, w.closed)
	assert.Contains(t, w.String(), "Pho Hoa")
}

func TestWriteAndClose_WriteErrorWins(t *testing.T) {
	w := &closeFailWriter{}
	err := writeAndClose(w, Format("csv"), nil)

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "close file")
	assert.True(t, w.closed)
}
