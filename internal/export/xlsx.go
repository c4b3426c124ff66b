package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/clawfood/clawfood/internal/model"
)

// SheetName is the worksheet restaurants are written to.
const SheetName = "Restaurants"

// column maps one worksheet column to a restaurant field.
type column struct {
	header string
	get    func(model.Restaurant) string
	set    func(*model.Restaurant, string)
}

var columns = []column{
	{"ID", func(r model.Restaurant) string { return r.ID }, func(r *model.Restaurant, v string) { r.ID = v }},
	{"Name", func(r model.Restaurant) string { return r.Name }, func(r *model.Restaurant, v string) { r.Name = v }},
	{"Cuisine", func(r model.Restaurant) string { return r.Cuisine }, func(r *model.Restaurant, v string) { r.Cuisine = v }},
	{"Rating", func(r model.Restaurant) string { return formatFloat(r.Rating) }, func(r *model.Restaurant, v string) { r.Rating = parseFloat(v) }},
	{"Distance", func(r model.Restaurant) string { return r.Distance }, func(r *model.Restaurant, v string) { r.Distance = v }},
	{"Distance (km)", func(r model.Restaurant) string { return formatFloat(r.DistanceKm) }, func(r *model.Restaurant, v string) { r.DistanceKm = parseFloat(v) }},
	{"Price Range", func(r model.Restaurant) string { return r.PriceRange }, func(r *model.Restaurant, v string) { r.PriceRange = v }},
	{"Address", func(r model.Restaurant) string { return r.Address }, func(r *model.Restaurant, v string) { r.Address = v }},
	{"Latitude", func(r model.Restaurant) string { return formatFloat(r.Latitude) }, func(r *model.Restaurant, v string) { r.Latitude = parseFloat(v) }},
	{"Longitude", func(r model.Restaurant) string { return formatFloat(r.Longitude) }, func(r *model.Restaurant, v string) { r.Longitude = parseFloat(v) }},
	{"Google Maps", func(r model.Restaurant) string { return r.GoogleMapsURL }, func(r *model.Restaurant, v string) { r.GoogleMapsURL = v }},
	{"OpenStreetMap", func(r model.Restaurant) string { return r.OSMURL }, func(r *model.Restaurant, v string) { r.OSMURL = v }},
	{"Image", func(r model.Restaurant) string { return r.Image }, func(r *model.Restaurant, v string) { r.Image = v }},
	{"Photo", func(r model.Restaurant) string { return r.PhotoURL }, func(r *model.Restaurant, v string) { r.PhotoURL = v }},
	{"Description", func(r model.Restaurant) string { return r.Description }, func(r *model.Restaurant, v string) { r.Description = v }},
}

func buildWorkbook(restaurants []model.Restaurant) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range columns {
		header.AddCell().SetString(c.header)
	}
	for _, r := range restaurants {
		row := sheet.AddRow()
		for _, c := range columns {
			row.AddCell().SetString(c.get(r))
		}
	}
	return f, nil
}

func writeXLSX(w io.Writer, restaurants []model.Restaurant) error {
	f, err := buildWorkbook(restaurants)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write")
	}
	return nil
}

func saveXLSX(path string, restaurants []model.Restaurant) error {
	f, err := buildWorkbook(restaurants)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx: save file")
	}
	return nil
}

// readXLSX loads the first sheet, matching columns by header name so
// hand-edited workbooks with reordered or missing columns still load.
func readXLSX(path string) ([]model.Restaurant, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	sheet := f.Sheets[0]
	if s, ok := f.Sheet[SheetName]; ok {
		sheet = s
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	byHeader := make(map[string]column, len(columns))
	for _, c := range columns {
		byHeader[strings.ToLower(c.header)] = c
	}
	index := make(map[int]column)
	hasName := false
	for i, cell := range sheet.Rows[0].Cells {
		h := strings.ToLower(strings.TrimSpace(cell.String()))
		if c, ok := byHeader[h]; ok {
			index[i] = c
			hasName = hasName || h == "name"
		}
	}
	if !hasName {
		return nil, eris.New("xlsx: header row has no Name column")
	}

	var out []model.Restaurant
	for _, row := range sheet.Rows[1:] {
		var r model.Restaurant
		for i, cell := range row.Cells {
			if c, ok := index[i]; ok {
				c.set(&r, strings.TrimSpace(cell.String()))
			}
		}
		if r.Name == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return model.Float(v)
}
