package main

import (
	"io"

	"github.com/clawfood/clawfood/internal/export"
	"github.com/clawfood/clawfood/internal/model"
)

// writeRestaurants writes to outPath when set, inferring the format from
// its extension, otherwise encodes to w in the named format.
func writeRestaurants(w io.Writer, restaurants []model.Restaurant, format, outPath string) error {
	if outPath != "" {
		return export.WriteFile(outPath, restaurants)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, f, restaurants)
}
