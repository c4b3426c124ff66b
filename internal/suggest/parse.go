package suggest

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/clawfood/clawfood/internal/model"
)

// ErrUnparseable is returned when the model output holds no usable JSON
// array of restaurants.
var ErrUnparseable = eris.New("suggest: could not parse model output")

// arrayPattern grabs from the first "[" to the last "]", which tolerates
// prose or code fences around the array.
var arrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// ExtractArray returns the JSON array embedded in raw.
func ExtractArray(raw string) (string, bool) {
	m := arrayPattern.FindString(raw)
	return m, m != ""
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(string(b))
	return nil
}

// flexFloat accepts a JSON number or a numeric string. Anything else is
// treated as absent.
type flexFloat struct {
	v  float64
	ok bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil //nolint:nilerr // non-numeric value means unknown
	}
	f.v, f.ok = v, true
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.ok {
		return nil
	}
	return model.Float(f.v)
}

// suggestion is the loosely-typed shape the model returns.
type suggestion struct {
	ID           flexString `json:"id"`
	Name         flexString `json:"name"`
	Description  flexString `json:"description"`
	Distance     flexString `json:"distance"`
	Rating       flexFloat  `json:"rating"`
	TotalRatings flexFloat  `json:"totalRatings"`
	Address      flexString `json:"address"`
	PriceRange   flexString `json:"priceRange"`
	Cuisine      flexString `json:"cuisine"`
	Image        flexString `json:"image"`
	Latitude     flexFloat  `json:"latitude"`
	Longitude    flexFloat  `json:"longitude"`
}

// Parse decodes model output into restaurants. Entries without a name are
// dropped.
func Parse(raw string) ([]model.Restaurant, error) {
	arr, ok := ExtractArray(raw)
	if !ok {
		return nil, ErrUnparseable
	}

	var items []suggestion
	if err := json.Unmarshal([]byte(arr), &items); err != nil {
		return nil, ErrUnparseable
	}

	out := make([]model.Restaurant, 0, len(items))
	for _, s := range items {
		name := strings.TrimSpace(string(s.Name))
		if name == "" {
			continue
		}
		r := model.Restaurant{
			ID:          strings.TrimSpace(string(s.ID)),
			Name:        name,
			Description: strings.TrimSpace(string(s.Description)),
			Distance:    strings.TrimSpace(string(s.Distance)),
			Rating:      s.Rating.ptr(),
			Address:     strings.TrimSpace(string(s.Address)),
			PriceRange:  strings.TrimSpace(string(s.PriceRange)),
			Cuisine:     strings.TrimSpace(string(s.Cuisine)),
			Image:       strings.TrimSpace(string(s.Image)),
			Latitude:    s.Latitude.ptr(),
			Longitude:   s.Longitude.ptr(),
		}
		if s.TotalRatings.ok {
			r.TotalRatings = int(s.TotalRatings.v)
		}
		out = append(out, r)
	}
	return out, nil
}
