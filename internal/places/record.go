package places

import "strings"

// Tags are the cross-reference and descriptive OSM tags of a place.
type Tags struct {
	Wikidata         string // knowledge-base entity, e.g. "Q123"
	WikimediaCommons string // "File:..." or "Category:..."
	Wikipedia        string // "lang:Title"
	Image            string // direct image URL
	Website          string
	OpeningHours     string
	Cuisine          string
	Phone            string
}

// Record is the canonical geocoder result for one restaurant. It lives for
// one enrichment call and is never cached.
type Record struct {
	DisplayName    string
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
	// InViewbox reports whether the match fell inside the bias box around
	// the expected location. Out-of-box matches are still accepted.
	InViewbox bool
	Address   map[string]string
	Tags      Tags
}

// CommonsFile returns the Commons filename when the commons tag names a
// file rather than a category.
func (r *Record) CommonsFile() (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := strings.CutPrefix(r.Tags.WikimediaCommons, "File:")
	return name, ok && name != ""
}

// WikipediaArticle splits the wikipedia tag on its first colon.
func (r *Record) WikipediaArticle() (lang, title string, ok bool) {
	if r == nil {
		return "", "", false
	}
	lang, title, ok = strings.Cut(r.Tags.Wikipedia, ":")
	if !ok || lang == "" || title == "" {
		return "", "", false
	}
	return lang, title, true
}

func tagsFrom(extra map[string]string) Tags {
	return Tags{
		Wikidata:         extra["wikidata"],
		WikimediaCommons: extra["wikimedia_commons"],
		Wikipedia:        extra["wikipedia"],
		Image:            extra["image"],
		Website:          extra["website"],
		OpeningHours:     extra["opening_hours"],
		Cuisine:          extra["cuisine"],
		Phone:            extra["phone"],
	}
}
