// Package crawl — record filters.
// A Filter is a named predicate evaluated on each extracted BookRecord;
// drops are counted per filter name in Stats.Filtered.
package crawl

import (
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// Filter drops records for which Drop returns true.
type Filter struct {
	Name string
	Drop func(core.BookRecord) bool
}

// EmptyBlurb drops records whose description element held no text.
func EmptyBlurb() Filter {
	return Filter{
		Name: "empty_blurb",
		Drop: func(r core.BookRecord) bool {
			return strings.TrimSpace(r.Blurb) == ""
		},
	}
}

// ShortBlurb drops records whose blurb has fewer than min characters.
func ShortBlurb(min int) Filter {
	return Filter{
		Name: "short_blurb",
		Drop: func(r core.BookRecord) bool {
			return utf8.RuneCountInString(strings.TrimSpace(r.Blurb)) < min
		},
	}
}

// ExcludeURLs drops the listed book pages, e.g. a page known to carry a
// broken description.
func ExcludeURLs(urls ...string) Filter {
	set := make(map[string]bool, len(urls))
	for _, u := range urls {
		set[CleanURL(u)] = true
	}
	return Filter{
		Name: "excluded_url",
		Drop: func(r core.BookRecord) bool {
			return set[r.URL]
		},
	}
}
