// Package crawl — URL rules.
// Helpers to resolve, clean and paginate catalog URLs during crawling.
package crawl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CleanURL removes everything from the first ';' onward (session ids and
// tracking suffixes) and strips the fragment.
func CleanURL(rawURL string) string {
	if i := strings.IndexByte(rawURL, ';'); i >= 0 {
		rawURL = rawURL[:i]
	}
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return rawURL
}

// Resolve turns href into an absolute, cleaned URL relative to base.
func Resolve(base, href string) (string, error) {
	// Clean first so a ';' suffix can't be mistaken for path parameters.
	href = CleanURL(strings.TrimSpace(href))
	if href == "" {
		return "", fmt.Errorf("empty href")
	}
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") {
		return "", fmt.Errorf("unsupported link %q", href)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}

	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", fmt.Errorf("link %q is not absolute after resolving", href)
	}
	resolved.Fragment = ""
	return resolved.String(), nil
}

// SubGenreSlug returns the path segment third from the end of a sub-genre
// URL, e.g. ".../b/books/horror/ghost-stories/_/N-29Z8q8Z1d52" → "ghost-stories".
// Paths with fewer than three segments fall back to the last segment.
func SubGenreSlug(rawURL string) string {
	parsed, err := url.Parse(CleanURL(rawURL))
	if err != nil {
		return ""
	}
	var segments []string
	for _, s := range strings.Split(parsed.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	switch {
	case len(segments) >= 3:
		return segments[len(segments)-3]
	case len(segments) > 0:
		return segments[len(segments)-1]
	default:
		return ""
	}
}

// Pagination describes how listing pages beyond the first are addressed.
type Pagination struct {
	PageParam    string `json:"page_param"`
	PerPageParam string `json:"per_page_param"`
	PerPage      int    `json:"per_page"`
}

// DefaultPagination matches the catalog's "?Nrpp=20&page=N" convention.
func DefaultPagination() Pagination {
	return Pagination{PageParam: "page", PerPageParam: "Nrpp", PerPage: 20}
}

// PageURL returns the listing URL for the given 1-based page. Page 1 is
// the sub-genre URL itself.
func (p Pagination) PageURL(listingURL string, page int) (string, error) {
	if page <= 1 {
		return listingURL, nil
	}
	parsed, err := url.Parse(listingURL)
	if err != nil {
		return "", fmt.Errorf("parsing listing URL: %w", err)
	}
	q := parsed.Query()
	if p.PerPageParam != "" && p.PerPage > 0 {
		q.Set(p.PerPageParam, strconv.Itoa(p.PerPage))
	}
	q.Set(p.PageParam, strconv.Itoa(page))
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}
