// Package extract implements the Extractor interface.
// It locates catalog structures (sub-genre navigation, pagination, the
// product grid, the description block) using configurable CSS selectors.
package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNotFound is returned when an expected element is absent from the page.
	ErrNotFound = errors.New("element not found")
	// ErrMalformed is returned when an element exists but its content cannot be read.
	ErrMalformed = errors.New("element malformed")
)

// Selectors holds the CSS selectors tied to the target site's markup.
type Selectors struct {
	SubGenreList string `json:"sub_genre_list"`
	Pagination   string `json:"pagination"`
	ProductGrid  string `json:"product_grid"`
	BookLink     string `json:"book_link"`
	Description  string `json:"description"`
}

// DefaultSelectors matches the Barnes & Noble catalog markup.
func DefaultSelectors() Selectors {
	return Selectors{
		SubGenreList: "ul#sidebar-section-0",
		Pagination:   "ul.pagination.search-pagination",
		ProductGrid:  "div.product-shelf-grid",
		BookLink:     "a.pImageLink",
		Description:  "div[itemprop=description]",
	}
}

// HTMLExtractor pulls catalog values out of raw HTML.
type HTMLExtractor struct {
	sel Selectors
}

// New creates an HTMLExtractor. Empty selectors fall back to the defaults.
func New(sel Selectors) *HTMLExtractor {
	def := DefaultSelectors()
	if sel.SubGenreList == "" {
		sel.SubGenreList = def.SubGenreList
	}
	if sel.Pagination == "" {
		sel.Pagination = def.Pagination
	}
	if sel.ProductGrid == "" {
		sel.ProductGrid = def.ProductGrid
	}
	if sel.BookLink == "" {
		sel.BookLink = def.BookLink
	}
	if sel.Description == "" {
		sel.Description = def.Description
	}
	return &HTMLExtractor{sel: sel}
}

// SubGenreLinks returns the href of every anchor in the sub-genre navigation list.
func (e *HTMLExtractor) SubGenreLinks(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	list := doc.Find(e.sel.SubGenreList)
	if list.Length() == 0 {
		return nil, fmt.Errorf("sub-genre list %q: %w", e.sel.SubGenreList, ErrNotFound)
	}
	return hrefs(list.First().Find("a")), nil
}

// LastListingPage returns the number shown on the second-to-last anchor
// of the pagination control. The last anchor is "next page", not a number.
func (e *HTMLExtractor) LastListingPage(html string) (int, error) {
	doc, err := parse(html)
	if err != nil {
		return 0, err
	}

	pagination := doc.Find(e.sel.Pagination)
	if pagination.Length() == 0 {
		return 0, fmt.Errorf("pagination %q: %w", e.sel.Pagination, ErrNotFound)
	}

	anchors := pagination.First().Find("a")
	if anchors.Length() < 2 {
		return 0, fmt.Errorf("pagination anchors (found %d): %w", anchors.Length(), ErrNotFound)
	}

	text := anchors.Eq(anchors.Length() - 2).Text()
	// The anchor may carry screen-reader text ("Page") around the number.
	fields := strings.Fields(text)
	for i := len(fields) - 1; i >= 0; i-- {
		if n, err := strconv.Atoi(fields[i]); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("pagination anchor %q: %w", strings.TrimSpace(text), ErrMalformed)
}

// ListingBookLinks returns the href of every book image link in the product grid.
func (e *HTMLExtractor) ListingBookLinks(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	grid := doc.Find(e.sel.ProductGrid)
	if grid.Length() == 0 {
		return nil, fmt.Errorf("product grid %q: %w", e.sel.ProductGrid, ErrNotFound)
	}
	return hrefs(grid.Find(e.sel.BookLink)), nil
}

// Description returns the trimmed text of the item description block.
func (e *HTMLExtractor) Description(html string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	desc := doc.Find(e.sel.Description)
	if desc.Length() == 0 {
		return "", fmt.Errorf("description %q: %w", e.sel.Description, ErrNotFound)
	}
	return blockText(desc.Nodes[0]), nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// hrefs collects non-empty href attributes in document order.
func hrefs(sel *goquery.Selection) []string {
	var links []string
	sel.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		links = append(links, href)
	})
	return links
}
