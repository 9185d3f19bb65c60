package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaurav-prasanna/blurbpipe/config"
	"github.com/gaurav-prasanna/blurbpipe/core"
	"github.com/gaurav-prasanna/blurbpipe/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pagination = `<ul class="pagination search-pagination"><li><a>1</a></li><li><a>2</a></li><li><a>Next</a></li></ul>`

func shelf(hrefs ...string) string {
	html := `<html><body><div class="product-shelf-grid">`
	for _, h := range hrefs {
		html += fmt.Sprintf(`<a class="pImageLink" href="%s">img</a>`, h)
	}
	return html + `</div>` + pagination + `</body></html>`
}

func book(blurb string) string {
	return `<html><body><div itemprop="description">` + blurb + `</div></body></html>`
}

func TestNewCrawler_AppliesConfig(t *testing.T) {
	agents := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/b/books/horror/_/N-1", func(w http.ResponseWriter, r *http.Request) {
		select {
		case agents <- r.UserAgent():
		default:
		}
		fmt.Fprint(w, `<html><body><ul id="sidebar-section-0"><li><a href="/b/books/horror/occult/_/N-2">Occult</a></li></ul></body></html>`)
	})
	mux.HandleFunc("/b/books/horror/occult/_/N-2", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("pg") == "2" && q.Get("size") == "5" {
			fmt.Fprint(w, shelf("/w/3", "/w/4"))
			return
		}
		fmt.Fprint(w, shelf("/w/1", "/w/2"))
	})
	mux.HandleFunc("/w/1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, book("A long enough blurb about a haunted lighthouse."))
	})
	mux.HandleFunc("/w/2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, book("Tiny."))
	})
	mux.HandleFunc("/w/3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, book("Another long blurb that is excluded by URL."))
	})
	mux.HandleFunc("/w/4", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, book(" "))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	saved := cfg
	defer func() { cfg = saved }()

	cfg = config.Default()
	cfg.Genres = []core.GenreRef{{Name: "Horror", URL: server.URL + "/b/books/horror/_/N-1"}}
	cfg.Fetch.UserAgent = "blurbpipe-test"
	cfg.Pagination = crawl.Pagination{PageParam: "pg", PerPageParam: "size", PerPage: 5}
	cfg.Crawl.MinBlurbChars = 10
	cfg.Crawl.ExcludeURLs = []string{server.URL + "/w/3;jsessionid=abc"}

	result, err := newCrawler(2).Run(context.Background(), cfg.Genres)
	require.NoError(t, err)

	assert.Equal(t, "blurbpipe-test", <-agents)
	require.Len(t, result.Records, 1)
	assert.Equal(t, server.URL+"/w/1", result.Records[0].URL)
	assert.Equal(t, "occult", result.Records[0].SubGenre)

	s := result.Stats
	assert.Equal(t, 2, s.ListingPages)
	assert.Equal(t, 4, s.BookRefs)
	assert.Zero(t, s.Duplicates, "page 2 must be addressed with the configured parameters")
	assert.Equal(t, map[string]int{
		"empty_blurb":  1,
		"short_blurb":  1,
		"excluded_url": 1,
	}, s.Filtered)
}

func TestNewCrawler_NoOptionalFilters(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()
	cfg = config.Default()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, book("Tiny."))
	}))
	defer server.Close()

	c := newCrawler(1)
	records, err := c.Blurbs(context.Background(), []core.BookRef{{URL: server.URL + "/w/1"}})
	require.NoError(t, err)
	require.Len(t, records, 1, "short blurbs are kept when min_blurb_chars is unset")
	assert.Empty(t, c.Stats().Filtered)
}
