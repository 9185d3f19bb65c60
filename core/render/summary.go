// Package render — dataset summary.
// Groups prepared rows by genre and sub-genre and averages their features;
// the Markdown and PDF renderers lay this summary out as a report.
package render

import (
	"sort"

	"github.com/gaurav-prasanna/blurbpipe/core"
)

// GroupSummary holds the mean features of one genre/sub-genre group.
// SubGenre is empty for a genre-wide total.
type GroupSummary struct {
	Genre            string
	SubGenre         string
	Books            int
	AvgWords         float64
	AvgUniqueWords   float64
	AvgSentences     float64
	AvgSentiment     float64
	AvgStopwordRatio float64
}

// Summary is the per-genre breakdown of a dataset.
type Summary struct {
	Books  int
	Genres []GroupSummary // genre totals, sorted by name
	Groups []GroupSummary // sub-genre groups, sorted by genre then sub-genre
}

// Summarize computes the report figures for rows.
func Summarize(rows []core.PreparedRecord) Summary {
	type key struct{ genre, sub string }
	genres := map[string]*GroupSummary{}
	groups := map[key]*GroupSummary{}

	for _, r := range rows {
		g, ok := genres[r.Genre]
		if !ok {
			g = &GroupSummary{Genre: r.Genre}
			genres[r.Genre] = g
		}
		accumulate(g, r)

		k := key{r.Genre, r.SubGenre}
		sg, ok := groups[k]
		if !ok {
			sg = &GroupSummary{Genre: r.Genre, SubGenre: r.SubGenre}
			groups[k] = sg
		}
		accumulate(sg, r)
	}

	s := Summary{Books: len(rows)}
	for _, g := range genres {
		s.Genres = append(s.Genres, average(g))
	}
	for _, g := range groups {
		s.Groups = append(s.Groups, average(g))
	}

	sort.Slice(s.Genres, func(i, j int) bool { return s.Genres[i].Genre < s.Genres[j].Genre })
	sort.Slice(s.Groups, func(i, j int) bool {
		if s.Groups[i].Genre != s.Groups[j].Genre {
			return s.Groups[i].Genre < s.Groups[j].Genre
		}
		return s.Groups[i].SubGenre < s.Groups[j].SubGenre
	})
	return s
}

// accumulate adds r's features to g's running sums.
func accumulate(g *GroupSummary, r core.PreparedRecord) {
	g.Books++
	g.AvgWords += float64(r.WordCount)
	g.AvgUniqueWords += float64(r.UniqueWordCount)
	g.AvgSentences += float64(r.SentenceCount)
	g.AvgSentiment += r.SentimentCompound
	g.AvgStopwordRatio += r.StopwordRatio
}

// average turns the running sums of g into means.
func average(g *GroupSummary) GroupSummary {
	out := *g
	n := float64(g.Books)
	out.AvgWords /= n
	out.AvgUniqueWords /= n
	out.AvgSentences /= n
	out.AvgSentiment /= n
	out.AvgStopwordRatio /= n
	return out
}
