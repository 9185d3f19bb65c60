// Package crawl — book queue with deduplication.
// Maintains a seen set so a book listed on several pages or sub-genres is
// fetched once.
package crawl

import "github.com/gaurav-prasanna/blurbpipe/core"

// Queue collects BookRefs in discovery order, dropping repeated URLs.
type Queue struct {
	items      []core.BookRef
	seen       map[string]bool
	duplicates int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues ref if its URL hasn't been seen before. The first
// occurrence wins; ref.Index is set to its queue position.
func (q *Queue) Add(ref core.BookRef) bool {
	if q.seen[ref.URL] {
		q.duplicates++
		return false
	}
	q.seen[ref.URL] = true
	ref.Index = len(q.items)
	q.items = append(q.items, ref)
	return true
}

// Len returns the number of unique refs queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// Duplicates returns how many refs were dropped as repeats.
func (q *Queue) Duplicates() int {
	return q.duplicates
}

// All returns all unique refs in discovery order.
func (q *Queue) All() []core.BookRef {
	return q.items
}
