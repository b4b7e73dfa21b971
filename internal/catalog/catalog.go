package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Entry is one product record. Entries are immutable between refreshes; the
// whole set is swapped wholesale via Replace.
type Entry struct {
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	MinOrderQty int     `json:"moq"`
}

// maxFuzzyResults caps FuzzySearch output.
const maxFuzzyResults = 5

// Index is the in-memory, queryable product set. Safe for concurrent reads;
// Replace swaps the whole set under a write lock.
type Index struct {
	mu      sync.RWMutex
	entries []Entry
	bySKU   map[string]int
}

func NewIndex() *Index {
	return &Index{bySKU: make(map[string]int)}
}

// Replace swaps the full entry set. Later duplicates of a sku win the exact
// lookup slot, matching upsert semantics of the mirror store.
func (x *Index) Replace(entries []Entry) {
	bySKU := make(map[string]int, len(entries))
	for i, e := range entries {
		bySKU[e.SKU] = i
	}
	x.mu.Lock()
	x.entries = entries
	x.bySKU = bySKU
	x.mu.Unlock()
}

// Len reports the number of loaded entries.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Entries returns a copy of the loaded entry set.
func (x *Index) Entries() []Entry {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]Entry, len(x.entries))
	copy(out, x.entries)
	return out
}

// ExactLookup is a case-sensitive sku lookup.
func (x *Index) ExactLookup(sku string) (Entry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	i, ok := x.bySKU[sku]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// FuzzySearch returns up to 5 entries related to text, best match first.
// An entry matches when the lowercased text is a substring of its sku or
// description, or vice versa. Entries whose description contains the text rank
// above sku-only matches; within a rank the shorter description wins. The
// ordering is deterministic so suggestion output is reproducible.
func (x *Index) FuzzySearch(text string) []Entry {
	term := strings.ToLower(strings.TrimSpace(text))
	if term == "" {
		return nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	type scored struct {
		entry     Entry
		descMatch bool
	}
	var hits []scored
	for _, e := range x.entries {
		sku := strings.ToLower(e.SKU)
		desc := strings.ToLower(e.Description)
		if !strings.Contains(sku, term) && !strings.Contains(desc, term) &&
			!strings.Contains(term, sku) && !strings.Contains(term, desc) {
			continue
		}
		hits = append(hits, scored{entry: e, descMatch: strings.Contains(desc, term)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].descMatch != hits[j].descMatch {
			return hits[i].descMatch
		}
		return len(hits[i].entry.Description) < len(hits[j].entry.Description)
	})

	if len(hits) > maxFuzzyResults {
		hits = hits[:maxFuzzyResults]
	}
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}
