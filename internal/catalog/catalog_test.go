package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(entries ...Entry) *Index {
	idx := NewIndex()
	idx.Replace(entries)
	return idx
}

func TestExactLookup(t *testing.T) {
	idx := testIndex(
		Entry{SKU: "DSK-0001", Description: "Desk TRANHOLM 19", Price: 902.78, Stock: 31, MinOrderQty: 2},
	)

	e, ok := idx.ExactLookup("DSK-0001")
	require.True(t, ok)
	assert.Equal(t, "Desk TRANHOLM 19", e.Description)

	// case-sensitive key lookup
	_, ok = idx.ExactLookup("dsk-0001")
	assert.False(t, ok)

	_, ok = idx.ExactLookup("DSK-9999")
	assert.False(t, ok)
}

func TestFuzzySearchRanking(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		query    string
		wantSKUs []string
	}{
		{
			name: "shorter description wins within a rank",
			entries: []Entry{
				{SKU: "A2", Description: "Blue Desk Extra Large"},
				{SKU: "A1", Description: "Blue Desk"},
			},
			query:    "Blue Desk",
			wantSKUs: []string{"A1", "A2"},
		},
		{
			name: "description match ranks above sku-only match",
			entries: []Entry{
				{SKU: "CHAIR-BLUE", Description: "Office Chair"},
				{SKU: "TBL-1", Description: "Blue Table"},
			},
			query:    "blue",
			wantSKUs: []string{"TBL-1", "CHAIR-BLUE"},
		},
		{
			name: "match is case-insensitive",
			entries: []Entry{
				{SKU: "DSK-0001", Description: "Desk TRANHOLM 19"},
			},
			query:    "tranholm",
			wantSKUs: []string{"DSK-0001"},
		},
		{
			name: "entry description contained in query also matches",
			entries: []Entry{
				{SKU: "SOF-2", Description: "Sofa"},
			},
			query:    "one Sofa in green please",
			wantSKUs: []string{"SOF-2"},
		},
		{
			name: "no match",
			entries: []Entry{
				{SKU: "DSK-0001", Description: "Desk TRANHOLM 19"},
			},
			query:    "flux capacitor",
			wantSKUs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := testIndex(tt.entries...)
			got := idx.FuzzySearch(tt.query)
			var skus []string
			for _, e := range got {
				skus = append(skus, e.SKU)
			}
			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestFuzzySearchCapsAtFive(t *testing.T) {
	entries := []Entry{
		{SKU: "D1", Description: "Desk One"},
		{SKU: "D2", Description: "Desk Two"},
		{SKU: "D3", Description: "Desk Three"},
		{SKU: "D4", Description: "Desk Four"},
		{SKU: "D5", Description: "Desk Five"},
		{SKU: "D6", Description: "Desk Six"},
		{SKU: "D7", Description: "Desk Seven"},
	}
	idx := testIndex(entries...)
	assert.Len(t, idx.FuzzySearch("Desk"), 5)
}

func TestReplaceSwapsWholesale(t *testing.T) {
	idx := testIndex(Entry{SKU: "OLD-1", Description: "Old Product"})
	idx.Replace([]Entry{{SKU: "NEW-1", Description: "New Product"}})

	_, ok := idx.ExactLookup("OLD-1")
	assert.False(t, ok)
	_, ok = idx.ExactLookup("NEW-1")
	assert.True(t, ok)
	assert.Equal(t, 1, idx.Len())
}
