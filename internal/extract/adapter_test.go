package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/order-intake/internal/llm"
)

type stubExtractor struct {
	candidate llm.CandidateOrder
	err       error
}

func (s *stubExtractor) ExtractOrder(_ context.Context, _ string) (llm.CandidateOrder, []byte, error) {
	return s.candidate, nil, s.err
}

func TestExtractPassesThroughOnSuccess(t *testing.T) {
	want := llm.CandidateOrder{
		Customer: llm.CandidateCustomer{Name: "Jane Smith", Address: "9 High St"},
		Items: []llm.CandidateItem{
			{Product: "DSK-0001", Quantity: 2, Confidence: 0.85},
		},
		Delivery: llm.CandidateDelivery{Date: "2025-07-01", Address: "9 High St"},
	}
	a := NewAdapter(&stubExtractor{candidate: want}, nil)

	got := a.Extract(context.Background(), "please send two desks")
	assert.Equal(t, want, got)
}

func TestExtractFallsBackOnFailure(t *testing.T) {
	a := NewAdapter(&stubExtractor{err: errors.New("model unavailable")}, nil)

	got := a.Extract(context.Background(), "anything")

	assert.Equal(t, "Unknown Customer", got.Customer.Name)
	assert.Equal(t, "Address not found", got.Customer.Address)
	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Equal(t, "not specified", got.Delivery.Date)
	assert.Equal(t, "Address not found", got.Delivery.Address)
}

func TestExtractNormalizesNilItems(t *testing.T) {
	a := NewAdapter(&stubExtractor{candidate: llm.CandidateOrder{
		Customer: llm.CandidateCustomer{Name: "Jane Smith"},
	}}, nil)

	got := a.Extract(context.Background(), "no items mentioned")
	require.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}
