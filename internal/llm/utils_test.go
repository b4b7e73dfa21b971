package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			reply: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "leading and trailing commentary",
			reply: "Sure! Here is the JSON you asked for:\n{\"a\":1}\nLet me know if you need anything else.",
			want:  `{"a":1}`,
		},
		{
			name:  "nested braces keep the outermost span",
			reply: `prefix {"a":{"b":2}} suffix`,
			want:  `{"a":{"b":2}}`,
		},
		{
			name:    "no object at all",
			reply:   "I could not find any order information.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestValidateOrderSchema(t *testing.T) {
	schema := BuildOrderJSONSchema()

	good := []byte(`{
		"customer": {"name": "Jane", "address": "9 High St"},
		"items": [{"product": "DSK-0001", "quantity": 2, "confidence": 0.9}],
		"delivery": {"date": "2025-07-01", "address": "9 High St"}
	}`)
	assert.NoError(t, ValidateJSONAgainstSchema(schema, good))

	missingDelivery := []byte(`{
		"customer": {"name": "Jane", "address": "9 High St"},
		"items": []
	}`)
	assert.Error(t, ValidateJSONAgainstSchema(schema, missingDelivery))
}
