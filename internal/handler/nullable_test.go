package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *uint
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"category_id": null}`, true, nil},
		{"value", `{"category_id": 7}`, true, ptr(uint(7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var input UpdateProductInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &input))

			assert.Equal(t, tt.wantSet, input.CategoryID.Set)
			assert.Equal(t, tt.wantValue, input.CategoryID.Value)
		})
	}
}

func TestNullableID_UnmarshalJSON_Invalid(t *testing.T) {
	for _, body := range []string{`{"category_id": "7"}`, `{"category_id": -1}`, `{"category_id": 1.5}`} {
		var input UpdateProductInput
		assert.Error(t, json.Unmarshal([]byte(body), &input), body)
	}
}

func ptr[T any](v T) *T {
	return &v
}
