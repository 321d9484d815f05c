// Copyright (c) 2026 Cinerate. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinerate/cinerate/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of navigation parameters.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{
			name:       "defaults_when_absent",
			query:      "",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.DefaultLimit,
		},
		{
			name:       "explicit_values",
			query:      "?offset=20&limit=50",
			wantOffset: 20,
			wantLimit:  50,
		},
		{
			name:       "negative_offset_clamped",
			query:      "?offset=-5",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.DefaultLimit,
		},
		{
			name:       "zero_limit_clamped",
			query:      "?limit=0",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.DefaultLimit,
		},
		{
			name:       "excessive_limit_clamped",
			query:      "?limit=5000",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.DefaultLimit,
		},
		{
			name:       "max_limit_allowed",
			query:      "?limit=100",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.MaxLimit,
		},
		{
			name:       "non_numeric_ignored",
			query:      "?offset=abc&limit=xyz",
			wantOffset: pagination.DefaultOffset,
			wantLimit:  pagination.DefaultLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/items"+tt.query, nil)

			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantOffset, params.Offset)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestNewMeta verifies the response metadata mirrors the request parameters.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Offset: 30, Limit: 15}, 123)

	assert.Equal(t, 30, meta.Offset)
	assert.Equal(t, 15, meta.Limit)
	assert.EqualValues(t, 123, meta.Total)
}
