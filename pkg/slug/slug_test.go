// Copyright (c) 2026 Keepsake. All rights reserved.
// Author: dev@keepsake.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keepsakehq/keepsake/pkg/slug"
)

/*
TestFrom covers the slug transformation pipeline end to end.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_phrase", "Summer in Hokkaido", "summer-in-hokkaido"},
		{"accented_characters", "Café à Paris", "cafe-a-paris"},
		{"punctuation_collapsed", "Dad's 60th -- Birthday!!", "dad-s-60th-birthday"},
		{"leading_trailing_noise", "  ***Wedding Day***  ", "wedding-day"},
		{"digits_kept", "Route 66 Road Trip 2025", "route-66-road-trip-2025"},
		{"already_a_slug", "first-steps", "first-steps"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
