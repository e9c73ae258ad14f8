//go:build !integration

package sliceutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		item  string
		want  bool
	}{
		{name: "present", slice: []string{"svelte", "vue"}, item: "vue", want: true},
		{name: "absent", slice: []string{"svelte", "vue"}, item: "react", want: false},
		{name: "nil slice", slice: nil, item: "react", want: false},
		{name: "case sensitive", slice: []string{"Vue"}, item: "vue", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.slice, tt.item))
		})
	}
}

func TestFilter(t *testing.T) {
	in := []string{"mysql", "neon", "postgresql", "sqlite"}
	got := Filter(in, func(s string) bool { return strings.HasSuffix(s, "sql") })

	assert.Equal(t, []string{"mysql", "postgresql"}, got)
	assert.Equal(t, []string{"mysql", "neon", "postgresql", "sqlite"}, in, "input must not be modified")
	assert.Empty(t, Filter(nil, func(string) bool { return true }))
}

func TestMap(t *testing.T) {
	got := Map([]string{"bun", "npm"}, strings.ToUpper)
	assert.Equal(t, []string{"BUN", "NPM"}, got)
	assert.Empty(t, Map([]int(nil), func(i int) int { return i }))
}
