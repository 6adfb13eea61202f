package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestPlaymode(t *testing.T) {
	table := []struct {
		input    string
		expected string
		found    bool
	}{
		{input: "Standard", expected: "std", found: true},
		{input: "catchthebeat", expected: "catch", found: true},
		{input: "mani", expected: "mania", found: true},
		{input: " MANIA ", expected: "mania", found: true},
		{input: "zzzzz", found: false},
		{input: "", found: false},
	}

	for _, row := range table {
		mode, found := suggestPlaymode(row.input)
		require.Equal(t, row.found, found, row.input)
		if row.found {
			require.Equal(t, row.expected, string(mode), row.input)
		}
	}
}
