package conjparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForm(t *testing.T) {
	tests := []struct{ in, out string }{
		{"Parlar", "parlar"},
		{"  parlà ", "parlà"},
		{"PARLÀ", "parlà"},
		// Decomposed a + combining grave composes to à.
		{"parla\u0300", "parlà"},
		{"", ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, NormalizeForm(test.in), "%q", test.in)
	}
}

func TestFoldDiacritics(t *testing.T) {
	tests := []struct{ in, out string }{
		{"parlà", "parla"},
		{"parlaríeu", "parlarieu"},
		{"temeré", "temere"},
		{"parla", "parla"},
		// The ela geminada dot is not a combining mark and stays put.
		{"col·locar", "col·locar"},
		{"aïllar", "aillar"},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, FoldDiacritics(test.in), test.in)
	}
}
