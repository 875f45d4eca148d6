package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := "Jane Smith\t320.00\r\n----------\r\n\r\n\r\n\r\nBob Jones  410.50   \r\n"
	got := Normalize(in)
	assert.Equal(t, "Jane Smith 320.00\n\nBob Jones  410.50", got)
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   \n\n  "))
}

func TestNormalizeKeepsColumnSpacing(t *testing.T) {
	in := "Name        Hours   Gross Pay\nJane Smith     40      320.00"
	assert.Equal(t, in, Normalize(in))
}
