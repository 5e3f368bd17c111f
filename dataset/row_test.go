package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIMDBNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want uint32
	}{
		{"standard reference", "tt0133093", 133093},
		{"short reference", "tt0076759", 76759},
		{"bare digits", "133093", 133093},
		{"surrounding whitespace", " tt0133093 ", 133093},
		{"empty", "", 0},
		{"prefix only", "tt", 0},
		{"non-numeric", "ttabc", 0},
		{"garbage", "n/a", 0},
		{"exceeds uint32", "tt99999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIMDBNumber(tt.in))
		})
	}
}
