package dateparse

import (
	"errors"
	"testing"
	"time"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

func TestParse(t *testing.T) {
	base := time.Date(2020, time.March, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		text string
		want time.Time
	}{
		{"2018-12-31", todotxt.Date(2018, 12, 31)},
		{"2018-1-2", todotxt.Date(2018, 1, 2)},
		{" 2019-06-01 ", todotxt.Date(2019, 6, 1)},
		{"today", todotxt.Date(2020, 3, 1)},
		{"tomorrow", todotxt.Date(2020, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text, base)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.text, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q): got %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	base := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	for _, text := range []string{"", "2018-02-30", "2018-13-01"} {
		_, err := Parse(text, base)
		if !errors.Is(err, ErrUnrecognized) {
			t.Errorf("Parse(%q): got %v, want ErrUnrecognized", text, err)
		}
	}
}
