package javatime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"yyyy-MM-dd", "2006-01-02"},
		{"HH:mm:ss", "15:04:05"},
		{"yyyy-MM-dd'T'HH:mm:ss.SSSZ", "2006-01-02T15:04:05.000-0700"},
		{"yyyy-MM-dd'T'HH:mm:ssXXX", "2006-01-02T15:04:05Z07:00"},
		{"dd/MM/yy h:mm a", "02/01/06 3:04 PM"},
		{"EEEE, d MMMM yyyy", "Monday, 2 January 2006"},
		{"EEE MMM dd", "Mon Jan 02"},
		{"yyyyMMddHHmmss", "20060102150405"},
		{"'at' HH 'o''clock'", "at 15 o'clock"},
		{"HH''mm", "15'04"},
		{"yyyy D", "2006 002"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Layout(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"yyyy-MM-dd'T", ErrInvalidPattern},
		{"yyyy-ww", ErrUnsupportedPattern},
		{"HH:mm:ss SSS", ErrUnsupportedPattern},
		{"ddd", ErrInvalidPattern},
		{"yyyy 'Jan'", ErrUnsupportedPattern},
		{"yyyy-MM-dd'T'HH'1'", ErrUnsupportedPattern},
		{"bb", ErrInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Layout(tt.pattern)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormatAndParse(t *testing.T) {
	ts := time.Date(2000, 1, 1, 13, 4, 5, 6_000_000, time.UTC)

	got, err := Format(ts, "yyyy-MM-dd'T'HH:mm:ss.SSS")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T13:04:05.006", got)

	parsed, err := Parse(got, "yyyy-MM-dd'T'HH:mm:ss.SSS")
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	_, err = Parse("2000-13-01", "yyyy-MM-dd")
	assert.Error(t, err)
}
