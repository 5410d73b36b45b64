package webutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAcceptedLayouts(t *testing.T) {
	cases := []string{
		"2024-07-01T12:00:00Z",
		"2024-07-01T12:00:00",
		"2024-07-01 12:00:00",
		"2024-07-01",
	}
	for _, s := range cases {
		parsed, err := ParseDate(s)
		require.NoError(t, err, "layout %q", s)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.July, parsed.Month())
		assert.Equal(t, 1, parsed.Day())
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "вчера", "01.07.2024", "2024-13-40"} {
		_, err := ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestValidateReportsBadRequest(t *testing.T) {
	type dto struct {
		Name string `validate:"required"`
	}
	assert.NoError(t, Validate(dto{Name: "роза"}))
	assert.Error(t, Validate(dto{}))
}
