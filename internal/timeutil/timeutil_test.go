package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInstant(t *testing.T) {
	want := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, want, Normalize(want))
}

func TestNormalizeISOStrings(t *testing.T) {
	want := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2026-02-25T10:00:00Z",
		"2026-02-25T10:00:00",
		"2026-02-25T10:00",
	} {
		assert.Equal(t, want, Normalize(s).UTC(), "input %q", s)
	}
}

func TestNormalizeDateOnly(t *testing.T) {
	got := Normalize("2026-02-25").UTC()
	assert.Equal(t, time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeSecondsPair(t *testing.T) {
	want := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	got := Normalize(map[string]interface{}{"seconds": float64(want.Unix())})
	assert.Equal(t, want, got)

	got = Normalize(map[string]interface{}{"_seconds": float64(want.Unix()), "nanoseconds": float64(0)})
	assert.Equal(t, want, got)
}

func TestNormalizeEpochMillis(t *testing.T) {
	want := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	got := Normalize(float64(want.UnixMilli()))
	assert.Equal(t, want, got)
}

func TestNormalizeUnparsableSubstitutesNow(t *testing.T) {
	before := time.Now().UTC()
	got := Normalize("not a timestamp")
	after := time.Now().UTC()
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}
