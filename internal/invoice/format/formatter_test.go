package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	issued := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	got, err := Number(DefaultNumberTemplate, issued, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260901-042", got)

	got, err = Number("{YY}/{SEQ}", issued, 7)
	require.NoError(t, err)
	assert.Equal(t, "26/7", got)
}

func TestNumberPattern(t *testing.T) {
	issued := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	got, err := NumberPattern(DefaultNumberTemplate, issued)
	require.NoError(t, err)
	assert.Equal(t, "INV-20260901-%", got)

	got, err = NumberPattern("{YY}/{SEQ}", issued)
	require.NoError(t, err)
	assert.Equal(t, "26/%", got)

	// Literal LIKE metacharacters must not widen the match.
	got, err = NumberPattern("100%_{SEQ3}", issued)
	require.NoError(t, err)
	assert.Equal(t, `100\%\_%`, got)

	_, err = NumberPattern("INV-{NOPE}", issued)
	assert.Error(t, err)

	_, err = NumberPattern("", issued)
	assert.Error(t, err)
}

func TestNumber_Invalid(t *testing.T) {
	issued := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := Number("", issued, 1)
	assert.Error(t, err)

	_, err = Number(DefaultNumberTemplate, issued, 0)
	assert.Error(t, err)

	_, err = Number("INV-{NOPE}", issued, 1)
	assert.Error(t, err)
}
