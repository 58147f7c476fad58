package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceNow = time.Date(2025, time.April, 27, 0, 0, 0, 0, time.UTC)

func TestParseTimestamp(t *testing.T) {
	parsed, err := ParseTimestamp("2025-04-20T00:00:00.000Z")
	require.NoError(t, err)
	require.True(t, parsed.Equal(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)))

	parsed, err = ParseTimestamp("2025-04-20T07:00:00+07:00")
	require.NoError(t, err)
	require.True(t, parsed.Equal(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)))

	for _, raw := range []string{"", "   ", "not-a-date", "20/04/2025"} {
		_, err := ParseTimestamp(raw)
		require.ErrorIs(t, err, ErrMalformedTimestamp, raw)
	}
}

func TestIsPast(t *testing.T) {
	past, err := IsPast("2025-04-20T00:00:00Z", referenceNow)
	require.NoError(t, err)
	assert.True(t, past)

	past, err = IsPast("2025-05-01T00:00:00Z", referenceNow)
	require.NoError(t, err)
	assert.False(t, past)

	past, err = IsPast(referenceNow.Format(time.RFC3339), referenceNow)
	require.NoError(t, err)
	assert.False(t, past, "a deadline equal to now is not past")

	_, err = IsPast("not-a-date", referenceNow)
	require.ErrorIs(t, err, ErrMalformedTimestamp)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleTeacher, ParseRole(" Teacher "))
	assert.Equal(t, RoleStudent, ParseRole("student"))
	assert.Equal(t, RoleStudent, ParseRole(""))
}
