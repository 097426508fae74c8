package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoanIDRoundTrip(t *testing.T) {
	t.Parallel()

	id := NewLoanID()
	require.Len(t, id.String(), 24)

	parsed, err := ParseLoanID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseLoanIDMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"abc",
		"zzzzzzzzzzzzzzzzzzzzzzzz",   // right length, not hex
		"0123456789abcdef01234567ff", // too long
		"0123456789abcdef0123456",    // too short
		"0123456789ABCDEF0123456g",   // stray non-hex char
		"not-an-id-but-24-chars!!",   // punctuation
	}
	for _, in := range cases {
		_, err := ParseLoanID(in)
		require.ErrorIs(t, err, ErrInvalidLoanID, "input %q", in)
	}
}

func TestNewLoanIDUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[LoanID]bool)
	for range 100 {
		id := NewLoanID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestLoanIDJSON(t *testing.T) {
	t.Parallel()

	id := NewLoanID()
	b, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(b))

	var out LoanID
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, id, out)

	require.Error(t, json.Unmarshal([]byte(`"nope"`), &out))
}
