package orderid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_Default(t *testing.T) {
	n, err := New(`^\d{4,6}$`)
	require.NoError(t, err)

	v, err := n.Normalize("40500")
	require.NoError(t, err)
	require.Equal(t, int64(40500), v)

	v, err = n.Normalize("  40500  ")
	require.NoError(t, err)
	require.Equal(t, int64(40500), v)

	for _, bad := range []string{"", "123", "1234567", "40a50", "#40500", "40500x", " "} {
		_, err := n.Normalize(bad)
		require.ErrorIs(t, err, ErrInvalidIdentifier, "input %q", bad)
	}
}

func TestNormalize_HashPrefixPattern(t *testing.T) {
	n, err := New(`^#?\d{4,6}$`)
	require.NoError(t, err)

	v, err := n.Normalize("#40500")
	require.NoError(t, err)
	require.Equal(t, int64(40500), v)

	v, err = n.Normalize("40500")
	require.NoError(t, err)
	require.Equal(t, int64(40500), v)
}

func TestNormalize_ParseIsSecondGate(t *testing.T) {
	// A permissive pattern lets non-numeric input through the regex; the
	// integer parse still rejects it.
	n, err := New(`^.+$`)
	require.NoError(t, err)

	_, err = n.Normalize("not-a-number")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New(`(`)
	require.Error(t, err)
}
