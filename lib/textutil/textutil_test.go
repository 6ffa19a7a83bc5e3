package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a\n\tb   c "))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("abc", 5))
	require.Equal(t, "abc", Truncate("abc", 3))
	require.Equal(t, "ab...", Truncate("abcd", 2))
}

func TestTruncateRuneBoundary(t *testing.T) {
	// "é" is two bytes; cutting at 2 would split it
	require.Equal(t, "h...", Truncate("héllo", 2))
	require.Equal(t, "hé...", Truncate("héllo", 3))
}
