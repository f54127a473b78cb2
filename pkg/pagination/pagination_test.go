package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	require.Equal(t, 1, NormalizePage(0))
	require.Equal(t, 1, NormalizePage(-3))
	require.Equal(t, 7, NormalizePage(7))
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Offset(1))
	require.Equal(t, 10, Offset(2))
	require.Equal(t, 0, Offset(-1))
}

func TestDescribe(t *testing.T) {
	page := Describe(2, 25)
	require.Equal(t, 2, page.Number)
	require.Equal(t, PageSize, page.Size)
	require.Equal(t, int64(25), page.TotalItems)
	require.Equal(t, 3, page.TotalPages)

	empty := Describe(1, 0)
	require.Equal(t, 0, empty.TotalPages)
}
