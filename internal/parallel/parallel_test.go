package parallel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapOrdered_PreservesInputOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}
	results := MapOrdered(items, 2, func(n int) (int, error) {
		return n * 10, nil
	})
	require.Len(t, results, 5)
	for i, res := range results {
		require.NoError(t, res.Err)
		require.Equal(t, items[i]*10, res.Value)
	}
}

func TestMapOrdered_ErrorsStayWithTheirItem(t *testing.T) {
	errOdd := errors.New("odd")
	results := MapOrdered([]int{1, 2, 3}, 3, func(n int) (int, error) {
		if n%2 == 1 {
			return 0, errOdd
		}
		return n, nil
	})
	require.ErrorIs(t, results[0].Err, errOdd)
	require.NoError(t, results[1].Err)
	require.ErrorIs(t, results[2].Err, errOdd)
}

func TestMapOrdered_EmptyInput_ReturnsNil(t *testing.T) {
	require.Nil(t, MapOrdered(nil, 4, func(n int) (int, error) { return n, nil }))
}
