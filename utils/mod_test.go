package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgMax(t *testing.T) {
	require.Equal(t, -1, ArgMax([]float64{}))
	require.Equal(t, 2, ArgMax([]float64{0.1, 0.4, 0.9, 0.3}))
	require.Equal(t, 1, ArgMax([]int{1, 5, 5, 2}), "Ties go to the first maximum")
}

func TestRandom(t *testing.T) {
	t.Run("staying within inclusive bounds", func(t *testing.T) {
		r := NewRandom(1)
		seen := map[int]bool{}
		for i := 0; i < 1000; i++ {
			n := r.IntRange(-2, 2)
			require.GreaterOrEqual(t, n, -2)
			require.LessOrEqual(t, n, 2)
			seen[n] = true

			f := r.Float64Range(0.5, 1.5)
			require.GreaterOrEqual(t, f, 0.5)
			require.Less(t, f, 1.5)
		}
		require.Len(t, seen, 5, "Every value in range should appear")
	})

	t.Run("repeating sequences for a fixed seed", func(t *testing.T) {
		a, b := NewRandom(42), NewRandom(42)
		for i := 0; i < 100; i++ {
			require.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
		}
	})

	t.Run("forking is deterministic", func(t *testing.T) {
		a, b := Fork(NewRandom(9)), Fork(NewRandom(9))
		require.Equal(t, a.IntRange(0, 1<<20), b.IntRange(0, 1<<20))
	})

	t.Run("panicking on an empty range", func(t *testing.T) {
		require.Panics(t, func() { NewRandom(1).IntRange(3, 2) })
	})
}
