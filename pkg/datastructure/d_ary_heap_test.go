package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestMinHeapExtractsInKeyOrder(t *testing.T) {
	tests := []struct {
		name string
		d    int
	}{
		{"binary", 2},
		{"4-ary", 4},
		{"8-ary", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap(tt.d)
			rd := rand.New(rand.NewSource(uint64(tt.d)))
			const n = 500
			for i := int32(0); i < n; i++ {
				h.Insert(i, NewHHKey(rd.Intn(100), uint8(rd.Intn(3)), rd.Intn(50)))
			}
			require.Equal(t, n, h.Size())

			prev, err := h.ExtractMin()
			require.NoError(t, err)
			for !h.IsEmpty() {
				cur, err := h.ExtractMin()
				require.NoError(t, err)
				assert.False(t, cur.GetRank().Less(prev.GetRank()), "heap order violated")
				assert.False(t, h.Contains(cur.GetItem()))
				prev = cur
			}
		})
	}
}

func TestMinHeapKeyOrder(t *testing.T) {
	h := NewFourAryHeap()
	h.Insert(0, NewHHKey(5, 0, 10))
	h.Insert(1, NewHHKey(5, 1, 0))
	h.Insert(2, NewHHKey(5, 0, 3))
	h.Insert(3, NewHHKey(4, 2, 100))

	expected := []int32{3, 2, 0, 1}
	for _, item := range expected {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, item, node.GetItem())
	}
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap()
	for i := int32(0); i < 10; i++ {
		h.Insert(i, NewDijkstraKey(int(100+i)))
	}

	require.NoError(t, h.DecreaseKey(7, NewDijkstraKey(1)))
	assert.Equal(t, 1, h.GetMinrank().GetDistance())

	// increasing is rejected
	assert.Error(t, h.DecreaseKey(3, NewDijkstraKey(1000)))

	node, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, int32(7), node.GetItem())

	// not on the heap anymore
	assert.Error(t, h.DecreaseKey(7, NewDijkstraKey(0)))
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewFourAryHeap()
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)

	h.Insert(0, NewDijkstraKey(3))
	h.Clear()
	assert.True(t, h.IsEmpty())
	assert.False(t, h.Contains(0))

	// handles are reusable after Clear
	h.Insert(0, NewDijkstraKey(9))
	h.Insert(1, NewDijkstraKey(2))
	node, err := h.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, int32(1), node.GetItem())
}
