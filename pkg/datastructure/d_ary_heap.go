package datastructure

import (
	"errors"

	"github.com/lintang-b-s/hhroute/pkg"
)

var ErrHeapEmpty = errors.New("heap is empty")

type PriorityQueueNode struct {
	rank HHKey
	item int32
}

func (p PriorityQueueNode) GetItem() int32 {
	return p.item
}

func (p PriorityQueueNode) GetRank() HHKey {
	return p.rank
}

// MinHeap d-ary heap priorityqueue of int32 handles. the caller owns the records the handles refer to,
// the heap only keeps their rank and position.
type MinHeap struct {
	heap []PriorityQueueNode
	pos  []int // pos[handle] = index of handle in heap, -1 if not on the heap
	d    int
}

func NewBinaryHeap() *MinHeap {
	return NewdAryHeap(2)
}

func NewFourAryHeap() *MinHeap {
	return NewdAryHeap(4)
}

func NewdAryHeap(d int) *MinHeap {
	return &MinHeap{
		heap: make([]PriorityQueueNode, 0),
		pos:  make([]int, 0),
		d:    d,
	}
}

func (h *MinHeap) Preallocate(maxSearchSize int) {
	h.heap = make([]PriorityQueueNode, 0, maxSearchSize)
	h.pos = make([]int, 0, maxSearchSize)
}

// parent index of parent
func (h *MinHeap) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp swap with parent while parent rank is bigger. O(logN)
func (h *MinHeap) heapifyUp(index int) {
	for index != 0 && h.heap[index].rank.Less(h.heap[h.parent(index)].rank) {
		h.Swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swap with the smallest child while it is smaller. O(logN)
func (h *MinHeap) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.heap[i].rank.Less(h.heap[smallest].rank) {
				smallest = i
			}
		}

		if !h.heap[smallest].rank.Less(h.heap[index].rank) {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap) Swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]

	h.pos[h.heap[i].item] = i
	h.pos[h.heap[j].item] = j
}

func (h *MinHeap) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap) Size() int {
	return len(h.heap)
}

// Clear empties the heap, keeps the allocated capacity.
func (h *MinHeap) Clear() {
	h.heap = h.heap[:0]
	h.pos = h.pos[:0]
}

func (h *MinHeap) GetMin() (PriorityQueueNode, error) {
	if h.IsEmpty() {
		return PriorityQueueNode{}, ErrHeapEmpty
	}
	return h.heap[0], nil
}

func (h *MinHeap) GetMinrank() HHKey {
	if h.IsEmpty() {
		return NewDijkstraKey(pkg.INF_DISTANCE)
	}
	return h.heap[0].rank
}

// Contains handle is currently on the heap.
func (h *MinHeap) Contains(item int32) bool {
	return int(item) < len(h.pos) && h.pos[item] >= 0
}

// Insert new handle. O(logN)
func (h *MinHeap) Insert(item int32, rank HHKey) {
	for len(h.pos) <= int(item) {
		h.pos = append(h.pos, -1)
	}
	h.heap = append(h.heap, PriorityQueueNode{rank: rank, item: item})
	index := h.Size() - 1
	h.pos[item] = index
	h.heapifyUp(index)
}

// ExtractMin pop handle with the minimum rank. O(logN)
func (h *MinHeap) ExtractMin() (PriorityQueueNode, error) {
	if h.IsEmpty() {
		return PriorityQueueNode{}, ErrHeapEmpty
	}
	root := h.heap[0]

	h.Swap(0, h.Size()-1)

	h.heap = h.heap[:h.Size()-1]
	h.pos[root.item] = -1
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

// DecreaseKey update rank of a handle on the heap. O(logN)
func (h *MinHeap) DecreaseKey(item int32, rank HHKey) error {
	if !h.Contains(item) {
		return errors.New("invalid index or new value")
	}
	itemPos := h.pos[item]
	if h.heap[itemPos].rank.Less(rank) {
		return errors.New("invalid index or new value")
	}

	h.heap[itemPos].rank = rank
	h.heapifyUp(itemPos)
	return nil
}
