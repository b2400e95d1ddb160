package affine

import (
	"container/heap"
	"math/big"
)

// merge2 按符号顺序同时遍历两个有序噪声项序列。
// 只在一侧出现的符号，另一侧的偏差为 nil。
func merge2(x, y []Term, fn func(sym uint64, xi, yi *big.Float)) {
	i, j := 0, 0
	for i < len(x) || j < len(y) {
		switch {
		case j == len(y) || (i < len(x) && x[i].Symbol < y[j].Symbol):
			fn(x[i].Symbol, x[i].Deviation, nil)
			i++
		case i == len(x) || y[j].Symbol < x[i].Symbol:
			fn(y[j].Symbol, nil, y[j].Deviation)
			j++
		default:
			fn(x[i].Symbol, x[i].Deviation, y[j].Deviation)
			i++
			j++
		}
	}
}

// cursor 多路归并中一个序列的读取位置
type cursor struct {
	terms []Term
	pos   int
}

func (c *cursor) head() uint64 { return c.terms[c.pos].Symbol }

// cursorHeap 以当前符号为键的最小堆
type cursorHeap []*cursor

func (h cursorHeap) Len() int           { return len(h) }
func (h cursorHeap) Less(i, j int) bool { return h[i].head() < h[j].head() }
func (h cursorHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(v any)        { *h = append(*h, v.(*cursor)) }
func (h *cursorHeap) Pop() any {
	old := *h
	c := old[len(old)-1]
	*h = old[:len(old)-1]
	return c
}

// mergeN 按符号顺序归并 n 个有序序列，每个符号回调一次，
// devs 为该符号在各序列中的偏差（只含出现的序列）
func mergeN(seqs [][]Term, fn func(sym uint64, devs []*big.Float)) {
	h := make(cursorHeap, 0, len(seqs))
	for _, s := range seqs {
		if len(s) > 0 {
			h = append(h, &cursor{terms: s})
		}
	}
	heap.Init(&h)
	devs := make([]*big.Float, 0, len(seqs))
	for h.Len() > 0 {
		sym := h[0].head()
		devs = devs[:0]
		for h.Len() > 0 && h[0].head() == sym {
			c := h[0]
			devs = append(devs, c.terms[c.pos].Deviation)
			c.pos++
			if c.pos == len(c.terms) {
				heap.Pop(&h)
			} else {
				heap.Fix(&h, 0)
			}
		}
		fn(sym, devs)
	}
}
