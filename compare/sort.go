/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package compare

import (
	"context"
	"sort"

	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/util"

	"golang.org/x/sync/errgroup"
)

// cell memoizes the coerced value of one Criterion for one item.
type cell struct {
	done bool
	key  interface{}
	err  error
}

// sorter sorts a permutation of item indexes.  Each item's coerced
// values are computed at most once and only when a comparison
// actually needs them.
type sorter[T any] struct {
	c     *Comparator
	items []T
	cells [][]cell
}

func newSorter[T any](c *Comparator, items []T) *sorter[T] {
	cells := make([][]cell, len(items))
	for i := range cells {
		cells[i] = make([]cell, c.Len())
	}
	return &sorter[T]{
		c:     c,
		items: items,
		cells: cells,
	}
}

func (s *sorter[T]) key(item, j int) (interface{}, error) {
	k := &s.cells[item][j]
	if !k.done {
		cr := s.c.criteria[j]
		v, _ := record.Get(s.items[item], cr.field)
		k.key, k.err = cr.coerce(v)
		if k.err != nil {
			k.err = at(j, k.err)
		}
		k.done = true
	}
	return k.key, k.err
}

func (s *sorter[T]) compare(a, b int) (int, error) {
	for j, cr := range s.c.criteria {
		x, err := s.key(a, j)
		if err != nil {
			return 0, err
		}
		y, err := s.key(b, j)
		if err != nil {
			return 0, err
		}
		if n := cr.directed(cr.compareKeys(x, y)); n != 0 {
			return n, nil
		}
	}
	return 0, nil
}

// sortIndexes stably sorts the given item indexes.
//
// The first error stops further comparisons, and the indexes are
// left in an unspecified order.
func (s *sorter[T]) sortIndexes(idx []int) error {
	var first error
	sort.SliceStable(idx, func(i, j int) bool {
		if first != nil {
			return false
		}
		n, err := s.compare(idx[i], idx[j])
		if err != nil {
			first = err
			return false
		}
		return n < 0
	})
	return first
}

// merge stably merges two sorted runs of indexes.
func (s *sorter[T]) merge(left, right []int) ([]int, error) {
	acc := make([]int, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		n, err := s.compare(left[i], right[j])
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			acc = append(acc, left[i])
			i++
		} else {
			acc = append(acc, right[j])
			j++
		}
	}
	acc = append(acc, left[i:]...)
	acc = append(acc, right[j:]...)
	return acc, nil
}

func (s *sorter[T]) apply(idx []int) {
	sorted := make([]T, len(idx))
	for i, k := range idx {
		sorted[i] = s.items[k]
	}
	copy(s.items, sorted)
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Sort stably sorts the items.
//
// If a comparison fails, Sort returns that error and leaves the items
// in their original order.
func Sort[T any](c *Comparator, items []T) error {
	if c.Len() == 0 || len(items) < 2 {
		return nil
	}
	s := newSorter(c, items)
	idx := identity(len(items))
	if err := s.sortIndexes(idx); err != nil {
		return err
	}
	s.apply(idx)
	util.Logf("compare: sorted %d items on %d criteria", len(items), c.Len())
	return nil
}

// Sort stably sorts the items.  See the Sort function.
func (c *Comparator) Sort(items []interface{}) error {
	return Sort(c, items)
}

// SortRecords stably sorts the Records.  See the Sort function.
func (c *Comparator) SortRecords(rs []*record.Record) error {
	return Sort(c, rs)
}

// SortConcurrently gives the same result as Sort, but it sorts chunks
// of the items in up to the given number of goroutines and then
// merges them.
//
// The context is checked between phases.  On any error, the items are
// left in their original order.
func SortConcurrently[T any](ctx context.Context, c *Comparator, items []T, workers int) error {
	if workers <= 1 || len(items) < 2*workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		return Sort(c, items)
	}
	if c.Len() == 0 {
		return nil
	}

	var (
		s      = newSorter(c, items)
		idx    = identity(len(items))
		size   = (len(items) + workers - 1) / workers
		chunks = make([][]int, 0, workers)
	)
	for lo := 0; lo < len(idx); lo += size {
		hi := lo + size
		if hi > len(idx) {
			hi = len(idx)
		}
		chunks = append(chunks, idx[lo:hi])
	}

	// Chunks touch disjoint items, so they can share the memo.
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.sortIndexes(chunk)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for 1 < len(chunks) {
		if err := ctx.Err(); err != nil {
			return err
		}
		merged := make([][]int, 0, (len(chunks)+1)/2)
		for i := 0; i < len(chunks); i += 2 {
			if i+1 == len(chunks) {
				merged = append(merged, chunks[i])
				continue
			}
			m, err := s.merge(chunks[i], chunks[i+1])
			if err != nil {
				return err
			}
			merged = append(merged, m)
		}
		chunks = merged
	}

	s.apply(chunks[0])
	util.Logf("compare: sorted %d items on %d criteria with %d workers", len(items), c.Len(), workers)
	return nil
}

// IsSorted reports whether the items are already in order.
func IsSorted[T any](c *Comparator, items []T) (bool, error) {
	for i := 1; i < len(items); i++ {
		n, err := c.Compare(items[i-1], items[i])
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
