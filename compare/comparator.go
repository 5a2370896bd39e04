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
	"errors"

	"github.com/Comcast/collate/record"
)

// Comparator compares records using an ordered list of Criteria.
//
// The first Criterion that distinguishes two records decides; later
// ones aren't consulted (or coerced).  With no Criteria, all records
// are equal.
//
// A Comparator is immutable and safe for concurrent use.
type Comparator struct {
	criteria []*Criterion
}

// NewComparator makes a Comparator.  Nil criteria are ignored.
func NewComparator(criteria ...*Criterion) *Comparator {
	acc := make([]*Criterion, 0, len(criteria))
	for _, c := range criteria {
		if c != nil {
			acc = append(acc, c)
		}
	}
	return &Comparator{
		criteria: acc,
	}
}

// ComparatorFromRecords makes a Comparator from serialized criteria.
// See FromRecords.
func ComparatorFromRecords(xs []interface{}) (*Comparator, error) {
	cs, err := FromRecords(xs)
	if err != nil {
		return nil, err
	}
	return NewComparator(cs...), nil
}

// Criteria returns a copy of the Comparator's Criteria.
func (c *Comparator) Criteria() []*Criterion {
	if c == nil {
		return nil
	}
	acc := make([]*Criterion, len(c.criteria))
	copy(acc, c.criteria)
	return acc
}

// Len returns the number of Criteria.
func (c *Comparator) Len() int {
	if c == nil {
		return 0
	}
	return len(c.criteria)
}

// Compare returns a negative number, zero, or a positive number as a
// is less than, equal to, or greater than b.
//
// The records can be anything record.Get understands.  If a value
// can't be coerced to its Criterion's Type, Compare returns a
// *FormatError.
func (c *Comparator) Compare(a, b interface{}) (int, error) {
	if c == nil {
		return 0, nil
	}
	for i, cr := range c.criteria {
		n, err := cr.compareAt(i, a, b)
		if err != nil {
			return 0, err
		}
		if n != 0 {
			return n, nil
		}
	}
	return 0, nil
}

// Compare compares two records using only this Criterion.
func (c *Criterion) Compare(a, b interface{}) (int, error) {
	return c.compareAt(0, a, b)
}

func (c *Criterion) compareAt(i int, a, b interface{}) (int, error) {
	x, _ := record.Get(a, c.field)
	kx, err := c.coerce(x)
	if err != nil {
		return 0, at(i, err)
	}
	y, _ := record.Get(b, c.field)
	ky, err := c.coerce(y)
	if err != nil {
		return 0, at(i, err)
	}
	return c.directed(c.compareKeys(kx, ky)), nil
}

func (c *Criterion) directed(n int) int {
	if c.descending {
		return -n
	}
	return n
}

// at sets the criterion index of a FormatError.
func at(i int, err error) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Index = i
	}
	return err
}
