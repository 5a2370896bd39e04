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

// Package storage keeps named sort profiles.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Comcast/collate/compare"

	"github.com/jsccast/yaml"
)

var (
	// ErrNotFound occurs when a named Profile doesn't exist.
	ErrNotFound = errors.New("profile not found")

	// ErrNoName occurs when a Profile without a name is stored.
	ErrNoName = errors.New("profile needs a name")
)

// Profile is a named, documented list of Criteria.
type Profile struct {
	Name string `json:"name" yaml:"name"`

	// Doc is Markdown.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	Criteria []*compare.Criterion `json:"criteria" yaml:"criteria"`
}

// Comparator makes a Comparator from the Profile's Criteria.
func (p *Profile) Comparator() *compare.Comparator {
	if p == nil {
		return compare.NewComparator()
	}
	return compare.NewComparator(p.Criteria...)
}

// Copy returns a shallow copy.  Criteria are immutable, so sharing
// them is fine.
func (p *Profile) Copy() *Profile {
	cs := make([]*compare.Criterion, len(p.Criteria))
	copy(cs, p.Criteria)
	return &Profile{
		Name:     p.Name,
		Doc:      p.Doc,
		Criteria: cs,
	}
}

// Storage is a persistence interface for Profiles.
type Storage interface {
	// Put creates or replaces the Profile with p's name.
	Put(ctx context.Context, p *Profile) error

	// Get returns ErrNotFound if there's no such Profile.
	Get(ctx context.Context, name string) (*Profile, error)

	// List returns the names of the Profiles in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete returns ErrNotFound if there's no such Profile.
	Delete(ctx context.Context, name string) error
}

// ParseProfile reads a Profile from YAML (or JSON).
//
// The source can be either a bare list of serialized criteria or a
// mapping with "criteria" and optional "name" and "doc".
func ParseProfile(bs []byte) (*Profile, error) {
	var x interface{}
	if err := yaml.Unmarshal(bs, &x); err != nil {
		return nil, err
	}

	p := &Profile{}
	var specs interface{}

	switch vv := stringKeys(x).(type) {
	case nil:
		return nil, errors.New("empty profile")
	case []interface{}:
		specs = vv
	case map[string]interface{}:
		var err error
		if p.Name, err = field(vv, "name"); err != nil {
			return nil, err
		}
		if p.Doc, err = field(vv, "doc"); err != nil {
			return nil, err
		}
		specs = vv["criteria"]
	default:
		return nil, fmt.Errorf("bad profile (%T)", x)
	}

	switch vv := specs.(type) {
	case nil:
	case []interface{}:
		cs, err := compare.FromRecords(vv)
		if err != nil {
			return nil, err
		}
		p.Criteria = cs
	default:
		return nil, fmt.Errorf("bad criteria (%T)", specs)
	}

	return p, nil
}

func field(m map[string]interface{}, k string) (string, error) {
	switch vv := m[k].(type) {
	case nil:
		return "", nil
	case string:
		return vv, nil
	default:
		return "", fmt.Errorf("profile %s should be a string, not a %T", k, vv)
	}
}

// stringKeys converts any map[interface{}]interface{} to a
// map[string]interface{}, recursively.
func stringKeys(x interface{}) interface{} {
	switch vv := x.(type) {
	case map[interface{}]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			acc[fmt.Sprint(k)] = stringKeys(v)
		}
		return acc
	case map[string]interface{}:
		for k, v := range vv {
			vv[k] = stringKeys(v)
		}
		return vv
	case []interface{}:
		for i, v := range vv {
			vv[i] = stringKeys(v)
		}
		return vv
	default:
		return x
	}
}
