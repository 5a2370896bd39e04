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

package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// MarshalJSON writes the Record as a JSON object with keys in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range r.keys {
		if 0 < i {
			buf.WriteByte(',')
		}
		kjs, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kjs)
		buf.WriteByte(':')
		vjs, err := marshal(r.vals[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(vjs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal is json.Marshal without the HTML escaping.
func marshal(x interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads a JSON object and keeps its key order.
//
// Nested objects become *Records, and numbers become json.Numbers so
// that large integers don't lose precision.
func (r *Record) UnmarshalJSON(bs []byte) error {
	r.keys = nil
	r.vals = make(map[string]interface{}, 8)

	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, is := tok.(json.Delim); !is || d != '{' {
		return fmt.Errorf("record: can't unmarshal %v into a record", tok)
	}
	return r.decodeObject(dec)
}

func (r *Record) decodeObject(dec *json.Decoder) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		k, is := tok.(string)
		if !is {
			return fmt.Errorf("record: unexpected key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return err
		}
		r.Set(k, v)
	}
	// The closing brace.
	_, err := dec.Token()
	return err
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, is := tok.(json.Delim)
	if !is {
		return tok, nil
	}
	switch d {
	case '{':
		r := New()
		if err := r.decodeObject(dec); err != nil {
			return nil, err
		}
		return r, nil
	case '[':
		acc := make([]interface{}, 0, 4)
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			acc = append(acc, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("record: unexpected delimiter %v", d)
	}
}

// MarshalYAML renders the Record as an ordered YAML mapping.
func (r *Record) MarshalYAML() (interface{}, error) {
	ms := make(yaml.MapSlice, 0, r.Len())
	r.Range(func(k string, v interface{}) bool {
		ms = append(ms, yaml.MapItem{Key: k, Value: v})
		return true
	})
	return ms, nil
}

// UnmarshalYAML reads a YAML mapping and keeps its key order.
//
// Nested mappings become *Records.  Non-string keys are rendered with
// fmt.Sprint.
func (r *Record) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err != nil {
		return err
	}
	r.keys = nil
	r.vals = make(map[string]interface{}, len(ms))
	for _, item := range ms {
		r.Set(yamlKey(item.Key), fromYAML(item.Value))
	}
	return nil
}

func yamlKey(k interface{}) string {
	if s, is := k.(string); is {
		return s
	}
	return fmt.Sprint(k)
}

func fromYAML(x interface{}) interface{} {
	switch vv := x.(type) {
	case yaml.MapSlice:
		r := New()
		for _, item := range vv {
			r.Set(yamlKey(item.Key), fromYAML(item.Value))
		}
		return r
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			m[yamlKey(k)] = fromYAML(v)
		}
		return FromMap(m)
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, y := range vv {
			acc[i] = fromYAML(y)
		}
		return acc
	default:
		return x
	}
}
