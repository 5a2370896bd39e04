/* Copyright 2018 Comcast Cable Communications Management, LLC
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

// Package testutil has a few helpers for writing tests with JSON
// fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Comcast/collate/record"
)

// JS renders its argument as JSON or as a string indicating an error.
func JS(x interface{}) string {
	bs, err := json.Marshal(&x)
	if err != nil {
		log.Printf("warning: testutil.JS error %s for %#v", err, x)
		return fmt.Sprintf("%#v", x)
	}
	return string(bs)
}

// Dwimjs, when given a string or bytes, parses that data as JSON.
// When given anything else, just returns what's given.
//
// Objects become ordered *record.Records.
//
// See https://en.wikipedia.org/wiki/DWIM.
func Dwimjs(x interface{}) interface{} {
	switch vv := x.(type) {
	case []byte:
		return Dwimjs(string(vv))
	case string:
		var r record.Record
		if err := json.Unmarshal([]byte(vv), &r); err == nil {
			return &r
		}
		var v interface{}
		if err := json.Unmarshal([]byte(vv), &v); err != nil {
			panic(err)
		}
		return v
	default:
		return x
	}
}

// Rec parses a JSON object into a Record.  Panics on error.
func Rec(js string) *record.Record {
	var r record.Record
	if err := json.Unmarshal([]byte(js), &r); err != nil {
		panic(err)
	}
	return &r
}

// Recs parses a JSON array of objects into Records.  Panics on error.
func Recs(js string) []*record.Record {
	var rs []*record.Record
	if err := json.Unmarshal([]byte(js), &rs); err != nil {
		panic(err)
	}
	return rs
}
