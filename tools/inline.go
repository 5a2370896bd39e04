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

package tools

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"regexp"

	"github.com/Comcast/collate/storage"
	"github.com/Comcast/collate/util"
)

var inlinePattern = regexp.MustCompile(`%inline *\("([^"]*)"\)`)

// Inline replaces '%inline("NAME")' with f(NAME).
func Inline(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	var (
		acc  = make([]byte, 0, len(bs))
		last = 0
	)
	for _, loc := range inlinePattern.FindAllSubmatchIndex(bs, -1) {
		name := string(bs[loc[2]:loc[3]])
		replacement, err := f(name)
		if err != nil {
			return nil, err
		}
		util.Logf("inlining %s (%d bytes)", name, len(replacement))
		acc = append(acc, bs[last:loc[0]]...)
		acc = append(acc, replacement...)
		last = loc[1]
	}
	return append(acc, bs[last:]...), nil
}

// InlineQuoted is Inline that writes each replacement as a
// double-quoted string, which is a scalar in both YAML and JSON.  So
// 'doc: %inline("doc.md")' works for any Markdown.
func InlineQuoted(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	return Inline(bs, func(name string) ([]byte, error) {
		bs, err := f(name)
		if err != nil {
			return nil, err
		}
		return json.Marshal(string(bs))
	})
}

// ReadProfileFile reads a profile (see storage.ParseProfile) after
// InlineQuoting files named relative to the profile's directory.
func ReadProfileFile(filename string) (*storage.Profile, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filename)
	if bs, err = InlineQuoted(bs, func(name string) ([]byte, error) {
		return ioutil.ReadFile(filepath.Join(dir, name))
	}); err != nil {
		return nil, err
	}

	return storage.ParseProfile(bs)
}
