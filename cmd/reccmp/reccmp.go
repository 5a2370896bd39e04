/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

// Package main is a little command-line utility to compare two
// records.
//
//	reccmp -c '[{"key":"n","type":"integer"}]' -a '{"n":"5"}' -b '{"n":"10"}'
//
// Prints -1, 0, or 1.  With -w, prints whether the result was the
// wanted one.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/Comcast/collate/compare"
	"github.com/Comcast/collate/record"
	"github.com/Comcast/collate/util"
)

func main() {
	var (
		criteriaJS = flag.String("c", "[]", "criteria in JSON")
		aJS        = flag.String("a", "{}", "first record in JSON")
		bJS        = flag.String("b", "{}", "second record in JSON")
		want       = flag.Int("w", 2, "wanted result (-1, 0, or 1)")

		bench = flag.Int("bench", 0, "number of times to run (and report time)")

		verbose = flag.Bool("v", false, "verbosity")
	)

	flag.Parse()

	util.Logging = *verbose

	n, err := run(*criteriaJS, *aJS, *bJS, *bench)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *want != 2 {
		fmt.Printf("%t\n", n == *want)
		return
	}

	fmt.Printf("%d\n", n)
}

func run(criteriaJS, aJS, bJS string, bench int) (int, error) {
	var (
		specs []interface{}
		a, b  record.Record
	)

	if err := json.Unmarshal([]byte(criteriaJS), &specs); err != nil {
		return 0, fmt.Errorf("criteria: %w", err)
	}
	if err := json.Unmarshal([]byte(aJS), &a); err != nil {
		return 0, fmt.Errorf("record a: %w", err)
	}
	if err := json.Unmarshal([]byte(bJS), &b); err != nil {
		return 0, fmt.Errorf("record b: %w", err)
	}

	c, err := compare.ComparatorFromRecords(specs)
	if err != nil {
		return 0, err
	}

	if 0 < bench {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		allocs := stats.TotalAlloc
		then := time.Now()
		for i := 0; i < bench; i++ {
			if _, err := c.Compare(&a, &b); err != nil {
				return 0, err
			}
		}
		elapsed := time.Since(then)
		meanNanos := elapsed.Nanoseconds() / int64(bench)

		runtime.ReadMemStats(&stats)
		allocated := (stats.TotalAlloc - allocs) / uint64(bench)

		log.Printf("%d iterations, %d mean ns/Compare, %d mean bytes allocated per Compare", bench, meanNanos, allocated)
	}

	return c.Compare(&a, &b)
}
