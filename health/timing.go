// Package health carries the teacher's lightweight timing instrumentation,
// repurposed from per-HTTP-handler timing to per-pipeline-stage timing: a
// build records how long bounds/prequantize/extract/join/cut/dedup/delta
// each took, and a caller can print the running totals across many builds.
package health

import (
	"fmt"
	"sort"
	"time"
)

// TrackTime logs the time taken by a single call. Usage - as the first
// line of a stage: defer health.TrackTime(time.Now(), "bounds").
func TrackTime(start time.Time, name string) {
	fmt.Println(name, "took", time.Since(start).Round(time.Millisecond))
}

// this is not thread-safe: Build runs its stages sequentially, and nothing
// here is meant to be called from more than one goroutine at a time.
var elapsedMap = make(map[string]int64)
var invocationMap = make(map[string]int64)

// RecordTime accumulates the duration of a named pipeline stage, for
// LogTime to report once a batch of builds has completed.
func RecordTime(start time.Time, name string) {
	elapsed := time.Since(start)
	elapsedMap[name] += elapsed.Nanoseconds()
	invocationMap[name]++
}

// LogTime prints, in stage-name order, the accumulated time spent in each
// named stage since the last call, then resets the accumulators.
func LogTime() {
	names := make([]string, 0, len(invocationMap))
	for name := range invocationMap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		elapsedMs := elapsedMap[name] / 1000000
		fmt.Println(name, "took", elapsedMs, "ms over", invocationMap[name], "invocations")
	}
	elapsedMap = make(map[string]int64)
	invocationMap = make(map[string]int64)
}
