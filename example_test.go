package pairq_test

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/pairq"
)

// Example demonstrates basic insert and extract ordering.
func Example() {
	q := pairq.New[string]()
	for _, s := range strings.Split("ALPHABETICAL", "") {
		q.Insert(s)
	}

	var out strings.Builder
	for q.Len() > 0 {
		s, _ := q.ExtractMin()
		out.WriteString(s)
	}

	fmt.Println(out.String())
	// Output: AAABCEHILLPT
}

// Example_update demonstrates reprioritizing a queued item in place.
func Example_update() {
	type task struct {
		name     string
		priority int
	}

	q, _ := pairq.NewFunc(func(a, b task) int {
		return cmp.Compare(a.priority, b.priority)
	})

	q.Insert(task{name: "compact", priority: 5})
	h, _ := q.Insert(task{name: "flush", priority: 10})
	q.Insert(task{name: "reindex", priority: 15})

	// Promote flush ahead of everything else.
	q.Update(h, task{name: "flush", priority: 1})

	for q.Len() > 0 {
		v, _ := q.ExtractMin()
		fmt.Println(v.name)
	}
	// Output:
	// flush
	// compact
	// reindex
}

// Example_find demonstrates locating a node without a kept handle.
func Example_find() {
	q := pairq.New[int]()
	q.Insert(4)
	q.Insert(8)
	q.Insert(15)

	if _, err := q.Find(16); errors.Is(err, pairq.ErrNotFound) {
		fmt.Println("16 is not queued")
	}

	h, _ := q.Find(8)
	v, _ := q.Item(h)
	fmt.Println(v)
	// Output:
	// 16 is not queued
	// 8
}

// Example_all demonstrates iterating over every queued item.
func Example_all() {
	q := pairq.New[int]()
	q.Insert(3)
	q.Insert(1)
	q.Insert(2)

	sum := 0
	for _, v := range q.All() {
		sum += v
	}

	fmt.Printf("len=%d sum=%d\n", q.Len(), sum)
	// Output: len=3 sum=6
}

// Example_metrics demonstrates collecting operation counters.
func Example_metrics() {
	metrics := &pairq.BasicMetricsCollector{}
	q := pairq.New[int](pairq.WithMetricsCollector(metrics))

	q.Insert(2)
	q.Insert(1)
	q.ExtractMin()

	stats := metrics.GetStats()
	fmt.Printf("inserts=%d extracts=%d\n", stats.InsertCount, stats.ExtractCount)
	// Output: inserts=2 extracts=1
}
