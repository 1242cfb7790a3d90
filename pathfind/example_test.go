package pathfind_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/pairq/pathfind"
)

func Example() {
	g := pathfind.NewGraph(5)

	edges := []struct {
		from, to uint32
		weight   float64
	}{
		{0, 1, 7},
		{0, 2, 3},
		{2, 1, 2},
		{1, 3, 1},
		{2, 3, 8},
		{3, 4, 2},
	}

	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.weight); err != nil {
			log.Fatal(err)
		}
	}

	f := pathfind.NewFinder(g)

	path, err := f.ShortestPath(0, 4)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(path.Vertices, path.Distance)
	// Output:
	// [0 2 1 3 4] 8
}
