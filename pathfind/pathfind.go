// Package pathfind computes shortest paths on weighted directed graphs,
// using a pairing heap as the Dijkstra frontier.
package pathfind

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pairq"
)

// ErrNegativeWeight is returned when an edge with a negative weight is added.
var ErrNegativeWeight = errors.New("negative edge weight")

// ErrNoPath is returned when the target vertex is not reachable from the source.
var ErrNoPath = errors.New("no path")

// ErrVertexOutOfRange is a named error type for vertex indices outside the graph.
type ErrVertexOutOfRange struct {
	Vertex   uint32 // Offending vertex
	Vertices int    // Number of vertices in the graph
}

// Error returns the error message for an out-of-range vertex.
func (e *ErrVertexOutOfRange) Error() string {
	return fmt.Sprintf("vertex out of range: %d (graph has %d vertices)", e.Vertex, e.Vertices)
}

// edge represents a weighted outgoing connection.
type edge struct {
	to     uint32
	weight float64
}

// Graph represents a directed graph with non-negative edge weights.
// Vertices are numbered 0 to n-1.
type Graph struct {
	adj [][]edge
}

// NewGraph creates a new graph with n vertices and no edges.
func NewGraph(n int) *Graph {
	return &Graph{
		adj: make([][]edge, n),
	}
}

// Vertices returns the number of vertices in the graph.
func (g *Graph) Vertices() int {
	return len(g.adj)
}

// AddEdge adds a directed edge between two vertices.
func (g *Graph) AddEdge(from, to uint32, weight float64) error {
	if int(from) >= len(g.adj) {
		return &ErrVertexOutOfRange{Vertex: from, Vertices: len(g.adj)}
	}

	if int(to) >= len(g.adj) {
		return &ErrVertexOutOfRange{Vertex: to, Vertices: len(g.adj)}
	}

	if weight < 0 {
		return ErrNegativeWeight
	}

	g.adj[from] = append(g.adj[from], edge{to: to, weight: weight})

	return nil
}

// Path represents a shortest path between two vertices.
type Path struct {
	Vertices []uint32 // Vertices along the path, source first
	Distance float64  // Total weight of the path
}

// Options represents the options for configuring the finder.
type Options struct {
	// Logger specifies an optional logger for search diagnostics.
	Logger *slog.Logger
}

var DefaultOptions = Options{}

// Finder computes shortest paths and reachability on a graph.
type Finder struct {
	graph *Graph
	opts  Options
}

// NewFinder creates a new Finder for the given graph.
func NewFinder(graph *Graph, optFns ...func(o *Options)) *Finder {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Finder{
		graph: graph,
		opts:  opts,
	}
}

// vertexDist is a frontier entry ordered by tentative distance.
type vertexDist struct {
	vertex uint32
	dist   float64
}

func compareVertexDist(a, b vertexDist) int {
	return cmp.Compare(a.dist, b.dist)
}

// ShortestPath computes the minimum-weight path between two vertices using
// Dijkstra's algorithm. Tentative distances are tracked in a pairing heap
// and improved in place, so every vertex enters the frontier at most once.
func (f *Finder) ShortestPath(from, to uint32) (Path, error) {
	n := f.graph.Vertices()

	if int(from) >= n {
		return Path{}, &ErrVertexOutOfRange{Vertex: from, Vertices: n}
	}

	if int(to) >= n {
		return Path{}, &ErrVertexOutOfRange{Vertex: to, Vertices: n}
	}

	frontier, err := pairq.NewFunc(compareVertexDist)
	if err != nil {
		return Path{}, err
	}

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}

	// prev[v] == -1 marks v as having no predecessor yet.
	prev := make([]int64, n)
	for i := range prev {
		prev[i] = -1
	}

	// handles[v] is the live frontier entry for v, zero if none was issued.
	handles := make([]pairq.Handle, n)
	settled := roaring.New()

	dist[from] = 0

	handles[from], err = frontier.Insert(vertexDist{vertex: from, dist: 0})
	if err != nil {
		return Path{}, err
	}

	for frontier.Len() > 0 {
		cur, err := frontier.ExtractMin()
		if err != nil {
			return Path{}, err
		}

		if !settled.CheckedAdd(cur.vertex) {
			continue
		}

		if cur.vertex == to {
			break
		}

		for _, e := range f.graph.adj[cur.vertex] {
			if settled.Contains(e.to) {
				continue
			}

			alt := cur.dist + e.weight
			if alt >= dist[e.to] {
				continue
			}

			dist[e.to] = alt
			prev[e.to] = int64(cur.vertex)

			next := vertexDist{vertex: e.to, dist: alt}

			h := handles[e.to]
			if h == (pairq.Handle{}) {
				h, err = frontier.Insert(next)
			} else {
				h, err = frontier.Update(h, next)
			}

			if err != nil {
				return Path{}, err
			}

			handles[e.to] = h
		}
	}

	if math.IsInf(dist[to], 1) {
		return Path{}, ErrNoPath
	}

	if f.opts.Logger != nil {
		f.opts.Logger.Debug("shortest path computed",
			slog.Uint64("from", uint64(from)),
			slog.Uint64("to", uint64(to)),
			slog.Float64("distance", dist[to]),
			slog.Uint64("settled", settled.GetCardinality()),
		)
	}

	// Walk the predecessor chain backwards from the target.
	vertices := []uint32{to}
	for v := int64(to); prev[v] != -1; v = prev[v] {
		vertices = append(vertices, uint32(prev[v]))
	}

	slices.Reverse(vertices)

	return Path{Vertices: vertices, Distance: dist[to]}, nil
}

// Reachable returns the set of vertices reachable from the given vertex,
// including the vertex itself.
func (f *Finder) Reachable(from uint32) (*roaring.Bitmap, error) {
	n := f.graph.Vertices()

	if int(from) >= n {
		return nil, &ErrVertexOutOfRange{Vertex: from, Vertices: n}
	}

	seen := roaring.New()
	seen.Add(from)

	stack := []uint32{from}

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range f.graph.adj[v] {
			if seen.CheckedAdd(e.to) {
				stack = append(stack, e.to)
			}
		}
	}

	return seen, nil
}
