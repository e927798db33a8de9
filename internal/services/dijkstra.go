package services

import (
	"container/heap"
	"math"
)

// ShortestPath computes the minimum-travel-time path from start to end over
// the route graph using Dijkstra's algorithm with a min-heap and lazy
// decrease-key (duplicates pushed, stale entries skipped). All edge weights
// are travel times and therefore non-negative.
//
// When multiple frontier nodes share the minimal tentative distance the
// extraction order is implementation-defined but stable within one call.
//
// An unreachable or unknown endpoint yields an empty path and +Inf total
// weight, never an error: a complete graph with >=2 nodes cannot actually
// disconnect, but callers should not have to care.
func ShortestPath(g *RouteGraph, start, end string) ([]string, float64) {
	if g == nil {
		return []string{}, math.Inf(1)
	}
	if _, ok := g.Stops[start]; !ok {
		return []string{}, math.Inf(1)
	}
	if _, ok := g.Stops[end]; !ok {
		return []string{}, math.Inf(1)
	}

	dist := make(map[string]float64, len(g.Order))
	prev := make(map[string]string, len(g.Order))
	for _, id := range g.Order {
		dist[id] = math.Inf(1)
	}
	dist[start] = 0

	pq := &minQueue{{id: start, minutes: 0}}
	heap.Init(pq)
	visited := make(map[string]struct{}, len(g.Order))

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem)
		if _, done := visited[cur.id]; done {
			continue
		}
		visited[cur.id] = struct{}{}

		// Early exit: once the target is extracted its distance is final.
		if cur.id == end {
			break
		}

		for _, e := range g.Adj[cur.id] {
			if _, done := visited[e.To]; done {
				continue
			}
			candidate := dist[cur.id] + e.Minutes
			if candidate < dist[e.To] {
				dist[e.To] = candidate
				prev[e.To] = cur.id
				heap.Push(pq, queueItem{id: e.To, minutes: candidate})
			}
		}
	}

	if math.IsInf(dist[end], 1) {
		return []string{}, math.Inf(1)
	}

	path := []string{end}
	for at := end; at != start; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[end]
}

type queueItem struct {
	id      string
	minutes float64
}

type minQueue []queueItem

func (q minQueue) Len() int           { return len(q) }
func (q minQueue) Less(i, j int) bool { return q[i].minutes < q[j].minutes }
func (q minQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *minQueue) Push(x any) { *q = append(*q, x.(queueItem)) }
func (q *minQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
