package hanseg

import (
	"container/heap"
	"fmt"
	"sort"
)

// Graph is a labelled DAG: adjacency[u][v] = edge weight. Node labels are
// generic comparable keys so the same algorithm serves both the word-DAG
// (packed int keys) and the graph fixtures in the property tests (string
// keys).
type Graph[K comparable] map[K]map[K]float64

// pqItem/priorityQueue implement a min-heap over tentative distances for
// Dijkstra. No pack example or ecosystem library ships a Dijkstra/Yen
// implementation over label-keyed adjacency maps (see DESIGN.md), so this
// reaches for container/heap, the idiomatic stdlib priority queue.
type pqItem[K comparable] struct {
	node K
	dist float64
	seq  int // insertion order, for deterministic tie-breaking
}

type priorityQueue[K comparable] []pqItem[K]

func (pq priorityQueue[K]) Len() int { return len(pq) }
func (pq priorityQueue[K]) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}
func (pq priorityQueue[K]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue[K]) Push(x any)    { *pq = append(*pq, x.(pqItem[K])) }
func (pq *priorityQueue[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// Dijkstra returns the shortest-distance table and predecessor map from src
// over graph. Relaxation uses strict '<' so ties resolve to whichever edge
// was discovered first, keeping the result deterministic. If
// dst is unreachable, it returns whatever partial result was computed.
func Dijkstra[K comparable](graph Graph[K], src, dst K) (dist map[K]float64, pred map[K]K) {
	dist = map[K]float64{src: 0}
	pred = map[K]K{}
	visited := map[K]bool{}

	pq := &priorityQueue[K]{{node: src, dist: 0}}
	heap.Init(pq)
	seq := 1

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem[K])
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == dst {
			break
		}
		// Scan neighbours in a fixed order so that discovery order, and so
		// tie-breaking, does not depend on map iteration order.
		nexts := make([]K, 0, len(graph[cur.node]))
		for next := range graph[cur.node] {
			nexts = append(nexts, next)
		}
		sort.Slice(nexts, func(i, j int) bool { return toKeyString(nexts[i]) < toKeyString(nexts[j]) })
		for _, next := range nexts {
			weight := graph[cur.node][next]
			if visited[next] {
				continue
			}
			newDist := dist[cur.node] + weight
			if existing, ok := dist[next]; !ok || newDist < existing {
				dist[next] = newDist
				pred[next] = cur.node
				heap.Push(pq, pqItem[K]{node: next, dist: newDist, seq: seq})
				seq++
			}
		}
	}
	return dist, pred
}

// DijkstraShortestPath reconstructs the single shortest path from src to
// dst, along with its total distance. Returns a nil path if dst is
// unreachable.
func DijkstraShortestPath[K comparable](graph Graph[K], src, dst K) ([]K, float64) {
	dist, pred := Dijkstra(graph, src, dst)
	d, ok := dist[dst]
	if !ok {
		return nil, 0
	}
	return reconstructPath(pred, src, dst), d
}

func reconstructPath[K comparable](pred map[K]K, src, dst K) []K {
	path := []K{dst}
	cur := dst
	for cur != src {
		prev, ok := pred[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathResult is one candidate returned by YenKSP: the node sequence and a
// one-entry distance table holding the path's total distance under dst.
type PathResult[K comparable] struct {
	Path []K
	Dist map[K]float64
}

func pathKey[K comparable](path []K) string {
	// Cheap, order-sensitive fingerprint for candidate de-duplication:
	// each node label rendered with fmt.Sprint, followed by a zero byte.
	s := make([]byte, 0, len(path)*4)
	for _, n := range path {
		s = append(s, []byte(toKeyString(n))...)
		s = append(s, 0)
	}
	return string(s)
}

func toKeyString[K comparable](k K) string {
	return fmt.Sprint(k)
}

// YenKSP computes the top-k loopless shortest paths from src to dst:
// initialise with Dijkstra's shortest path, then for each
// previously found path spur off every node along it on a residual graph
// with the shared prefix's edges and interior nodes removed, and greedily
// pick the cheapest candidate each round. Ties among candidates are broken
// by insertion order.
func YenKSP[K comparable](graph Graph[K], src, dst K, k int) []PathResult[K] {
	if k <= 0 {
		k = 1
	}

	firstPath, firstDist := DijkstraShortestPath(graph, src, dst)
	if firstPath == nil {
		return nil
	}
	a := []PathResult[K]{{Path: firstPath, Dist: map[K]float64{dst: firstDist}}}

	var candidates []PathResult[K]
	seenCandidate := map[string]bool{}
	seenA := map[string]bool{pathKey(firstPath): true}

	for len(a) < k {
		prevPath := a[len(a)-1].Path
		for j := 0; j < len(prevPath)-1; j++ {
			spurNode := prevPath[j]
			root := append([]K(nil), prevPath[:j+1]...)

			removedEdges := map[[2]K]float64{}
			for _, p := range a {
				if len(p.Path) > j && pathEqualPrefix(p.Path, root) {
					u, v := p.Path[j], p.Path[j+1]
					if w, ok := graph[u][v]; ok {
						removedEdges[[2]K{u, v}] = w
						delete(graph[u], v)
					}
				}
			}
			removedNodes := map[K]map[K]float64{}
			for _, n := range root[:len(root)-1] {
				if edges, ok := graph[n]; ok {
					removedNodes[n] = edges
					delete(graph, n)
				}
			}

			spurPath, spurDist := DijkstraShortestPath(graph, spurNode, dst)

			// restore
			for n, edges := range removedNodes {
				graph[n] = edges
			}
			for uv, w := range removedEdges {
				if graph[uv[0]] == nil {
					graph[uv[0]] = map[K]float64{}
				}
				graph[uv[0]][uv[1]] = w
			}

			if spurPath == nil {
				continue
			}

			totalPath := append(append([]K(nil), root[:len(root)-1]...), spurPath...)
			key := pathKey(totalPath)
			if seenCandidate[key] || seenA[key] {
				continue
			}
			seenCandidate[key] = true
			rootDist := pathDistance(graph, root)
			candidates = append(candidates, PathResult[K]{
				Path: totalPath,
				Dist: map[K]float64{dst: rootDist + spurDist},
			})
		}

		if len(candidates) == 0 {
			break
		}

		bestIdx := 0
		for i := 1; i < len(candidates); i++ {
			if candidates[i].Dist[dst] < candidates[bestIdx].Dist[dst] {
				bestIdx = i
			}
		}
		best := candidates[bestIdx]
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
		a = append(a, best)
		seenA[pathKey(best.Path)] = true
	}

	return a
}

func pathEqualPrefix[K comparable](path, root []K) bool {
	if len(path) < len(root) {
		return false
	}
	for i := range root {
		if path[i] != root[i] {
			return false
		}
	}
	return true
}

// pathDistance recomputes the accumulated weight of traversing root's edges.
// Called after the spur-node edges/nodes removed for this round have already
// been restored, so the graph here is the original, unmodified adjacency.
func pathDistance[K comparable](graph Graph[K], root []K) float64 {
	var total float64
	for i := 0; i < len(root)-1; i++ {
		total += graph[root[i]][root[i+1]]
	}
	return total
}
