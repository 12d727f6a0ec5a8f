/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

import (
	"container/heap"

	"github.com/krotik/graphstore/gerr"
)

/*
DijkstraOptions configures a weighted shortest-path search.
*/
type DijkstraOptions struct {
	EdgeType           string
	Direction          Direction
	WeightProperty     string
	DefaultWeight      float64
	PreferLowerWeights bool // false inverts the comparator: caller asserts no positive cycles
}

/*
DefaultDijkstraOptions returns the options Dijkstra uses for
zero-valued fields.
*/
func DefaultDijkstraOptions() DijkstraOptions {
	return DijkstraOptions{
		Direction:          Out,
		WeightProperty:     "weight",
		DefaultWeight:      1.0,
		PreferLowerWeights: true,
	}
}

func (o DijkstraOptions) withDefaults() DijkstraOptions {
	d := DefaultDijkstraOptions()
	d.EdgeType = o.EdgeType
	if o.Direction != 0 {
		d.Direction = o.Direction
	}
	if o.WeightProperty != "" {
		d.WeightProperty = o.WeightProperty
	}
	if o.DefaultWeight != 0 {
		d.DefaultWeight = o.DefaultWeight
	}
	d.PreferLowerWeights = o.PreferLowerWeights
	return d
}

/*
ShortestPath finds the minimum-weight path from sourceID to targetID
using Dijkstra's algorithm: a node is finalized on first dequeue from
the priority queue and never revisited. Negative weights are not
supported - behavior is unspecified if encountered. Setting
PreferLowerWeights to false inverts the comparator, producing a
longest-path-within-DAG result; the caller must ensure the graph has
no positive-weight cycles reachable from source in that mode.
*/
func ShortestPath(g GraphReader, sourceID, targetID string, opts DijkstraOptions) ([]string, float64, error) {
	opts = opts.withDefaults()

	if !g.NodeExists(sourceID) {
		return nil, 0, gerr.NotFound("node", sourceID)
	}
	if !g.NodeExists(targetID) {
		return nil, 0, gerr.NotFound("node", targetID)
	}

	dist := map[string]float64{sourceID: 0}
	prev := map[string]string{}
	finalized := map[string]bool{}

	pq := newWeightedQueue(opts.PreferLowerWeights)
	heap.Push(pq, &wqItem{value: sourceID, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*wqItem)
		current := item.value

		if finalized[current] {
			continue
		}
		finalized[current] = true

		if current == targetID {
			break
		}

		for _, e := range g.EdgesOf(current, opts.Direction, opts.EdgeType) {
			neighbor := otherEnd(e, current)
			if finalized[neighbor] {
				continue
			}

			w := Weight(e, opts.WeightProperty, opts.DefaultWeight)
			candidate := dist[current] + w

			if d, seen := dist[neighbor]; !seen || better(candidate, d, opts.PreferLowerWeights) {
				dist[neighbor] = candidate
				prev[neighbor] = current
				heap.Push(pq, &wqItem{value: neighbor, priority: candidate})
			}
		}
	}

	if !finalized[targetID] {
		return nil, 0, gerr.NoPath(sourceID, targetID)
	}

	path := []string{targetID}
	for path[len(path)-1] != sourceID {
		p, ok := prev[path[len(path)-1]]
		if !ok {
			return nil, 0, gerr.NoPath(sourceID, targetID)
		}
		path = append(path, p)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[targetID], nil
}

func better(candidate, current float64, preferLower bool) bool {
	if preferLower {
		return candidate < current
	}
	return candidate > current
}

/*
wqItem is an entry of the weighted priority queue: value, priority
(tentative distance) and an insertion order used to break ties
deterministically, in the same style as sortutil.PriorityQueue.
*/
type wqItem struct {
	value    string
	priority float64
	order    int
	index    int
}

/*
weightedQueue is a container/heap-backed priority queue keyed by a
float64 priority. sortutil.PriorityQueue uses an int priority, which
cannot represent Dijkstra's fractional edge weights without lossy
scaling, so this adapts its heap.Interface shape (pqItem + order
tie-break + index for in-place fix) directly to float64 priorities.
*/
type weightedQueue struct {
	items       []*wqItem
	order       int
	preferLower bool
}

func newWeightedQueue(preferLower bool) *weightedQueue {
	return &weightedQueue{preferLower: preferLower}
}

func (q *weightedQueue) Len() int { return len(q.items) }

func (q *weightedQueue) Less(i, j int) bool {
	if q.items[i].priority != q.items[j].priority {
		if q.preferLower {
			return q.items[i].priority < q.items[j].priority
		}
		return q.items[i].priority > q.items[j].priority
	}
	return q.items[i].order < q.items[j].order
}

func (q *weightedQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *weightedQueue) Push(x interface{}) {
	item := x.(*wqItem)
	item.order = q.order
	q.order++
	item.index = len(q.items)
	q.items = append(q.items, item)
}

func (q *weightedQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}
