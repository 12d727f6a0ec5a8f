/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

import (
	"sort"

	"github.com/krotik/graphstore/gerr"
)

/*
BFSOptions configures a breadth-first traversal.
*/
type BFSOptions struct {
	MaxDepth           int // inclusive of the start node at depth 0; 0 means "use default"
	EdgeType           string
	Direction          Direction
	Weighted           bool
	WeightProperty     string
	PreferLowerWeights bool
	DefaultWeight      float64
}

/*
DefaultBFSOptions returns the options BFS uses for zero-valued fields.
*/
func DefaultBFSOptions() BFSOptions {
	return BFSOptions{
		MaxDepth:           10,
		Direction:          Out,
		WeightProperty:     "weight",
		PreferLowerWeights: true,
		DefaultWeight:      1.0,
	}
}

func (o BFSOptions) withDefaults() BFSOptions {
	d := DefaultBFSOptions()

	if o.MaxDepth != 0 {
		d.MaxDepth = o.MaxDepth
	}
	d.EdgeType = o.EdgeType
	d.Direction = o.Direction
	d.Weighted = o.Weighted
	if o.WeightProperty != "" {
		d.WeightProperty = o.WeightProperty
	}
	if o.Weighted {
		d.PreferLowerWeights = o.PreferLowerWeights
	}
	if o.DefaultWeight != 0 {
		d.DefaultWeight = o.DefaultWeight
	}

	return d
}

/*
BFS returns the nodes reachable from startID in breadth-first
discovery order. The start node is included at depth 0; nodes at a
depth greater than MaxDepth are not visited. When Weighted is true,
neighbors discovered from the same node are enqueued in ascending (or,
if PreferLowerWeights is false, descending) edge-weight order so ties
in traversal order break by weight - overall traversal remains
level-synchronous, this is not a best-first search (use Dijkstra for
that).
*/
func BFS(g GraphReader, startID string, opts BFSOptions) ([]string, error) {
	opts = opts.withDefaults()

	if !g.NodeExists(startID) {
		return nil, gerr.NotFound("node", startID)
	}

	visited := map[string]bool{startID: true}
	order := []string{startID}

	frontier := []string{startID}

	for depth := 0; len(frontier) > 0 && depth < opts.MaxDepth; depth++ {
		var next []string

		for _, nodeID := range frontier {
			neighbors := neighborIDs(g, nodeID, opts)

			for _, n := range neighbors {
				if visited[n] {
					continue
				}
				visited[n] = true
				order = append(order, n)
				next = append(next, n)
			}
		}

		frontier = next
	}

	return order, nil
}

/*
neighborIDs returns the unvisited-or-not neighbor ids of nodeID,
ordered by ascending/descending weight when the options call for it,
else in edge-iteration order.
*/
func neighborIDs(g GraphReader, nodeID string, opts BFSOptions) []string {
	edges := g.EdgesOf(nodeID, opts.Direction, opts.EdgeType)

	if opts.Weighted {
		sort.SliceStable(edges, func(i, j int) bool {
			wi := Weight(edges[i], opts.WeightProperty, opts.DefaultWeight)
			wj := Weight(edges[j], opts.WeightProperty, opts.DefaultWeight)
			if opts.PreferLowerWeights {
				return wi < wj
			}
			return wi > wj
		})
	}

	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = otherEnd(e, nodeID)
	}

	return ids
}
