/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

import "sort"

/*
MSTOptions configures Kruskal's algorithm.
*/
type MSTOptions struct {
	EdgeType           string
	WeightProperty     string
	DefaultWeight      float64
	PreferLowerWeights bool
}

/*
DefaultMSTOptions returns the options MST uses for zero-valued fields.
*/
func DefaultMSTOptions() MSTOptions {
	return MSTOptions{
		WeightProperty:     "weight",
		DefaultWeight:      1.0,
		PreferLowerWeights: true,
	}
}

func (o MSTOptions) withDefaults() MSTOptions {
	d := DefaultMSTOptions()
	d.EdgeType = o.EdgeType
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
MST returns a minimum (or, with PreferLowerWeights false, maximum)
spanning forest over every connected component of the graph, built by
Kruskal's algorithm: edges sorted by weight, added in order unless
they would close a cycle, detected via a disjoint-set structure.
*/
func MST(g GraphReader, opts MSTOptions) ([]EdgeRef, float64) {
	opts = opts.withDefaults()

	nodes := g.AllNodeIDs()
	ds := newDisjointSet(nodes)

	seen := make(map[string]bool)
	var edges []EdgeRef

	for _, n := range nodes {
		for _, e := range g.EdgesOf(n, Both, opts.EdgeType) {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			edges = append(edges, e)
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		wi := Weight(edges[i], opts.WeightProperty, opts.DefaultWeight)
		wj := Weight(edges[j], opts.WeightProperty, opts.DefaultWeight)
		if opts.PreferLowerWeights {
			return wi < wj
		}
		return wi > wj
	})

	var tree []EdgeRef
	total := 0.0

	for _, e := range edges {
		if ds.union(e.Source, e.Target) {
			tree = append(tree, e)
			total += Weight(e, opts.WeightProperty, opts.DefaultWeight)
		}
	}

	return tree, total
}
