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
ComponentsOptions configures connected-component discovery.
*/
type ComponentsOptions struct {
	EdgeType  string
	Direction Direction
}

/*
ConnectedComponents partitions every node into the set of components
reachable from one another by edges matching EdgeType and Direction.
Implemented as a single pass over all edges feeding a union-find
structure with path compression and union-by-rank. Direction follows
the same zero-value-is-Out convention as BFSOptions/DijkstraOptions -
an explicit ComponentsOptions{Direction: Out} and an unset
ComponentsOptions{} behave identically, unlike the earlier revision
that silently coerced the zero value to Both.
*/
func ConnectedComponents(g GraphReader, opts ComponentsOptions) [][]string {
	nodes := g.AllNodeIDs()
	ds := newDisjointSet(nodes)

	for _, n := range nodes {
		for _, e := range g.EdgesOf(n, opts.Direction, opts.EdgeType) {
			ds.union(n, otherEnd(e, n))
		}
	}

	groups := ds.groups()
	for _, g := range groups {
		sort.Strings(g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) == 0 || len(groups[j]) == 0 {
			return len(groups[i]) < len(groups[j])
		}
		return groups[i][0] < groups[j][0]
	})

	return groups
}
