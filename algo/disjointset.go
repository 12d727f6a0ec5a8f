/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

/*
disjointSet is a union-find structure over string keys with path
compression and union-by-rank, shared by connected components and
Kruskal MST.
*/
type disjointSet struct {
	parent map[string]string
	rank   map[string]int
}

func newDisjointSet(keys []string) *disjointSet {
	ds := &disjointSet{
		parent: make(map[string]string, len(keys)),
		rank:   make(map[string]int, len(keys)),
	}

	for _, k := range keys {
		ds.parent[k] = k
	}

	return ds
}

func (ds *disjointSet) find(x string) string {
	root := x
	for ds.parent[root] != root {
		root = ds.parent[root]
	}

	for ds.parent[x] != root {
		ds.parent[x], x = root, ds.parent[x]
	}

	return root
}

/*
union merges the sets containing a and b, returning true if they were
previously distinct.
*/
func (ds *disjointSet) union(a, b string) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}

	if ds.rank[ra] < ds.rank[rb] {
		ra, rb = rb, ra
	}

	ds.parent[rb] = ra
	if ds.rank[ra] == ds.rank[rb] {
		ds.rank[ra]++
	}

	return true
}

/*
groups returns the partition of all tracked keys into their connected
components.
*/
func (ds *disjointSet) groups() [][]string {
	byRoot := make(map[string][]string)

	for k := range ds.parent {
		r := ds.find(k)
		byRoot[r] = append(byRoot[r], k)
	}

	out := make([][]string, 0, len(byRoot))
	for _, members := range byRoot {
		out = append(out, members)
	}

	return out
}
