/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package algo implements the classical graph algorithms the store
exposes through Store.Traverse: BFS, Dijkstra, connected components,
PageRank and Kruskal MST. None of them mutate the store - each reads
through the minimal GraphReader contract below, which the store
package's adapter satisfies via its indexed edge-iteration
primitives.
*/
package algo

/*
Direction constrains which edges of a node an algorithm follows.
*/
type Direction int

/*
Traversal directions relative to a node: Out follows edges where the
node is the source, In follows edges where the node is the target,
Both follows either.
*/
const (
	Out Direction = iota
	In
	Both
)

/*
EdgeRef is the read-only view of an edge an algorithm needs: its
identity, endpoints, and enough of its data to extract a weight.
*/
type EdgeRef struct {
	ID     string
	Source string
	Target string
	Type   string
	Weight *float64
	Data   map[string]interface{}
}

/*
GraphReader is the read contract algorithms use. It is satisfied by
the store's adapter so algorithms can run directly against its
indices instead of the full CRUD surface.
*/
type GraphReader interface {

	/*
	   NodeExists reports whether a non-deleted node with this id is
	   present.
	*/
	NodeExists(id string) bool

	/*
	   AllNodeIDs returns every non-deleted node id in the store.
	*/
	AllNodeIDs() []string

	/*
	   EdgesOf returns the edges incident to nodeID in the given
	   direction, optionally restricted to a single edge type
	   ("" means any type).
	*/
	EdgesOf(nodeID string, dir Direction, edgeType string) []EdgeRef
}

/*
Weight extracts the weight of an edge using the shared contract every
algorithm uses: the edge's own Weight field if set and numeric, else
Data[weightProperty] if numeric, else defaultWeight.
*/
func Weight(e EdgeRef, weightProperty string, defaultWeight float64) float64 {
	if e.Weight != nil {
		return *e.Weight
	}

	if e.Data != nil {
		if v, ok := e.Data[weightProperty]; ok {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}

	return defaultWeight
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	return 0, false
}

/*
other endpoint of an edge relative to a node, following dir. Both
directions are handled by the caller already having selected the
right edge set; this just picks source vs target.
*/
func otherEnd(e EdgeRef, from string) string {
	if e.Source == from {
		return e.Target
	}
	return e.Source
}
