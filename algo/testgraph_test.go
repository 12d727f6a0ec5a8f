/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

/*
testGraph is a minimal GraphReader used across algorithm tests.
*/
type testGraph struct {
	nodes map[string]bool
	edges []EdgeRef
}

func newTestGraph() *testGraph {
	return &testGraph{nodes: make(map[string]bool)}
}

func (g *testGraph) addNode(id string) {
	g.nodes[id] = true
}

func (g *testGraph) addEdge(id, source, target string, weight float64) {
	w := weight
	g.edges = append(g.edges, EdgeRef{ID: id, Source: source, Target: target, Weight: &w})
}

func (g *testGraph) addTypedEdge(id, source, target, typ string, weight float64) {
	w := weight
	g.edges = append(g.edges, EdgeRef{ID: id, Source: source, Target: target, Type: typ, Weight: &w})
}

func (g *testGraph) NodeExists(id string) bool {
	return g.nodes[id]
}

func (g *testGraph) AllNodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

func (g *testGraph) EdgesOf(nodeID string, dir Direction, edgeType string) []EdgeRef {
	var out []EdgeRef

	for _, e := range g.edges {
		if edgeType != "" && e.Type != edgeType {
			continue
		}

		switch dir {
		case Out:
			if e.Source == nodeID {
				out = append(out, e)
			}
		case In:
			if e.Target == nodeID {
				out = append(out, e)
			}
		case Both:
			if e.Source == nodeID || e.Target == nodeID {
				out = append(out, e)
			}
		}
	}

	return out
}
