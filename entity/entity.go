/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

/*
Graph is a logical scope grouping nodes and edges. Graphs do not
isolate their members - cross-graph edges are legal and the store
never enforces graph_id equality between an edge and its endpoints.
*/
type Graph struct {
	ID       string
	Name     string
	Metadata Metadata
}

/*
IndexMap flattens Graph's direct fields into the single map the filter
planner matches against.
*/
func (g Graph) IndexMap() map[string]interface{} {
	return map[string]interface{}{"id": g.ID, "name": g.Name}
}

/*
Node is a vertex of the graph. Data is an arbitrary attribute map
validated against Type's schema when Type is set.
*/
type Node struct {
	ID       string
	GraphID  string
	Type     string
	Data     map[string]interface{}
	Metadata Metadata
}

/*
Clone returns a deep-enough copy of this node: the Data map is
copied so that later mutation of the stored record never aliases a
caller's map, and vice versa.
*/
func (n Node) Clone() Node {
	n.Data = cloneMap(n.Data)
	return n
}

/*
IndexMap flattens Node's direct fields and Data into the single map
the filter planner matches against - a direct field wins over a Data
key of the same name.
*/
func (n Node) IndexMap() map[string]interface{} {
	m := make(map[string]interface{}, len(n.Data)+3)
	for k, v := range n.Data {
		m[k] = v
	}
	m["id"] = n.ID
	m["graph_id"] = n.GraphID
	m["type"] = n.Type
	return m
}

/*
Edge connects Source to Target, both node IDs. Weight is optional and
may also be carried in Data["weight"] - algorithms accept both forms
via the shared weight-extraction contract.
*/
type Edge struct {
	ID       string
	GraphID  string
	Source   string
	Target   string
	Type     string
	Key      string
	Weight   *float64
	Data     map[string]interface{}
	Metadata Metadata
}

/*
Clone returns a deep-enough copy of this edge.
*/
func (e Edge) Clone() Edge {
	e.Data = cloneMap(e.Data)
	return e
}

/*
IndexMap flattens Edge's direct fields and Data into the single map
the filter planner matches against - a direct field wins over a Data
key of the same name.
*/
func (e Edge) IndexMap() map[string]interface{} {
	m := make(map[string]interface{}, len(e.Data)+6)
	for k, v := range e.Data {
		m[k] = v
	}
	m["id"] = e.ID
	m["graph_id"] = e.GraphID
	m["type"] = e.Type
	m["source"] = e.Source
	m["target"] = e.Target
	m["key"] = e.Key
	return m
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

/*
MergeData returns the result of merging patch into base: every key in
patch overwrites base, a nil value in patch removes the key. Neither
input map is mutated. This is the merge semantics Update applies to
an entity's Data.
*/
func MergeData(base, patch map[string]interface{}) map[string]interface{} {
	out := cloneMap(base)
	if out == nil {
		out = make(map[string]interface{})
	}

	for k, v := range patch {
		if v == nil {
			delete(out, k)
		} else {
			out[k] = v
		}
	}

	return out
}
