/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"sync"
	"time"

	"github.com/krotik/graphstore/algo"
	"github.com/krotik/graphstore/config"
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
	applog "github.com/krotik/graphstore/log"
	"github.com/krotik/graphstore/pubsub"
)

/*
idSet is the set type every index maps a key to.
*/
type idSet map[string]struct{}

func (s idSet) add(id string)    { s[id] = struct{}{} }
func (s idSet) remove(id string) { delete(s, id) }

func (s idSet) slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

/*
InMemoryAdapter is the default storage backend: three primary tables
keyed by id plus six structural indices, all guarded by one
reader-writer lock so concurrent reads never block on one another and
writers are fully serialized against both readers and other writers.
*/
type InMemoryAdapter struct {
	mu sync.RWMutex

	graphs map[string]entity.Graph
	nodes  map[string]entity.Node
	edges  map[string]entity.Edge

	nodesByGraph      map[string]idSet
	edgesBySource     map[string]idSet
	edgesByTarget     map[string]idSet
	edgesByType       map[string]idSet
	edgesBySourceType map[string]idSet
	edgesByTargetType map[string]idSet

	stats Stats

	modules *entity.ModuleRegistry
	rules   []GraphRule
	bus     *pubsub.Bus
	cfg     config.Config
	logger  applog.Logger
}

/*
NewInMemoryAdapter builds an adapter backed by the given module
registry, event bus and rule set. A nil bus is valid - events are
simply not published. A nil rules slice falls back to DefaultRules.
*/
func NewInMemoryAdapter(modules *entity.ModuleRegistry, bus *pubsub.Bus, rules []GraphRule) *InMemoryAdapter {
	if rules == nil {
		rules = DefaultRules()
	}

	return &InMemoryAdapter{
		graphs: make(map[string]entity.Graph),
		nodes:  make(map[string]entity.Node),
		edges:  make(map[string]entity.Edge),

		nodesByGraph:      make(map[string]idSet),
		edgesBySource:     make(map[string]idSet),
		edgesByTarget:     make(map[string]idSet),
		edgesByType:       make(map[string]idSet),
		edgesBySourceType: make(map[string]idSet),
		edgesByTargetType: make(map[string]idSet),

		stats: Stats{Nodes: make(map[string]int), Edges: make(map[string]int)},

		modules: modules,
		rules:   rules,
		bus:     bus,
		logger:  applog.GetLogger("graphstore/store"),
	}
}

/*
Init stores cfg on the adapter; no adapter operation reads it back.
Tables and indices are already allocated at construction.
*/
func (a *InMemoryAdapter) Init(cfg config.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cfg = cfg

	return nil
}

/*
Stop clears every table and index. The adapter must not be used
afterwards.
*/
func (a *InMemoryAdapter) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.graphs = make(map[string]entity.Graph)
	a.nodes = make(map[string]entity.Node)
	a.edges = make(map[string]entity.Edge)
	a.nodesByGraph = make(map[string]idSet)
	a.edgesBySource = make(map[string]idSet)
	a.edgesByTarget = make(map[string]idSet)
	a.edgesByType = make(map[string]idSet)
	a.edgesBySourceType = make(map[string]idSet)
	a.edgesByTargetType = make(map[string]idSet)

	return nil
}

/*
Stats returns a copy of the current per-type entity counts.
*/
func (a *InMemoryAdapter) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := Stats{Nodes: make(map[string]int, len(a.stats.Nodes)), Edges: make(map[string]int, len(a.stats.Edges))}
	for k, v := range a.stats.Nodes {
		out.Nodes[k] = v
	}
	for k, v := range a.stats.Edges {
		out.Edges[k] = v
	}

	return out
}

func sourceTypeKey(source, typ string) string { return source + "\x00" + typ }
func targetTypeKey(target, typ string) string { return target + "\x00" + typ }

func addToIndex(idx map[string]idSet, key, id string) {
	s, ok := idx[key]
	if !ok {
		s = make(idSet)
		idx[key] = s
	}
	s.add(id)
}

func removeFromIndex(idx map[string]idSet, key, id string) {
	s, ok := idx[key]
	if !ok {
		return
	}
	s.remove(id)
	if len(s) == 0 {
		delete(idx, key)
	}
}

/*
indexEdge adds e's id to every structural index it belongs to.
*/
func (a *InMemoryAdapter) indexEdge(e entity.Edge) {
	addToIndex(a.edgesBySource, e.Source, e.ID)
	addToIndex(a.edgesByTarget, e.Target, e.ID)
	if e.Type != "" {
		addToIndex(a.edgesByType, e.Type, e.ID)
	}
	addToIndex(a.edgesBySourceType, sourceTypeKey(e.Source, e.Type), e.ID)
	addToIndex(a.edgesByTargetType, targetTypeKey(e.Target, e.Type), e.ID)
}

/*
deindexEdge removes e's id from every structural index it belongs to.
*/
func (a *InMemoryAdapter) deindexEdge(e entity.Edge) {
	removeFromIndex(a.edgesBySource, e.Source, e.ID)
	removeFromIndex(a.edgesByTarget, e.Target, e.ID)
	if e.Type != "" {
		removeFromIndex(a.edgesByType, e.Type, e.ID)
	}
	removeFromIndex(a.edgesBySourceType, sourceTypeKey(e.Source, e.Type), e.ID)
	removeFromIndex(a.edgesByTargetType, targetTypeKey(e.Target, e.Type), e.ID)
}

/*
Insert, Update and Delete below are single-operation convenience
wrappers around Execute, sharing its validation, locking and eventing.
Get and List read the tables directly under the read lock.
*/

func (a *InMemoryAdapter) Insert(kind entity.Kind, record interface{}) (interface{}, error) {
	tx := NewTransaction().Insert(kind, record)
	results, err := a.Execute(tx)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (a *InMemoryAdapter) Update(kind entity.Kind, id string, patch map[string]interface{}) (interface{}, error) {
	tx := NewTransaction().Update(kind, id, patch)
	results, err := a.Execute(tx)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (a *InMemoryAdapter) Delete(kind entity.Kind, id string) error {
	tx := NewTransaction().Delete(kind, id)
	_, err := a.Execute(tx)
	return err
}

func (a *InMemoryAdapter) Get(kind entity.Kind, id string) (interface{}, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.getLocked(kind, id)
}

func (a *InMemoryAdapter) getLocked(kind entity.Kind, id string) (interface{}, error) {
	switch kind {
	case entity.KindGraph:
		if g, ok := a.graphs[id]; ok {
			return g, nil
		}
	case entity.KindNode:
		if n, ok := a.nodes[id]; ok {
			return n, nil
		}
	case entity.KindEdge:
		if e, ok := a.edges[id]; ok {
			return e, nil
		}
	}

	return nil, gerr.NotFound(string(kind), id)
}

/*
List dispatches filter through the matching structural index when the
filter consists of exactly one of the key sets edgeIndexLookup
recognizes (for edges) or of a non-empty graph_id alone (for nodes),
else performs
a full scan of the table with per-row filter evaluation. Both paths are semantically identical - only the index
path avoids visiting non-matching rows.
*/
func (a *InMemoryAdapter) List(kind entity.Kind, filter map[string]interface{}) ([]interface{}, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	switch kind {
	case entity.KindGraph:
		return a.listGraphsLocked(filter), nil
	case entity.KindNode:
		return a.listNodesLocked(filter), nil
	case entity.KindEdge:
		return a.listEdgesLocked(filter), nil
	}

	return nil, gerr.InvalidOp(0, "unknown entity kind")
}

func (a *InMemoryAdapter) listGraphsLocked(filter map[string]interface{}) []interface{} {
	var out []interface{}
	for _, g := range a.graphs {
		if matchesFilter(g.IndexMap(), filter) {
			out = append(out, g)
		}
	}
	return out
}

func (a *InMemoryAdapter) listNodesLocked(filter map[string]interface{}) []interface{} {
	if graphID, ok := filter["graph_id"].(string); ok && graphID != "" && len(filter) == 1 {
		var out []interface{}
		for id := range a.nodesByGraph[graphID] {
			if n, ok := a.nodes[id]; ok {
				out = append(out, n)
			}
		}
		return out
	}

	var out []interface{}
	for _, n := range a.nodes {
		if matchesFilter(n.IndexMap(), filter) {
			out = append(out, n)
		}
	}
	return out
}

func (a *InMemoryAdapter) listEdgesLocked(filter map[string]interface{}) []interface{} {
	if ids, ok := a.edgeIndexLookup(filter); ok {
		var out []interface{}
		for id := range ids {
			if e, ok := a.edges[id]; ok {
				out = append(out, e)
			}
		}
		return out
	}

	var out []interface{}
	for _, e := range a.edges {
		if matchesFilter(e.IndexMap(), filter) {
			out = append(out, e)
		}
	}
	return out
}

/*
edgeIndexLookup recognizes filters whose keys are exactly
{source,type}, {target,type}, {type} (non-empty), {source} or {target}
and returns
the candidate id set through the matching index. ok is false for any
other filter, and the caller should fall back to a full scan.
*/
func (a *InMemoryAdapter) edgeIndexLookup(filter map[string]interface{}) (idSet, bool) {
	source, hasSource := filter["source"].(string)
	target, hasTarget := filter["target"].(string)
	typ, hasType := filter["type"].(string)

	switch {
	case hasSource && hasType && len(filter) == 2:
		return a.edgesBySourceType[sourceTypeKey(source, typ)], true
	case hasTarget && hasType && len(filter) == 2:
		return a.edgesByTargetType[targetTypeKey(target, typ)], true
	case hasType && typ != "" && len(filter) == 1:
		return a.edgesByType[typ], true
	case hasSource && len(filter) == 1:
		return a.edgesBySource[source], true
	case hasTarget && len(filter) == 1:
		return a.edgesByTarget[target], true
	}

	return nil, false
}

/*
GraphReader implementation, so algorithms can run directly against
this adapter's indices without going through the full CRUD surface.
*/

func (a *InMemoryAdapter) NodeExists(id string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n, ok := a.nodes[id]
	return ok && !n.Metadata.Deleted
}

func (a *InMemoryAdapter) AllNodeIDs() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]string, 0, len(a.nodes))
	for id, n := range a.nodes {
		if !n.Metadata.Deleted {
			out = append(out, id)
		}
	}
	return out
}

func (a *InMemoryAdapter) EdgesOf(nodeID string, dir algo.Direction, edgeType string) []algo.EdgeRef {
	a.mu.RLock()
	defer a.mu.RUnlock()

	seen := make(map[string]bool)
	var out []algo.EdgeRef

	collect := func(ids idSet) {
		for id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			e, ok := a.edges[id]
			if !ok {
				continue
			}
			if edgeType != "" && e.Type != edgeType {
				continue
			}

			out = append(out, algo.EdgeRef{
				ID: e.ID, Source: e.Source, Target: e.Target,
				Type: e.Type, Weight: e.Weight, Data: e.Data,
			})
		}
	}

	if dir == algo.Out || dir == algo.Both {
		collect(a.edgesBySource[nodeID])
	}
	if dir == algo.In || dir == algo.Both {
		collect(a.edgesByTarget[nodeID])
	}

	return out
}

func nowFunc() time.Time { return time.Now() }
