/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"time"

	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
	"github.com/krotik/graphstore/pubsub"
)

/*
Execute commits tx atomically. Each operation is applied in order; the
first failure rolls back every change made so far by replaying the
undo log in reverse, and returns TransactionFailed{index, cause}.
Events for the whole transaction are published only once every
operation - including rule side effects - has committed.
*/
func (a *InMemoryAdapter) Execute(tx *Transaction) ([]interface{}, error) {
	if tx.IsEmpty() {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := nowFunc()

	var undo []func()
	var events []pubsub.Event
	results := make([]interface{}, len(tx.Ops))

	rollback := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	for i, op := range tx.Ops {
		result, ev, u, err := a.applyOp(now, op)
		if err != nil {
			rollback()
			return nil, gerr.TxFailed(i, err)
		}

		undo = append(undo, u...)
		events = append(events, ev...)
		results[i] = result

		queue := append([]pubsub.Event{}, ev...)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			ruleEvents, ruleUndo, err := a.runRulesForEvent(now, cur)
			if err != nil {
				rollback()
				return nil, gerr.TxFailed(i, err)
			}

			undo = append(undo, ruleUndo...)
			events = append(events, ruleEvents...)
			queue = append(queue, ruleEvents...)
		}
	}

	if a.bus != nil {
		for _, ev := range events {
			a.bus.Publish(ev)
		}
	}

	return results, nil
}

/*
applyOp performs a single transaction operation against the primary
tables and indices, returning the post-operation record (nil for
Delete), the events it produces, and the undo closures needed to
reverse it.
*/
func (a *InMemoryAdapter) applyOp(now time.Time, op Op) (interface{}, []pubsub.Event, []func(), error) {
	switch op.OpKind {
	case OpInsert:
		return a.applyInsert(now, op)
	case OpUpdate:
		return a.applyUpdate(now, op)
	case OpDelete:
		return a.applyDelete(op)
	}

	return nil, nil, nil, gerr.InvalidOp(0, "unknown operation kind")
}

func (a *InMemoryAdapter) applyInsert(now time.Time, op Op) (interface{}, []pubsub.Event, []func(), error) {
	switch op.Kind {
	case entity.KindGraph:
		return a.insertGraph(now, op.Record)
	case entity.KindNode:
		return a.insertNode(now, op.Record)
	case entity.KindEdge:
		return a.insertEdge(now, op.Record)
	}

	return nil, nil, nil, gerr.InvalidOp(0, "unknown entity kind")
}

func (a *InMemoryAdapter) insertGraph(now time.Time, record interface{}) (interface{}, []pubsub.Event, []func(), error) {
	g, ok := record.(entity.Graph)
	if !ok {
		return nil, nil, nil, gerr.InvalidOp(0, "insert graph requires an entity.Graph record")
	}

	if g.ID == "" {
		g.ID = entity.NewID()
	}
	if _, exists := a.graphs[g.ID]; exists {
		return nil, nil, nil, &gerr.StoreError{Type: gerr.ErrDuplicateID, Fields: map[string]interface{}{"kind": "Graph", "id": g.ID}}
	}

	g.Metadata = entity.NewMetadata(entity.KindGraph, g.Metadata.Module, now)
	a.graphs[g.ID] = g

	undo := []func(){func() { delete(a.graphs, g.ID) }}
	ev := pubsub.Event{Kind: pubsub.Create, EntityKind: entity.KindGraph, EntityID: g.ID, Entity: g, Timestamp: now}

	return g, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) insertNode(now time.Time, record interface{}) (interface{}, []pubsub.Event, []func(), error) {
	n, ok := record.(entity.Node)
	if !ok {
		return nil, nil, nil, gerr.InvalidOp(0, "insert node requires an entity.Node record")
	}

	if n.ID == "" {
		n.ID = entity.NewID()
	}
	if _, exists := a.nodes[n.ID]; exists {
		return nil, nil, nil, &gerr.StoreError{Type: gerr.ErrDuplicateID, Fields: map[string]interface{}{"kind": "Node", "id": n.ID}}
	}

	module := n.Metadata.Module
	n.Data = a.applyDefaults(module, n.Data)
	if err := a.validateAgainstSchema(module, n.Data); err != nil {
		return nil, nil, nil, err
	}

	n.Metadata = entity.NewMetadata(entity.KindNode, module, now)
	a.nodes[n.ID] = n

	undo := []func(){func() { delete(a.nodes, n.ID) }}

	if n.GraphID != "" {
		addToIndex(a.nodesByGraph, n.GraphID, n.ID)
		undo = append(undo, func() { removeFromIndex(a.nodesByGraph, n.GraphID, n.ID) })
	}

	ev := pubsub.Event{Kind: pubsub.Create, EntityKind: entity.KindNode, EntityID: n.ID, Entity: n, Timestamp: now}

	return n, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) insertEdge(now time.Time, record interface{}) (interface{}, []pubsub.Event, []func(), error) {
	e, ok := record.(entity.Edge)
	if !ok {
		return nil, nil, nil, gerr.InvalidOp(0, "insert edge requires an entity.Edge record")
	}

	if e.ID == "" {
		e.ID = entity.NewID()
	}
	if _, exists := a.edges[e.ID]; exists {
		return nil, nil, nil, &gerr.StoreError{Type: gerr.ErrDuplicateID, Fields: map[string]interface{}{"kind": "Edge", "id": e.ID}}
	}

	source, ok := a.nodes[e.Source]
	if !ok || source.Metadata.Deleted {
		return nil, nil, nil, &gerr.StoreError{Type: gerr.ErrDanglingReference, Fields: map[string]interface{}{"which": "source", "id": e.Source}}
	}

	target, ok := a.nodes[e.Target]
	if !ok || target.Metadata.Deleted {
		return nil, nil, nil, &gerr.StoreError{Type: gerr.ErrDanglingReference, Fields: map[string]interface{}{"which": "target", "id": e.Target}}
	}

	module := e.Metadata.Module
	if mod, found := a.modules.Lookup(module); found {
		if edgeMod, ok := mod.(entity.EdgeTypeModule); ok {
			if ok, reason := edgeMod.SourceBinding().Allowed(source.Metadata.Module); !ok {
				return nil, nil, nil, gerr.Binding("source", source.Metadata.Module, reason)
			}
			if ok, reason := edgeMod.TargetBinding().Allowed(target.Metadata.Module); !ok {
				return nil, nil, nil, gerr.Binding("target", target.Metadata.Module, reason)
			}
		}
	}

	e.Data = a.applyDefaults(module, e.Data)
	if err := a.validateAgainstSchema(module, e.Data); err != nil {
		return nil, nil, nil, err
	}

	e.Metadata = entity.NewMetadata(entity.KindEdge, module, now)
	a.edges[e.ID] = e
	a.indexEdge(e)

	undo := []func(){func() {
		delete(a.edges, e.ID)
		a.deindexEdge(e)
	}}

	ev := pubsub.Event{Kind: pubsub.Create, EntityKind: entity.KindEdge, EntityID: e.ID, Entity: e, Timestamp: now}

	return e, []pubsub.Event{ev}, undo, nil
}

/*
applyDefaults fills in a module's declared field defaults for any key
missing from data. Only insert goes through this path: update's patch
merge (entity.MergeData) takes the caller's data as-is, including an
explicit nil to delete a defaulted key, so defaults are never silently
reapplied on update.
*/
func (a *InMemoryAdapter) applyDefaults(module string, data map[string]interface{}) map[string]interface{} {
	mod, found := a.modules.Lookup(module)
	if !found {
		return data
	}

	schema := mod.DataSchema()
	if schema == nil {
		return data
	}

	return schema.ApplyDefaults(data)
}

func (a *InMemoryAdapter) validateAgainstSchema(module string, data map[string]interface{}) error {
	mod, found := a.modules.Lookup(module)
	if !found {
		return nil
	}

	schema := mod.DataSchema()
	if schema == nil {
		return nil
	}

	return schema.Validate(data)
}

func (a *InMemoryAdapter) applyUpdate(now time.Time, op Op) (interface{}, []pubsub.Event, []func(), error) {
	switch op.Kind {
	case entity.KindNode:
		return a.updateNode(now, op.ID, op.Patch)
	case entity.KindEdge:
		return a.updateEdge(now, op.ID, op.Patch)
	case entity.KindGraph:
		return a.updateGraph(now, op.ID, op.Patch)
	}

	return nil, nil, nil, gerr.InvalidOp(0, "unknown entity kind")
}

func (a *InMemoryAdapter) updateNode(now time.Time, id string, patch map[string]interface{}) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.nodes[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Node", id)
	}

	merged := before
	merged.Data = entity.MergeData(before.Data, patch)

	if err := a.validateAgainstSchema(before.Metadata.Module, merged.Data); err != nil {
		return nil, nil, nil, err
	}

	merged.Metadata = before.Metadata.Touch(now)
	a.nodes[id] = merged

	undo := []func(){func() { a.nodes[id] = before }}

	ev := pubsub.Event{
		Kind: pubsub.Update, EntityKind: entity.KindNode, EntityID: id,
		Entity: merged, Previous: before, Changes: patch, Timestamp: now,
	}

	return merged, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) updateEdge(now time.Time, id string, patch map[string]interface{}) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.edges[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Edge", id)
	}

	merged := before
	merged.Data = entity.MergeData(before.Data, patch)

	if err := a.validateAgainstSchema(before.Metadata.Module, merged.Data); err != nil {
		return nil, nil, nil, err
	}

	merged.Metadata = before.Metadata.Touch(now)
	a.edges[id] = merged

	undo := []func(){func() { a.edges[id] = before }}

	ev := pubsub.Event{
		Kind: pubsub.Update, EntityKind: entity.KindEdge, EntityID: id,
		Entity: merged, Previous: before, Changes: patch, Timestamp: now,
	}

	return merged, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) updateGraph(now time.Time, id string, patch map[string]interface{}) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.graphs[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Graph", id)
	}

	merged := before
	if name, ok := patch["name"].(string); ok {
		merged.Name = name
	}
	merged.Metadata = before.Metadata.Touch(now)
	a.graphs[id] = merged

	undo := []func(){func() { a.graphs[id] = before }}

	ev := pubsub.Event{
		Kind: pubsub.Update, EntityKind: entity.KindGraph, EntityID: id,
		Entity: merged, Previous: before, Changes: patch, Timestamp: now,
	}

	return merged, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) applyDelete(op Op) (interface{}, []pubsub.Event, []func(), error) {
	switch op.Kind {
	case entity.KindNode:
		return a.deleteNode(op.ID)
	case entity.KindEdge:
		return a.deleteEdge(op.ID)
	case entity.KindGraph:
		return a.deleteGraph(op.ID)
	}

	return nil, nil, nil, gerr.InvalidOp(0, "unknown entity kind")
}

func (a *InMemoryAdapter) deleteNode(id string) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.nodes[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Node", id)
	}

	delete(a.nodes, id)
	undo := []func(){func() { a.nodes[id] = before }}

	if before.GraphID != "" {
		removeFromIndex(a.nodesByGraph, before.GraphID, id)
		undo = append(undo, func() { addToIndex(a.nodesByGraph, before.GraphID, id) })
	}

	ev := pubsub.Event{Kind: pubsub.Delete, EntityKind: entity.KindNode, EntityID: id, Previous: before, Timestamp: nowFunc()}

	return nil, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) deleteEdge(id string) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.edges[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Edge", id)
	}

	delete(a.edges, id)
	a.deindexEdge(before)

	undo := []func(){func() {
		a.edges[id] = before
		a.indexEdge(before)
	}}

	ev := pubsub.Event{Kind: pubsub.Delete, EntityKind: entity.KindEdge, EntityID: id, Previous: before, Timestamp: nowFunc()}

	return nil, []pubsub.Event{ev}, undo, nil
}

func (a *InMemoryAdapter) deleteGraph(id string) (interface{}, []pubsub.Event, []func(), error) {
	before, ok := a.graphs[id]
	if !ok {
		return nil, nil, nil, gerr.NotFound("Graph", id)
	}

	delete(a.graphs, id)
	undo := []func(){func() { a.graphs[id] = before }}

	ev := pubsub.Event{Kind: pubsub.Delete, EntityKind: entity.KindGraph, EntityID: id, Previous: before, Timestamp: nowFunc()}

	return nil, []pubsub.Event{ev}, undo, nil
}

/*
runRulesForEvent feeds one event through every registered rule whose
Handles() includes that event's kind, collecting the rule's own undo
closures and any further events it produces (e.g. the edge-deletion
events cascadeDeleteEdges emits) so the caller can queue those for
their own rule pass in turn.
*/
func (a *InMemoryAdapter) runRulesForEvent(now time.Time, ev pubsub.Event) ([]pubsub.Event, []func(), error) {
	var ruleEvents []pubsub.Event
	var undo []func()

	typeName := ""
	if ev.Entity != nil {
		typeName = entityType(ev.Entity)
	} else if ev.Previous != nil {
		typeName = entityType(ev.Previous)
	}

	for _, rule := range a.rules {
		if !handles(rule, ev.Kind) {
			continue
		}

		h := &txHandle{a: a, now: now, events: &ruleEvents, undo: &undo}
		if err := rule.Handle(h, ev.Kind, ev.EntityKind, ev.EntityID, typeName); err != nil {
			return ruleEvents, undo, err
		}
	}

	return ruleEvents, undo, nil
}

func handles(rule GraphRule, kind pubsub.EventKind) bool {
	for _, k := range rule.Handles() {
		if k == kind {
			return true
		}
	}
	return false
}

func entityType(record interface{}) string {
	switch r := record.(type) {
	case entity.Node:
		return r.Type
	case entity.Edge:
		return r.Type
	}
	return ""
}

/*
txHandle is the GraphRule-facing view of an in-progress transaction.
*/
type txHandle struct {
	a      *InMemoryAdapter
	now    time.Time
	events *[]pubsub.Event
	undo   *[]func()
}

func (h *txHandle) EdgesOfNode(nodeID string) []entity.Edge {
	seen := make(map[string]bool)
	var out []entity.Edge

	collect := func(ids idSet) {
		for id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if e, ok := h.a.edges[id]; ok {
				out = append(out, e)
			}
		}
	}

	collect(h.a.edgesBySource[nodeID])
	collect(h.a.edgesByTarget[nodeID])

	return out
}

func (h *txHandle) DeleteEdge(id string) error {
	_, ev, undo, err := h.a.deleteEdge(id)
	if err != nil {
		if gerr.Is(err, gerr.ErrEntityNotFound) {
			return nil
		}
		return err
	}

	*h.events = append(*h.events, ev...)
	*h.undo = append(*h.undo, undo...)

	return nil
}

func (h *txHandle) BumpStat(kind entity.Kind, typeName string, delta int) {
	if typeName == "" {
		return
	}

	var m map[string]int
	switch kind {
	case entity.KindNode:
		m = h.a.stats.Nodes
	case entity.KindEdge:
		m = h.a.stats.Edges
	default:
		return
	}

	m[typeName] += delta
	*h.undo = append(*h.undo, func() { m[typeName] -= delta })
}
