/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"testing"

	"github.com/krotik/graphstore/algo"
	"github.com/krotik/graphstore/config"
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *InMemoryAdapter {
	t.Helper()
	a := NewInMemoryAdapter(entity.NewModuleRegistry(), nil, nil)
	require.NoError(t, a.Init(config.DefaultConfig()))
	return a
}

func mustNode(t *testing.T, a *InMemoryAdapter, id string) interface{} {
	t.Helper()
	stored, err := a.Insert(entity.KindNode, entity.Node{ID: id})
	require.NoError(t, err)
	return stored
}

func TestInsertAssignsIDAndZeroVersion(t *testing.T) {
	a := newTestAdapter(t)

	stored, err := a.Insert(entity.KindNode, entity.Node{})
	require.NoError(t, err)

	n := stored.(entity.Node)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, uint64(0), n.Metadata.Version)

	got, err := a.Get(entity.KindNode, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.(entity.Node).ID)
}

func TestUpdateBumpsVersionAndMergesData(t *testing.T) {
	a := newTestAdapter(t)

	mustNode(t, a, "a")

	updated, err := a.Update(entity.KindNode, "a", map[string]interface{}{"name": "alice"})
	require.NoError(t, err)
	n := updated.(entity.Node)
	assert.Equal(t, uint64(1), n.Metadata.Version)
	assert.Equal(t, "alice", n.Data["name"])

	updated2, err := a.Update(entity.KindNode, "a", map[string]interface{}{"age": 30, "name": nil})
	require.NoError(t, err)
	n2 := updated2.(entity.Node)
	assert.Equal(t, uint64(2), n2.Metadata.Version)
	assert.Equal(t, 30, n2.Data["age"])
	_, hasName := n2.Data["name"]
	assert.False(t, hasName)
}

func TestInsertEdgeMaintainsAllFiveEdgeIndices(t *testing.T) {
	a := newTestAdapter(t)

	mustNode(t, a, "a")
	mustNode(t, a, "b")

	_, err := a.Insert(entity.KindEdge, entity.Edge{ID: "e1", Source: "a", Target: "b", Type: "knows"})
	require.NoError(t, err)

	assert.Contains(t, a.edgesBySource["a"], "e1")
	assert.Contains(t, a.edgesByTarget["b"], "e1")
	assert.Contains(t, a.edgesByType["knows"], "e1")
	assert.Contains(t, a.edgesBySourceType[sourceTypeKey("a", "knows")], "e1")
	assert.Contains(t, a.edgesByTargetType[targetTypeKey("b", "knows")], "e1")

	results, err := a.List(entity.KindEdge, map[string]interface{}{"source": "a", "type": "knows"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "e1", results[0].(entity.Edge).ID)
}

func TestDeleteEdgeRemovesFromAllIndices(t *testing.T) {
	a := newTestAdapter(t)

	mustNode(t, a, "a")
	mustNode(t, a, "b")
	_, err := a.Insert(entity.KindEdge, entity.Edge{ID: "e1", Source: "a", Target: "b", Type: "knows"})
	require.NoError(t, err)

	require.NoError(t, a.Delete(entity.KindEdge, "e1"))

	assert.NotContains(t, a.edgesBySource["a"], "e1")
	assert.NotContains(t, a.edgesByTarget["b"], "e1")
	assert.NotContains(t, a.edgesByType["knows"], "e1")
	assert.NotContains(t, a.edgesBySourceType[sourceTypeKey("a", "knows")], "e1")
	assert.NotContains(t, a.edgesByTargetType[targetTypeKey("b", "knows")], "e1")

	_, err = a.Get(entity.KindEdge, "e1")
	assert.True(t, gerr.Is(err, gerr.ErrEntityNotFound))
}

func TestInsertEdgeDanglingReferenceFails(t *testing.T) {
	a := newTestAdapter(t)
	mustNode(t, a, "a")

	_, err := a.Insert(entity.KindEdge, entity.Edge{Source: "a", Target: "missing"})
	require.Error(t, err)
	assert.True(t, gerr.Is(err, gerr.ErrDanglingReference))

	_, err = a.Get(entity.KindEdge, "")
	assert.Error(t, err)
}

func TestBindingViolationScenario(t *testing.T) {
	modules := entity.NewModuleRegistry()
	modules.Register(entity.BasicEdgeModule{
		BasicModule: entity.BasicModule{Sym: "WorksAt"},
		Source:      entity.NewBinding([]string{"Person"}, nil),
		Target:      entity.NewBinding([]string{"Company"}, nil),
	})

	a := NewInMemoryAdapter(modules, nil, nil)
	require.NoError(t, a.Init(config.DefaultConfig()))

	_, err := a.Insert(entity.KindNode, entity.Node{ID: "c1", Metadata: entity.Metadata{Module: "City"}})
	require.NoError(t, err)
	_, err = a.Insert(entity.KindNode, entity.Node{ID: "p1", Metadata: entity.Metadata{Module: "Company"}})
	require.NoError(t, err)

	_, err = a.Insert(entity.KindEdge, entity.Edge{
		Source: "c1", Target: "p1", Type: "WorksAt",
		Metadata: entity.Metadata{Module: "WorksAt"},
	})

	require.Error(t, err)
	assert.True(t, gerr.Is(err, gerr.ErrBindingViolation))

	edges, err := a.List(entity.KindEdge, map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, edges, 0)
}

func TestSchemaViolationRejectsInsert(t *testing.T) {
	modules := entity.NewModuleRegistry()
	modules.Register(entity.BasicModule{
		Sym: "Person",
		Schema: entity.Schema{
			{Name: "name", Type: entity.FieldString, Required: true},
		},
	})

	a := NewInMemoryAdapter(modules, nil, nil)
	require.NoError(t, a.Init(config.DefaultConfig()))

	_, err := a.Insert(entity.KindNode, entity.Node{
		Metadata: entity.Metadata{Module: "Person"},
		Data:     map[string]interface{}{},
	})

	require.Error(t, err)
	assert.True(t, gerr.Is(err, gerr.ErrSchemaViolation))
}

func TestInsertAppliesSchemaDefaults(t *testing.T) {
	modules := entity.NewModuleRegistry()
	modules.Register(entity.BasicModule{
		Sym: "Person",
		Schema: entity.Schema{
			{Name: "name", Type: entity.FieldString, Required: true},
			{Name: "active", Type: entity.FieldBool, Default: true},
		},
	})

	a := NewInMemoryAdapter(modules, nil, nil)
	require.NoError(t, a.Init(config.DefaultConfig()))

	stored, err := a.Insert(entity.KindNode, entity.Node{
		Metadata: entity.Metadata{Module: "Person"},
		Data:     map[string]interface{}{"name": "alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, stored.(entity.Node).Data["active"])

	stored, err = a.Insert(entity.KindNode, entity.Node{
		Metadata: entity.Metadata{Module: "Person"},
		Data:     map[string]interface{}{"name": "bob", "active": false},
	})
	require.NoError(t, err)
	assert.Equal(t, false, stored.(entity.Node).Data["active"])
}

func TestGraphReaderSatisfiesAlgoContract(t *testing.T) {
	a := newTestAdapter(t)

	mustNode(t, a, "a")
	mustNode(t, a, "b")
	_, err := a.Insert(entity.KindEdge, entity.Edge{Source: "a", Target: "b", Type: "knows"})
	require.NoError(t, err)

	var reader algo.GraphReader = a
	assert.True(t, reader.NodeExists("a"))
	assert.False(t, reader.NodeExists("ghost"))

	edges := reader.EdgesOf("a", algo.Out, "")
	require.Len(t, edges, 1)
	assert.Equal(t, "b", edges[0].Target)
}
