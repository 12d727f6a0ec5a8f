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

func weightEdge(t *testing.T, s *Store, name, id, src, dst string, w float64) {
	t.Helper()
	_, err := s.Insert(name, "actor", entity.KindEdge, entity.Edge{ID: id, Source: src, Target: dst, Weight: &w})
	require.NoError(t, err)
}

func TestTraverseWeightedShortestPathScenario(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{}))
	defer s.Stop("main")

	for _, id := range []string{"A", "B", "C", "D", "E"} {
		_, err := s.Insert("main", "actor", entity.KindNode, entity.Node{ID: id})
		require.NoError(t, err)
	}

	weightEdge(t, s, "main", "ab", "A", "B", 5)
	weightEdge(t, s, "main", "ac", "A", "C", 2)
	weightEdge(t, s, "main", "bc", "B", "C", 1)
	weightEdge(t, s, "main", "bd", "B", "D", 3)
	weightEdge(t, s, "main", "cd", "C", "D", 7)
	weightEdge(t, s, "main", "ce", "C", "E", 4)
	weightEdge(t, s, "main", "de", "D", "E", 6)

	result, err := s.Traverse("main", "actor", AlgoDijkstra, TraverseArgs{
		SourceID: "A", TargetID: "E",
		DijkstraOptions: algo.DijkstraOptions{Direction: algo.Both},
	})
	require.NoError(t, err)

	sp := result.(ShortestPathResult)
	assert.Equal(t, []string{"A", "C", "E"}, sp.Path)
	assert.Equal(t, 6.0, sp.Weight)
}

func TestTraversePageRankShapeScenario(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{}))
	defer s.Stop("main")

	for _, id := range []string{"A", "B", "C"} {
		_, err := s.Insert("main", "actor", entity.KindNode, entity.Node{ID: id})
		require.NoError(t, err)
	}

	_, err := s.Insert("main", "actor", entity.KindEdge, entity.Edge{Source: "A", Target: "B"})
	require.NoError(t, err)
	_, err = s.Insert("main", "actor", entity.KindEdge, entity.Edge{Source: "B", Target: "C"})
	require.NoError(t, err)
	_, err = s.Insert("main", "actor", entity.KindEdge, entity.Edge{Source: "C", Target: "A"})
	require.NoError(t, err)

	result, err := s.Traverse("main", "actor", AlgoPageRank, TraverseArgs{
		PageRankOptions: algo.PageRankOptions{Damping: 0.85},
	})
	require.NoError(t, err)

	ranks := result.(map[string]float64)
	require.Len(t, ranks, 3)

	sum := 0.0
	for _, r := range ranks {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.InDelta(t, ranks["A"], ranks["B"], 1e-6)
	assert.InDelta(t, ranks["B"], ranks["C"], 1e-6)
}

func TestTraverseRejectsUnsupportedAdapter(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{Adapter: &bareAdapter{}}))
	defer s.Stop("main")

	_, err := s.Traverse("main", "actor", AlgoBFS, TraverseArgs{StartID: "x"})
	require.Error(t, err)
}

/*
bareAdapter implements only the Adapter contract, not algo.GraphReader,
exercising Store.Traverse's guard for adapters that don't support
traversal.
*/
type bareAdapter struct{}

func (bareAdapter) Init(cfg config.Config) error { return nil }

func (bareAdapter) Insert(kind entity.Kind, record interface{}) (interface{}, error) {
	return nil, gerr.InvalidOp(0, "not implemented")
}

func (bareAdapter) Update(kind entity.Kind, id string, patch map[string]interface{}) (interface{}, error) {
	return nil, gerr.InvalidOp(0, "not implemented")
}

func (bareAdapter) Delete(kind entity.Kind, id string) error {
	return gerr.InvalidOp(0, "not implemented")
}

func (bareAdapter) Get(kind entity.Kind, id string) (interface{}, error) {
	return nil, gerr.NotFound(string(kind), id)
}

func (bareAdapter) List(kind entity.Kind, filter map[string]interface{}) ([]interface{}, error) {
	return nil, nil
}

func (bareAdapter) Execute(tx *Transaction) ([]interface{}, error) {
	return nil, nil
}

func (bareAdapter) Stats() Stats { return Stats{} }

func (bareAdapter) Stop() error { return nil }

