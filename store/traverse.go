/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"github.com/krotik/graphstore/access"
	"github.com/krotik/graphstore/algo"
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
)

/*
AlgoName selects which algorithm Store.Traverse runs.
*/
type AlgoName string

/*
The algorithms Store.Traverse can dispatch to.
*/
const (
	AlgoBFS        AlgoName = "BFS"
	AlgoDijkstra   AlgoName = "Dijkstra"
	AlgoComponents AlgoName = "ConnectedComponents"
	AlgoPageRank   AlgoName = "PageRank"
	AlgoMST        AlgoName = "MST"
)

/*
TraverseArgs carries the inputs for every algorithm Store.Traverse can
run; only the fields relevant to the selected AlgoName are read.
*/
type TraverseArgs struct {
	StartID  string
	SourceID string
	TargetID string

	BFSOptions        algo.BFSOptions
	DijkstraOptions   algo.DijkstraOptions
	ComponentsOptions algo.ComponentsOptions
	PageRankOptions   algo.PageRankOptions
	MSTOptions        algo.MSTOptions
}

/*
ShortestPathResult is Store.Traverse's result shape for AlgoDijkstra.
*/
type ShortestPathResult struct {
	Path   []string
	Weight float64
}

/*
MSTResult is Store.Traverse's result shape for AlgoMST.
*/
type MSTResult struct {
	Edges       []algo.EdgeRef
	TotalWeight float64
}

/*
Traverse runs a graph algorithm against the named store, authorized as
an Execute action. None of the algorithms mutate the store.
*/
func (s *Store) Traverse(name, actorID string, which AlgoName, args TraverseArgs) (interface{}, error) {
	r, h, err := s.reader(name)
	if err != nil {
		return nil, err
	}

	if err := authorize(h, actorID, entity.KindNode, "", access.Execute); err != nil {
		return nil, err
	}

	switch which {
	case AlgoBFS:
		return algo.BFS(r, args.StartID, args.BFSOptions)

	case AlgoDijkstra:
		path, weight, err := algo.ShortestPath(r, args.SourceID, args.TargetID, args.DijkstraOptions)
		if err != nil {
			return nil, err
		}
		return ShortestPathResult{Path: path, Weight: weight}, nil

	case AlgoComponents:
		return algo.ConnectedComponents(r, args.ComponentsOptions), nil

	case AlgoPageRank:
		return algo.PageRank(r, args.PageRankOptions), nil

	case AlgoMST:
		edges, total := algo.MST(r, args.MSTOptions)
		return MSTResult{Edges: edges, TotalWeight: total}, nil
	}

	return nil, gerr.InvalidOp(0, "unknown algorithm "+string(which))
}
