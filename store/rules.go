/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/pubsub"
)

/*
TxHandle is the narrow view of the in-progress transaction a GraphRule
is allowed to mutate. Everything a rule does through it is folded into
the same undo log as the triggering operation, so a rule's side
effects roll back along with the rest of the transaction.
*/
type TxHandle interface {

	/*
	   EdgesOfNode returns every edge currently touching nodeID as
	   either source or target.
	*/
	EdgesOfNode(nodeID string) []entity.Edge

	/*
	   DeleteEdge removes edge id as part of the running transaction.
	   A no-op if the edge is already gone.
	*/
	DeleteEdge(id string) error

	/*
	   BumpStat adjusts the running per-type count for kind/typeName by
	   delta.
	*/
	BumpStat(kind entity.Kind, typeName string, delta int)
}

/*
GraphRule is a registered side effect that runs inside the same
transaction as the write that triggered it, grounded on the cascading
consistency rules the teacher bakes into its graph manager (e.g.
removing an orphaned edge's index entries when its node disappears).
*/
type GraphRule interface {

	/*
	   Name identifies this rule for logging and diagnostics.
	*/
	Name() string

	/*
	   Handles lists the event kinds this rule reacts to.
	*/
	Handles() []pubsub.EventKind

	/*
	   Handle runs the rule's side effect for one committed operation.
	   entityKind/entityID/typeName describe the entity the triggering
	   operation acted on; typeName is the entity's Type (taken from
	   its previous state for a Delete), or "" for a Graph.
	*/
	Handle(tx TxHandle, ev pubsub.EventKind, entityKind entity.Kind, entityID string, typeName string) error
}

/*
cascadeDeleteEdges removes every edge incident to a node once that
node is hard-deleted, preventing dangling source/target references
from lingering in the primary edge table.
*/
type cascadeDeleteEdges struct{}

func (cascadeDeleteEdges) Name() string { return "cascadeDeleteEdges" }

func (cascadeDeleteEdges) Handles() []pubsub.EventKind {
	return []pubsub.EventKind{pubsub.Delete}
}

func (cascadeDeleteEdges) Handle(tx TxHandle, ev pubsub.EventKind, entityKind entity.Kind, entityID string, typeName string) error {
	if entityKind != entity.KindNode {
		return nil
	}

	for _, e := range tx.EdgesOfNode(entityID) {
		if err := tx.DeleteEdge(e.ID); err != nil {
			return err
		}
	}

	return nil
}

/*
bumpGraphStats maintains the per-type node/edge counts Store.Stats
reports, incrementing on Create and decrementing on Delete.
*/
type bumpGraphStats struct{}

func (bumpGraphStats) Name() string { return "bumpGraphStats" }

func (bumpGraphStats) Handles() []pubsub.EventKind {
	return []pubsub.EventKind{pubsub.Create, pubsub.Delete}
}

func (bumpGraphStats) Handle(tx TxHandle, ev pubsub.EventKind, entityKind entity.Kind, entityID string, typeName string) error {
	if entityKind != entity.KindNode && entityKind != entity.KindEdge {
		return nil
	}

	delta := 1
	if ev == pubsub.Delete {
		delta = -1
	}

	tx.BumpStat(entityKind, typeName, delta)

	return nil
}

/*
DefaultRules returns the built-in rules every store registers unless
told otherwise.
*/
func DefaultRules() []GraphRule {
	return []GraphRule{cascadeDeleteEdges{}, bumpGraphStats{}}
}
