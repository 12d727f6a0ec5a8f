/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import "github.com/krotik/graphstore/entity"

/*
OpKind is the kind of a single transaction operation.
*/
type OpKind int

/*
The three operation kinds a transaction can carry.
*/
const (
	OpInsert OpKind = iota
	OpUpdate
	OpDelete
)

/*
Op is one operation of a transaction.
*/
type Op struct {
	Kind   entity.Kind
	OpKind OpKind

	// ID addresses the target for Update/Delete, and optionally
	// supplies the id for Insert.
	ID string

	// Record carries the entity.Graph/Node/Edge for an Insert.
	Record interface{}

	// Patch carries the Data merge for an Update.
	Patch map[string]interface{}
}

/*
Transaction is an ordered sequence of Insert/Update/Delete operations
committed atomically by Adapter.Execute: either every operation
succeeds, or the adapter rolls back to the pre-transaction state and
returns TransactionFailed. Executing an empty transaction is a no-op.
*/
type Transaction struct {
	Ops []Op
}

/*
NewTransaction returns an empty transaction ready to be built up with
Insert/Update/Delete and passed to Adapter.Execute.
*/
func NewTransaction() *Transaction {
	return &Transaction{}
}

/*
Insert appends an insert operation for record of the given kind.
*/
func (t *Transaction) Insert(kind entity.Kind, record interface{}) *Transaction {
	t.Ops = append(t.Ops, Op{Kind: kind, OpKind: OpInsert, Record: record})
	return t
}

/*
Update appends an update operation merging patch into id's Data.
*/
func (t *Transaction) Update(kind entity.Kind, id string, patch map[string]interface{}) *Transaction {
	t.Ops = append(t.Ops, Op{Kind: kind, OpKind: OpUpdate, ID: id, Patch: patch})
	return t
}

/*
Delete appends a delete operation for id.
*/
func (t *Transaction) Delete(kind entity.Kind, id string) *Transaction {
	t.Ops = append(t.Ops, Op{Kind: kind, OpKind: OpDelete, ID: id})
	return t
}

/*
IsEmpty reports whether this transaction carries no operations.
*/
func (t *Transaction) IsEmpty() bool {
	return len(t.Ops) == 0
}
