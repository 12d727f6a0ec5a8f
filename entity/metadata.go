/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package entity contains the typed node/edge/graph model, the binding
and schema machinery that constrains it, and the metadata lifecycle
every entity carries.
*/
package entity

import "time"

/*
Kind identifies what an entity is - a Graph, Node or Edge.
*/
type Kind string

/*
The three entity kinds known to the store.
*/
const (
	KindGraph Kind = "Graph"
	KindNode  Kind = "Node"
	KindEdge  Kind = "Edge"
)

/*
Metadata is attached to every stored entity and is owned by the store,
never by the caller: CreatedAt/UpdatedAt/Version/Deleted* are set and
maintained exclusively by insert/update/delete.
*/
type Metadata struct {
	EntityKind Kind
	Module     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	Version    uint64
	Deleted    bool
}

/*
NewMetadata returns metadata for a newly inserted entity of the given
kind and type module, stamped with the current time and version 0.
*/
func NewMetadata(kind Kind, module string, now time.Time) Metadata {
	return Metadata{
		EntityKind: kind,
		Module:     module,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    0,
	}
}

/*
Touch returns a copy of this metadata with UpdatedAt set to now and
Version incremented by one. Used on every successful update.
*/
func (m Metadata) Touch(now time.Time) Metadata {
	m.UpdatedAt = now
	m.Version++
	return m
}

/*
MarkDeleted returns a copy of this metadata with Deleted/DeletedAt set.
Used for soft-delete; the default in-memory adapter hard-deletes and
never calls this, but adapters that choose soft-delete use it.
*/
func (m Metadata) MarkDeleted(now time.Time) Metadata {
	m.Deleted = true
	m.DeletedAt = &now
	return m
}
