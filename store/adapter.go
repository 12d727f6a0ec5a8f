/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package store implements the storage engine: the pluggable Adapter
contract, the default in-memory adapter with its composite indices,
atomic transactions with rollback, a named-store registry and the
public Store facade every caller enters through.
*/
package store

import (
	"github.com/krotik/graphstore/config"
	"github.com/krotik/graphstore/entity"
)

/*
Stats holds per-type entity counts, maintained by the bumpGraphStats
rule and surfaced through Store.Stats.
*/
type Stats struct {
	Nodes map[string]int
	Edges map[string]int
}

/*
Adapter is the pluggable storage contract the Store facade consumes.
Every method operates under the adapter's own locking; callers never
need to take a lock themselves.
*/
type Adapter interface {

	/*
	   Init prepares the adapter to serve requests with the given
	   configuration. Called once by Registry.Start.
	*/
	Init(cfg config.Config) error

	/*
	   Insert stores record (an entity.Graph, entity.Node or
	   entity.Edge depending on kind) and returns it with metadata
	   populated. record.ID may be empty, in which case one is
	   assigned.
	*/
	Insert(kind entity.Kind, record interface{}) (interface{}, error)

	/*
	   Update merges patch into the existing record's Data, bumps its
	   version and updated_at, and returns the merged record.
	*/
	Update(kind entity.Kind, id string, patch map[string]interface{}) (interface{}, error)

	/*
	   Delete removes the record of the given kind and id.
	*/
	Delete(kind entity.Kind, id string) error

	/*
	   Get returns the record of the given kind and id.
	*/
	Get(kind entity.Kind, id string) (interface{}, error)

	/*
	   List returns every record of the given kind matching filter. An
	   empty filter matches every record.
	*/
	List(kind entity.Kind, filter map[string]interface{}) ([]interface{}, error)

	/*
	   Execute commits tx atomically: every operation succeeds or none
	   do. The returned slice has one entry per operation - the
	   post-operation record for Insert/Update, nil for Delete.
	*/
	Execute(tx *Transaction) ([]interface{}, error)

	/*
	   Stats returns the current per-type entity counts.
	*/
	Stats() Stats

	/*
	   Stop releases any resources held by the adapter. The adapter is
	   unusable afterwards.
	*/
	Stop() error
}

/*
matchesFilter reports whether indexed, an entity's IndexMap(), satisfies
every key/value pair in filter. An empty filter always matches.
*/
func matchesFilter(indexed map[string]interface{}, filter map[string]interface{}) bool {
	for k, want := range filter {
		v, ok := indexed[k]
		if !ok || v != want {
			return false
		}
	}

	return true
}
