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
	"github.com/krotik/graphstore/pubsub"
)

/*
Store is the single public entry point every caller uses: it looks up
a named store in the registry, dispatches to its adapter, runs the
configured access overlay's hooks, and publishes resulting events.
*/
type Store struct {
	registry *Registry
}

/*
New returns a Store backed by a fresh, empty registry.
*/
func New() *Store {
	return &Store{registry: NewRegistry()}
}

/*
Start registers and starts a named store.
*/
func (s *Store) Start(name string, opts Options) error {
	return s.registry.Start(name, opts)
}

/*
Stop tears down a named store.
*/
func (s *Store) Stop(name string) error {
	return s.registry.Stop(name)
}

/*
authorize runs the store's before-hook for one operation, returning
Unauthorized when the overlay denies it.
*/
func authorize(h *handle, actorID string, kind entity.Kind, id string, action access.Action) error {
	decision := h.overlay.Before(access.Context{ActorID: actorID, EntityKind: kind, EntityID: id, Action: action})
	if !decision.Allowed {
		return &gerr.StoreError{Type: gerr.ErrUnauthorized, Fields: map[string]interface{}{
			"action": string(action), "reason": decision.Reason,
		}}
	}
	return nil
}

/*
Insert creates a new entity of kind in the named store, as actorID.
*/
func (s *Store) Insert(name, actorID string, kind entity.Kind, record interface{}) (interface{}, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}

	if err := authorize(h, actorID, kind, "", access.Write); err != nil {
		return nil, err
	}

	return h.adapter.Insert(kind, record)
}

/*
Update merges patch into an existing entity's data.
*/
func (s *Store) Update(name, actorID string, kind entity.Kind, id string, patch map[string]interface{}) (interface{}, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}

	if err := authorize(h, actorID, kind, id, access.Write); err != nil {
		return nil, err
	}

	return h.adapter.Update(kind, id, patch)
}

/*
Delete removes an entity.
*/
func (s *Store) Delete(name, actorID string, kind entity.Kind, id string) error {
	h, err := s.registry.lookup(name)
	if err != nil {
		return err
	}

	if err := authorize(h, actorID, kind, id, access.Destroy); err != nil {
		return err
	}

	return h.adapter.Delete(kind, id)
}

/*
Get looks up a single entity by id, subject to the overlay's filter
hook.
*/
func (s *Store) Get(name, actorID string, kind entity.Kind, id string) (interface{}, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}

	if err := authorize(h, actorID, kind, id, access.Read); err != nil {
		return nil, err
	}

	record, err := h.adapter.Get(kind, id)
	if err != nil {
		return nil, err
	}

	filtered := h.overlay.Filter([]interface{}{record}, access.Read, access.Context{ActorID: actorID, EntityKind: kind, EntityID: id, Action: access.Read})
	if len(filtered) == 0 {
		return nil, gerr.NotFound(string(kind), id)
	}

	return filtered[0], nil
}

/*
List returns every entity of kind matching filter, subject to the
overlay's filter hook.
*/
func (s *Store) List(name, actorID string, kind entity.Kind, filter map[string]interface{}) ([]interface{}, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}

	if err := authorize(h, actorID, kind, "", access.Read); err != nil {
		return nil, err
	}

	records, err := h.adapter.List(kind, filter)
	if err != nil {
		return nil, err
	}

	return h.overlay.Filter(records, access.Read, access.Context{ActorID: actorID, EntityKind: kind, Action: access.Read}), nil
}

/*
Commit runs tx atomically against the named store's adapter, having
first authorized every operation it carries. The first Deny aborts
the whole transaction with Unauthorized without touching the adapter.
*/
func (s *Store) Commit(name, actorID string, tx *Transaction) ([]interface{}, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}

	for _, op := range tx.Ops {
		action := access.Write
		if op.OpKind == OpDelete {
			action = access.Destroy
		}
		if err := authorize(h, actorID, op.Kind, op.ID, action); err != nil {
			return nil, err
		}
	}

	return h.adapter.Execute(tx)
}

/*
Stats returns the named store's per-type entity counts.
*/
func (s *Store) Stats(name string) (Stats, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return Stats{}, err
	}
	return h.adapter.Stats(), nil
}

/*
Subscribe registers handler with the named store's event bus.
*/
func (s *Store) Subscribe(name string, topic pubsub.Topic, handler pubsub.Handler, opts pubsub.SubscribeOptions) (string, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return "", err
	}
	return h.bus.Subscribe(topic, handler, opts), nil
}

/*
Unsubscribe removes a subscription from the named store's event bus.
*/
func (s *Store) Unsubscribe(name, subID string) error {
	h, err := s.registry.lookup(name)
	if err != nil {
		return err
	}
	h.bus.Unsubscribe(subID)
	return nil
}

/*
ListSubscriptions returns the named store's live subscriptions.
*/
func (s *Store) ListSubscriptions(name string) ([]pubsub.Info, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, err
	}
	return h.bus.ListSubscriptions(), nil
}

/*
Publish emits a custom event on the named store's event bus.
*/
func (s *Store) Publish(name string, ev pubsub.Event) error {
	h, err := s.registry.lookup(name)
	if err != nil {
		return err
	}
	h.bus.Publish(ev)
	return nil
}

/*
reader returns the named store's adapter as an algo.GraphReader, or
InvalidOperation if the configured adapter does not support
traversal.
*/
func (s *Store) reader(name string) (algo.GraphReader, *handle, error) {
	h, err := s.registry.lookup(name)
	if err != nil {
		return nil, nil, err
	}

	r, ok := h.adapter.(algo.GraphReader)
	if !ok {
		return nil, nil, gerr.InvalidOp(0, "adapter does not support traversal")
	}

	return r, h, nil
}
