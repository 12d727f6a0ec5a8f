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
	"testing"
	"time"

	"github.com/krotik/graphstore/access"
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
	"github.com/krotik/graphstore/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCond(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStoreStartStopLifecycle(t *testing.T) {
	s := New()

	require.NoError(t, s.Start("main", Options{}))
	assert.Error(t, s.Start("main", Options{}))

	_, err := s.Insert("main", "actor", entity.KindNode, entity.Node{ID: "a"})
	require.NoError(t, err)

	require.NoError(t, s.Stop("main"))

	_, err = s.Insert("main", "actor", entity.KindNode, entity.Node{ID: "b"})
	assert.True(t, gerr.Is(err, gerr.ErrStoreNotFound))
}

type denyDestroyOverlay struct{}

func (denyDestroyOverlay) Before(ctx access.Context) access.Decision {
	if ctx.Action == access.Destroy {
		return access.Deny("actor cannot destroy")
	}
	return access.Allow
}

func (denyDestroyOverlay) Filter(records []interface{}, action access.Action, ctx access.Context) []interface{} {
	return records
}

func TestOverlayDenyAbortsOperation(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{Overlay: denyDestroyOverlay{}}))
	defer s.Stop("main")

	_, err := s.Insert("main", "bob", entity.KindNode, entity.Node{ID: "a"})
	require.NoError(t, err)

	err = s.Delete("main", "bob", entity.KindNode, "a")
	require.Error(t, err)
	assert.True(t, gerr.Is(err, gerr.ErrUnauthorized))

	got, err := s.Get("main", "bob", entity.KindNode, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.(entity.Node).ID)
}

func TestEventDeliveryScenario(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{}))
	defer s.Stop("main")

	var mu sync.Mutex
	var received []pubsub.Event

	_, err := s.Subscribe("main", pubsub.EntityTopic(entity.KindNode, "x"), func(ev pubsub.Event) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, ev)
	}, pubsub.SubscribeOptions{EventKinds: []pubsub.EventKind{pubsub.Create, pubsub.Update}})
	require.NoError(t, err)

	_, err = s.Insert("main", "actor", entity.KindNode, entity.Node{ID: "x"})
	require.NoError(t, err)

	waitForCond(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	})

	_, err = s.Update("main", "actor", entity.KindNode, "x", map[string]interface{}{"k": "v"})
	require.NoError(t, err)

	waitForCond(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	})

	require.NoError(t, s.Delete("main", "actor", entity.KindNode, "x"))

	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, pubsub.Create, received[0].Kind)
	assert.Equal(t, pubsub.Update, received[1].Kind)
	assert.Equal(t, uint64(0), received[1].Previous.(entity.Node).Metadata.Version)
	assert.Equal(t, uint64(1), received[1].Entity.(entity.Node).Metadata.Version)
}

func TestCommitAuthorizesEveryOperation(t *testing.T) {
	s := New()
	require.NoError(t, s.Start("main", Options{Overlay: denyDestroyOverlay{}}))
	defer s.Stop("main")

	_, err := s.Insert("main", "actor", entity.KindNode, entity.Node{ID: "a"})
	require.NoError(t, err)

	tx := NewTransaction().
		Insert(entity.KindNode, entity.Node{ID: "b"}).
		Delete(entity.KindNode, "a")

	_, err = s.Commit("main", "actor", tx)
	require.Error(t, err)
	assert.True(t, gerr.Is(err, gerr.ErrUnauthorized))

	_, err = s.Get("main", "actor", entity.KindNode, "b")
	assert.True(t, gerr.Is(err, gerr.ErrEntityNotFound), "a denied commit must not apply any of its operations")
}
