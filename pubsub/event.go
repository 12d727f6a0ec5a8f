/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package pubsub is the store's event bus: topic and pattern
subscriptions with filter predicates, automatic cleanup on subscriber
death, and synchronous-from-the-caller's-view but non-blocking-for-
the-writer delivery.
*/
package pubsub

import (
	"time"

	"github.com/krotik/graphstore/entity"
)

/*
EventKind names the kind of mutation (or custom notification) an
Event carries.
*/
type EventKind string

/*
Event kinds recognized by subscriptions.
*/
const (
	Create EventKind = "Create"
	Update EventKind = "Update"
	Delete EventKind = "Delete"
	Custom EventKind = "Custom"
)

/*
Event is published by the store after a successful write, or by a
caller via Store.Publish for custom notifications.
*/
type Event struct {
	Kind       EventKind
	EntityKind entity.Kind
	EntityID   string
	Entity     interface{}
	Previous   interface{}
	Changes    map[string]interface{}
	Timestamp  time.Time
	Metadata   map[string]interface{}
}
