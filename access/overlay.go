/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package access defines the two hook points an external access-control
module plugs into the store through. The store treats an Overlay as
opaque - no overlay-specific types leak into the store's public CRUD
surface beyond this package.
*/
package access

import "github.com/krotik/graphstore/entity"

/*
Action is the operation an actor intends to perform.
*/
type Action string

/*
Actions a Context may describe.
*/
const (
	Read    Action = "Read"
	Write   Action = "Write"
	Destroy Action = "Destroy"
	Execute Action = "Execute"
)

/*
Context carries everything an overlay needs to decide whether an
operation is permitted.
*/
type Context struct {
	ActorID    string
	EntityKind entity.Kind
	EntityID   string
	Action     Action
}

/*
Decision is the result of a before-hook evaluation.
*/
type Decision struct {
	Allowed bool
	Reason  string
}

/*
Allow is the zero-value decision granting an operation.
*/
var Allow = Decision{Allowed: true}

/*
Deny builds a denying decision carrying a reason.
*/
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

/*
Overlay is the access-control extension point. Before runs
synchronously ahead of every operation in a transaction; any Deny
aborts the whole transaction with Unauthorized. Filter runs after a
read to remove records the actor may not see.
*/
type Overlay interface {

	/*
	   Before decides whether ctx's operation may proceed.
	*/
	Before(ctx Context) Decision

	/*
	   Filter removes records the actor in ctx may not see from
	   records, returning the filtered slice. action is always Read.
	*/
	Filter(records []interface{}, action Action, ctx Context) []interface{}
}

/*
NoOverlay allows every operation and filters nothing. It is the
default when a store is started without an overlay.
*/
type NoOverlay struct{}

func (NoOverlay) Before(ctx Context) Decision { return Allow }

func (NoOverlay) Filter(records []interface{}, action Action, ctx Context) []interface{} {
	return records
}
