/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package access

import (
	"testing"

	"github.com/krotik/graphstore/entity"
	"github.com/stretchr/testify/assert"
)

type denyWriteOverlay struct{}

func (denyWriteOverlay) Before(ctx Context) Decision {
	if ctx.Action == Write || ctx.Action == Destroy {
		return Deny("actor " + ctx.ActorID + " may not mutate")
	}
	return Allow
}

func (denyWriteOverlay) Filter(records []interface{}, action Action, ctx Context) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, r := range records {
		if node, ok := r.(entity.Node); ok && node.Data["secret"] == true {
			continue
		}
		out = append(out, r)
	}
	return out
}

func TestNoOverlayAllowsEverything(t *testing.T) {
	var o Overlay = NoOverlay{}

	d := o.Before(Context{Action: Destroy})
	assert.True(t, d.Allowed)

	in := []interface{}{1, 2, 3}
	assert.Equal(t, in, o.Filter(in, Read, Context{}))
}

func TestOverlayDeniesWriteWithReason(t *testing.T) {
	var o Overlay = denyWriteOverlay{}

	d := o.Before(Context{ActorID: "bob", Action: Write})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "bob")

	d = o.Before(Context{ActorID: "bob", Action: Read})
	assert.True(t, d.Allowed)
}

func TestOverlayFiltersSecretRecords(t *testing.T) {
	var o Overlay = denyWriteOverlay{}

	records := []interface{}{
		entity.Node{ID: "a", Data: map[string]interface{}{"secret": true}},
		entity.Node{ID: "b", Data: map[string]interface{}{"secret": false}},
	}

	out := o.Filter(records, Read, Context{})
	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].(entity.Node).ID)
}
