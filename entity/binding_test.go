/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingAllowedEmptyIncludeAllowsAll(t *testing.T) {
	b := NewBinding(nil, []string{"City"})

	ok, _ := b.Allowed("Person")
	assert.True(t, ok)

	ok, reason := b.Allowed("City")
	assert.False(t, ok)
	assert.Equal(t, "excluded", reason)
}

func TestBindingAllowedWithInclude(t *testing.T) {
	b := NewBinding([]string{"Person"}, nil)

	ok, _ := b.Allowed("Person")
	assert.True(t, ok)

	ok, reason := b.Allowed("City")
	assert.False(t, ok)
	assert.Equal(t, "not_included", reason)
}
