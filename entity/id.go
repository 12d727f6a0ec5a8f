/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

import "github.com/google/uuid"

/*
NewID returns a new time-ordered, lexicographically sortable 128-bit
identifier. IDs are unique within an entity kind within a store, never
across kinds.
*/
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the OS entropy source is broken;
		// fall back to a random v4 rather than returning an error from
		// every insert call.
		id = uuid.New()
	}

	return id.String()
}
