/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

/*
Binding constrains which type-module symbols may appear as the
source or target of an edge type. A module is allowed iff Include is
empty or contains it, and Exclude does not contain it.
*/
type Binding struct {
	Include map[string]struct{}
	Exclude map[string]struct{}
}

/*
NewBinding builds a Binding from include/exclude symbol lists. Either
may be nil or empty.
*/
func NewBinding(include, exclude []string) Binding {
	b := Binding{
		Include: make(map[string]struct{}, len(include)),
		Exclude: make(map[string]struct{}, len(exclude)),
	}

	for _, m := range include {
		b.Include[m] = struct{}{}
	}
	for _, m := range exclude {
		b.Exclude[m] = struct{}{}
	}

	return b
}

/*
Allowed reports whether a given type-module symbol satisfies this
binding, and if not, which reason ("not_included" or "excluded").
*/
func (b Binding) Allowed(module string) (ok bool, reason string) {
	if len(b.Include) > 0 {
		if _, found := b.Include[module]; !found {
			return false, "not_included"
		}
	}

	if _, excluded := b.Exclude[module]; excluded {
		return false, "excluded"
	}

	return true, ""
}
