/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package pubsub

import "github.com/krotik/graphstore/entity"

/*
topicShape distinguishes the three addressing forms a Topic can take.
*/
type topicShape int

const (
	shapeKind topicShape = iota
	shapeKindID
	shapeString
)

/*
Topic addresses a subscription: a kind selector (matches any event of
that entity kind), a kind+id selector (matches one entity only), or
an opaque string for custom events.
*/
type Topic struct {
	shape      topicShape
	entityKind entity.Kind
	entityID   string
	str        string
}

/*
KindTopic matches any event of the given entity kind.
*/
func KindTopic(kind entity.Kind) Topic {
	return Topic{shape: shapeKind, entityKind: kind}
}

/*
EntityTopic matches events about one specific entity.
*/
func EntityTopic(kind entity.Kind, id string) Topic {
	return Topic{shape: shapeKindID, entityKind: kind, entityID: id}
}

/*
StringTopic matches custom events published under this exact string.
*/
func StringTopic(topic string) Topic {
	return Topic{shape: shapeString, str: topic}
}

/*
Matches reports whether this topic pattern selects ev.
*/
func (t Topic) Matches(ev Event) bool {
	switch t.shape {
	case shapeKind:
		return ev.EntityKind == t.entityKind
	case shapeKindID:
		return ev.EntityKind == t.entityKind && ev.EntityID == t.entityID
	case shapeString:
		return ev.Kind == Custom && ev.Metadata != nil && ev.Metadata["topic"] == t.str
	}
	return false
}
