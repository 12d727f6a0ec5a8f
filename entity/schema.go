/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

import (
	"fmt"

	"github.com/krotik/graphstore/gerr"
)

/*
FieldType names the accepted shape of a schema field's value.
*/
type FieldType string

/*
Field types recognized by schema validation.
*/
const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldBool   FieldType = "bool"
	FieldMap    FieldType = "map"
	FieldAny    FieldType = "any"
)

/*
Field describes one attribute of an entity's data map. When Type is
FieldMap, Schema (if set) validates the nested map recursively.
*/
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	Default  interface{}
	Schema   Schema
}

/*
Schema is a named list of field descriptors used to validate an
entity's data map against its declared type shape.
*/
type Schema []Field

/*
ApplyDefaults returns a copy of data with every field that has a
Default and is missing filled in. It does not mutate data.
*/
func (s Schema) ApplyDefaults(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}

	for _, f := range s {
		if _, present := out[f.Name]; !present && f.Default != nil {
			out[f.Name] = f.Default
		}
	}

	return out
}

/*
Validate checks data against the schema: every required field must be
present, and every present field's value must match its declared
type. Nested map fields recurse into their own schema. The first
violation found is returned.
*/
func (s Schema) Validate(data map[string]interface{}) error {
	for _, f := range s {
		val, present := data[f.Name]

		if !present {
			if f.Required {
				return gerr.Schema(f.Name, "required field is missing")
			}
			continue
		}

		if val == nil {
			continue
		}

		if err := checkType(f, val); err != nil {
			return err
		}
	}

	return nil
}

func checkType(f Field, val interface{}) error {
	switch f.Type {
	case FieldAny, "":
		return nil

	case FieldString:
		if _, ok := val.(string); !ok {
			return gerr.Schema(f.Name, fmt.Sprintf("expected string, got %T", val))
		}

	case FieldBool:
		if _, ok := val.(bool); !ok {
			return gerr.Schema(f.Name, fmt.Sprintf("expected bool, got %T", val))
		}

	case FieldNumber:
		switch val.(type) {
		case int, int32, int64, float32, float64:
			// ok
		default:
			return gerr.Schema(f.Name, fmt.Sprintf("expected number, got %T", val))
		}

	case FieldMap:
		nested, ok := val.(map[string]interface{})
		if !ok {
			return gerr.Schema(f.Name, fmt.Sprintf("expected map, got %T", val))
		}
		if f.Schema != nil {
			if err := f.Schema.Validate(nested); err != nil {
				return err
			}
		}

	default:
		return gerr.Schema(f.Name, fmt.Sprintf("unknown field type %q", f.Type))
	}

	return nil
}
