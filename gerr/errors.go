/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package gerr contains the typed errors returned by every layer of the
store. Low-level errors are always wrapped in a StoreError before they
reach a caller.
*/
package gerr

import (
	"errors"
	"fmt"
	"sort"
)

/*
StoreError is the error type returned by all store, algorithm and
subscription operations. Type is a sentinel usable with errors.Is;
Detail is a human-readable string; Fields carries structured context
such as the offending entity kind/id or a transaction operation index.
*/
type StoreError struct {
	Type   error
	Detail string
	Fields map[string]interface{}
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *StoreError) Error() string {
	if e.Detail == "" && len(e.Fields) == 0 {
		return e.Type.Error()
	}

	if len(e.Fields) == 0 {
		return fmt.Sprintf("%v: %v", e.Type, e.Detail)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := fmt.Sprintf("%v", e.Type)
	if e.Detail != "" {
		s += ": " + e.Detail
	}

	s += " ("
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v=%v", k, e.Fields[k])
	}
	s += ")"

	return s
}

/*
Unwrap exposes the sentinel Type so errors.Is/errors.As work against
the package-level sentinel errors below.
*/
func (e *StoreError) Unwrap() error {
	return e.Type
}

/*
Validation error types.
*/
var (
	ErrSchemaViolation  = errors.New("schema violation")
	ErrBindingViolation = errors.New("binding violation")
	ErrInvalidOperation = errors.New("invalid operation")
)

/*
Not-found and integrity error types.
*/
var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDanglingReference = errors.New("dangling reference")
)

/*
Authorization error type.
*/
var ErrUnauthorized = errors.New("unauthorized")

/*
Algorithmic error types.
*/
var (
	ErrNoPath     = errors.New("no path")
	ErrGraphEmpty = errors.New("graph is empty")
)

/*
Availability error types.
*/
var (
	ErrTimeout       = errors.New("operation timed out")
	ErrStoreNotFound = errors.New("store not found")
)

/*
Transactional error type. Always carries the underlying cause in Fields["cause"].
*/
var ErrTransactionFailed = errors.New("transaction failed")

/*
Internal error type - used to wrap a recovered panic from inside an
algorithm or subscriber callback.
*/
var ErrInternal = errors.New("internal error")

/*
NotFound builds an EntityNotFound error for a given entity kind and id.
*/
func NotFound(kind, id string) *StoreError {
	return &StoreError{Type: ErrEntityNotFound, Fields: map[string]interface{}{
		"kind": kind, "id": id,
	}}
}

/*
Binding builds a BindingViolation error.
*/
func Binding(which, module, reason string) *StoreError {
	return &StoreError{Type: ErrBindingViolation, Fields: map[string]interface{}{
		"which": which, "module": module, "reason": reason,
	}}
}

/*
Schema builds a SchemaViolation error.
*/
func Schema(field, reason string) *StoreError {
	return &StoreError{Type: ErrSchemaViolation, Fields: map[string]interface{}{
		"field": field, "reason": reason,
	}}
}

/*
InvalidOp builds an InvalidOperation error for a transaction op at a given index.
*/
func InvalidOp(index int, reason string) *StoreError {
	return &StoreError{Type: ErrInvalidOperation, Fields: map[string]interface{}{
		"index": index, "reason": reason,
	}}
}

/*
TxFailed builds a TransactionFailed error carrying the underlying cause.
*/
func TxFailed(index int, cause error) *StoreError {
	return &StoreError{Type: ErrTransactionFailed, Fields: map[string]interface{}{
		"index": index, "cause": cause,
	}}
}

/*
NoPath builds a NoPath error for a source/target pair with no connecting path.
*/
func NoPath(source, target string) *StoreError {
	return &StoreError{Type: ErrNoPath, Fields: map[string]interface{}{
		"source": source, "target": target,
	}}
}

/*
Is reports whether err's sentinel type matches target, following the
chain of wrapped StoreErrors. Thin convenience wrapper around errors.Is.
*/
func Is(err, target error) bool {
	return errors.Is(err, target)
}
