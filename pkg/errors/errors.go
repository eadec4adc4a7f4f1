package errors

import (
	"errors"
	"fmt"
)

// MalformedNodeError indicates a filter node that is not a one-key object,
// or a node that appears where the grammar does not allow it.
type MalformedNodeError struct {
	Fragment any
	Reason   string
}

func NewMalformedNodeError(fragment any, reason string) *MalformedNodeError {
	return &MalformedNodeError{Fragment: fragment, Reason: reason}
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("malformed node %v: %s", e.Fragment, e.Reason)
}

// IsMalformedNodeError checks if the error is a MalformedNodeError.
func IsMalformedNodeError(err error) bool {
	var e *MalformedNodeError
	return errors.As(err, &e)
}

// MissingOperandError indicates a recognized key whose value is absent.
type MissingOperandError struct {
	Key      string
	Fragment any
}

func NewMissingOperandError(key string, fragment any) *MissingOperandError {
	return &MissingOperandError{Key: key, Fragment: fragment}
}

func (e *MissingOperandError) Error() string {
	return fmt.Sprintf("missing operand for %q in %v", e.Key, e.Fragment)
}

func IsMissingOperandError(err error) bool {
	var e *MissingOperandError
	return errors.As(err, &e)
}

// UnsupportedValueTypeError indicates a value that is not a string, number or boolean.
type UnsupportedValueTypeError struct {
	Value any
}

func NewUnsupportedValueTypeError(value any) *UnsupportedValueTypeError {
	return &UnsupportedValueTypeError{Value: value}
}

func (e *UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("unsupported value type %T: %v", e.Value, e.Value)
}

func IsUnsupportedValueTypeError(err error) bool {
	var e *UnsupportedValueTypeError
	return errors.As(err, &e)
}

// UnknownQueryShapeError indicates a top-level filter that is neither an
// expression nor a logical combinator.
type UnknownQueryShapeError struct {
	Query any
}

func NewUnknownQueryShapeError(query any) *UnknownQueryShapeError {
	return &UnknownQueryShapeError{Query: query}
}

func (e *UnknownQueryShapeError) Error() string {
	return fmt.Sprintf("query is of unknown shape: %v", e.Query)
}

func IsUnknownQueryShapeError(err error) bool {
	var e *UnknownQueryShapeError
	return errors.As(err, &e)
}

// UnknownFieldError indicates a field that the table schema does not declare.
type UnknownFieldError struct {
	Field string
}

func NewUnknownFieldError(field string) *UnknownFieldError {
	return &UnknownFieldError{Field: field}
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

func IsUnknownFieldError(err error) bool {
	var e *UnknownFieldError
	return errors.As(err, &e)
}

// FieldKindMismatchError indicates a value whose kind differs from the
// kind the schema declares for the field.
type FieldKindMismatchError struct {
	Field string
	Kind  string
	Value any
}

func NewFieldKindMismatchError(field, kind string, value any) *FieldKindMismatchError {
	return &FieldKindMismatchError{Field: field, Kind: kind, Value: value}
}

func (e *FieldKindMismatchError) Error() string {
	return fmt.Sprintf("field %q expects a %s value, got %T", e.Field, e.Kind, e.Value)
}

func IsFieldKindMismatchError(err error) bool {
	var e *FieldKindMismatchError
	return errors.As(err, &e)
}

// ReservedFieldError indicates a schema field whose name collides with the
// operator namespace.
type ReservedFieldError struct {
	Field string
}

func NewReservedFieldError(field string) *ReservedFieldError {
	return &ReservedFieldError{Field: field}
}

func (e *ReservedFieldError) Error() string {
	return fmt.Sprintf("field name %q is reserved for operators", e.Field)
}

func IsReservedFieldError(err error) bool {
	var e *ReservedFieldError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind, ID: id}
}

func NewTableNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("table", name)
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// IsQueryError reports whether err is caused by a malformed filter or
// projection, as opposed to a storage or lookup failure.
func IsQueryError(err error) bool {
	return IsMalformedNodeError(err) ||
		IsMissingOperandError(err) ||
		IsUnsupportedValueTypeError(err) ||
		IsUnknownQueryShapeError(err) ||
		IsUnknownFieldError(err) ||
		IsFieldKindMismatchError(err)
}
