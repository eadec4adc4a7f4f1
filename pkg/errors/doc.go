// Package errors provides custom error types for the filter translator.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌───────────────────────────┬────────┬──────────────────────────────────────────┐
//	│ Error Type                │ HTTP   │ Description                              │
//	├───────────────────────────┼────────┼──────────────────────────────────────────┤
//	│ MalformedNodeError        │ 400    │ Node is not a one-key object, or misplaced│
//	│ MissingOperandError       │ 400    │ Operator or field without a value        │
//	│ UnsupportedValueTypeError │ 400    │ Value is not string, number or boolean   │
//	│ UnknownQueryShapeError    │ 400    │ Top-level filter is not expr/combinator  │
//	│ UnknownFieldError         │ 400    │ Field not declared by the table schema   │
//	│ FieldKindMismatchError    │ 400    │ Value kind differs from the schema kind  │
//	│ ReservedFieldError        │ -      │ Schema field name starts with '$'        │
//	│ ResourceNotFoundError     │ 404    │ Table is not in the catalog              │
//	└───────────────────────────┴────────┴──────────────────────────────────────────┘
//
// # MalformedNodeError
//
// Raised by the classifier when a filter-bearing object has zero or several
// keys, and by the compiler when a node shows up where the grammar forbids
// it (a bare operator inside $or/$and, a sub-document as a field operand).
// Fragment carries the smallest offending value.
//
// # MissingOperandError
//
// Raised when a recognized key has a nil value, e.g. {"$gt": null}.
//
// # UnsupportedValueTypeError
//
// Raised by the value formatter for anything that is not a string, a
// number or a boolean. NaN and infinities are rejected too.
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	wrapped := fmt.Errorf("translate: %w", errors.NewUnknownFieldError("nme"))
//	errors.IsUnknownFieldError(wrapped) // returns true
//
// IsQueryError groups every error caused by the caller's filter or
// projection, which handlers map to 400:
//
//	switch {
//	case errors.IsResourceNotFoundError(err):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.IsQueryError(err):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
