package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable marks a transport or auth failure reaching the
	// content source. It aborts a whole reconciliation run.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrBadPayload marks a response that arrived but could not be decoded.
	ErrBadPayload = errors.New("malformed source payload")

	// ErrNotFound is returned by the repository when no row matches.
	ErrNotFound = errors.New("product not found")

	// ErrConstraint is returned by the repository on a unique-constraint
	// violation (duplicate external id or sku).
	ErrConstraint = errors.New("product constraint violation")
)

// MappingError reports a source record whose shape does not satisfy the
// canonical product model. It is caught per record and counted, never
// propagated out of a run.
type MappingError struct {
	ExternalID string
	Field      string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("record %q: missing or invalid field %q", e.ExternalID, e.Field)
}

// ConflictError reports a record whose external id and sku each match a
// different existing row. Picking one silently would update the wrong
// product, so the record is rejected instead.
type ConflictError struct {
	ExternalID    string
	Sku           string
	ExternalRowID int64
	SkuRowID      int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("record %q: external id matches row %d but sku %q matches row %d",
		e.ExternalID, e.ExternalRowID, e.Sku, e.SkuRowID)
}
