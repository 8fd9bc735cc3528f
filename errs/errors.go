// Package errs defines the sentinel errors returned by npyexport.
//
// Errors are wrapped with fmt.Errorf("...: %w", err) on their way out, so
// callers should match them with errors.Is rather than by equality.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEndianness is returned when the runtime byte-order detection could not
	// classify the machine as big- or little-endian.
	ErrUnknownEndianness = errors.New("unknown endianness")

	// ErrContractViolation marks caller programming errors: an empty shape, a negative
	// shape entry, an unknown byte order requested for the header, or an invalid
	// element descriptor.
	ErrContractViolation = errors.New("contract violation")

	// ErrInvalidShape is returned for shapes with zero entries or negative dimensions.
	ErrInvalidShape = fmt.Errorf("invalid shape: %w", ErrContractViolation)

	// ErrInvalidDescriptor is returned for element descriptors with a non-positive
	// dimension count or a nil accessor.
	ErrInvalidDescriptor = fmt.Errorf("invalid element descriptor: %w", ErrContractViolation)

	// ErrInvalidByteOrder is returned when the unknown byte order is requested for
	// the header dictionary.
	ErrInvalidByteOrder = fmt.Errorf("invalid byte order for export: %w", ErrContractViolation)

	// ErrHeaderTooLarge is returned when the header length cannot be represented in
	// the length field of the selected format version.
	ErrHeaderTooLarge = errors.New("header too large")

	// ErrInvalidCompression is returned for unsupported sink compression types.
	ErrInvalidCompression = errors.New("invalid compression type")
)
