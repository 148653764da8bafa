package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Sift error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrInvalidDescriptor ErrorCode = "INVALID_DESCRIPTOR" // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrDuplicateCell     ErrorCode = "DUPLICATE_CELL"     // 409
	ErrFileTooLarge      ErrorCode = "FILE_TOO_LARGE"     // 413
	ErrCancelled         ErrorCode = "CANCELLED"          // 499
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// SiftError represents a structured error with code, status, and details.
type SiftError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SiftError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SiftError {
	return &SiftError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidDescriptor creates a 400 error for a malformed file descriptor.
func NewInvalidDescriptor(msg string) *SiftError {
	return &SiftError{
		Code:    ErrInvalidDescriptor,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a file cannot be found.
func NewNotFound(fileID string) *SiftError {
	return &SiftError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", fileID),
		Details: map[string]any{"file_id": fileID},
	}
}

// NewDuplicateCell creates a 409 error for duplicate cell coordinates in one
// ingestion. The offending coordinate is carried in Details so the caller can
// report exactly which cell collided.
func NewDuplicateCell(sheetName string, row, col int) *SiftError {
	return &SiftError{
		Code:    ErrDuplicateCell,
		Status:  409,
		Message: fmt.Sprintf("duplicate cell coordinate in sheet %q: row %d, column %d", sheetName, row, col),
		Details: map[string]any{"sheet_name": sheetName, "row": row, "column": col},
	}
}

// NewFileTooLarge creates a 413 error when an ingestion exceeds the cell limit.
func NewFileTooLarge(maxCells, actualCells int) *SiftError {
	return &SiftError{
		Code:    ErrFileTooLarge,
		Status:  413,
		Message: fmt.Sprintf("file exceeds maximum cell count: %d cells (max %d)", actualCells, maxCells),
		Details: map[string]any{"max_cells": maxCells, "actual_cells": actualCells},
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *SiftError {
	return &SiftError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("operation cancelled: %s", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The original error text is kept in Details for logging; the message stays
// generic so internals do not leak to callers.
func NewInternal(err error) *SiftError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &SiftError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is a SiftError with the given code, seeing through
// wrapped errors.
func Is(err error, code ErrorCode) bool {
	var sErr *SiftError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
