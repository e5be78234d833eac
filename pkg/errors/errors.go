// Package errors defines the error taxonomy shared by the boundary, the operation
// engine and the permission adapter. Host filesystem errors are classified into a
// small closed set of sentinels while keeping the original error in the chain, so
// errors.Is works against both the sentinel and the underlying syscall error.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

// Boundary marshaling errors. No filesystem call is attempted when one of these
// is returned.
var (
	ErrNullPointer     = fmt.Errorf("null pointer")
	ErrInvalidEncoding = fmt.Errorf("invalid UTF-8 encoding")
)

// Engine and permission adapter errors.
var (
	ErrNotFound            = fmt.Errorf("not found")
	ErrPermissionDenied    = fmt.Errorf("permission denied")
	ErrCrossVolume         = fmt.Errorf("cross-volume operation not supported")
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")
	ErrIO                  = fmt.Errorf("I/O error")
)

// Config and manifest errors.
var (
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrInvalidLogLevel  = fmt.Errorf("invalid log level")
	ErrInvalidManifest  = fmt.Errorf("invalid batch manifest")
	ErrInvalidTree      = fmt.Errorf("invalid tree listing")
	ErrUnknownOperation = fmt.Errorf("unknown operation")
	ErrInvalidMode      = fmt.Errorf("invalid permission mode")
	ErrVersionMismatch  = fmt.Errorf("version requirement not satisfied")
)

// Code is a stable, machine-friendly name for an error category.
type Code string

const (
	CodeNullPointer         Code = "NULL_POINTER"
	CodeInvalidEncoding     Code = "INVALID_ENCODING"
	CodeNotFound            Code = "NOT_FOUND"
	CodePermissionDenied    Code = "PERMISSION_DENIED"
	CodeCrossVolume         Code = "CROSS_VOLUME"
	CodeUnsupportedPlatform Code = "UNSUPPORTED_PLATFORM"
	CodeIO                  Code = "IO_ERROR"
)

// codes is ordered: the first matching sentinel wins.
var codes = []struct {
	sentinel error
	code     Code
}{
	{ErrNullPointer, CodeNullPointer},
	{ErrInvalidEncoding, CodeInvalidEncoding},
	{ErrUnsupportedPlatform, CodeUnsupportedPlatform},
	{ErrCrossVolume, CodeCrossVolume},
	{ErrNotFound, CodeNotFound},
	{ErrPermissionDenied, CodePermissionDenied},
}

// Classify attaches the matching taxonomy sentinel to a host error. The
// returned error's text is "<sentinel>: <original>", so the original description
// survives. Errors that already carry a sentinel are returned unchanged.
// Classify returns nil for a nil error.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if classified(err) {
		return err
	}
	switch {
	case isCrossVolume(err):
		return fmt.Errorf("%w: %w", ErrCrossVolume, err)
	case stderrors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case stderrors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

// GetCode returns the category of err. Unclassified errors report CodeIO.
func GetCode(err error) Code {
	for _, c := range codes {
		if stderrors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return CodeIO
}

func classified(err error) bool {
	if stderrors.Is(err, ErrIO) {
		return true
	}
	for _, c := range codes {
		if stderrors.Is(err, c.sentinel) {
			return true
		}
	}
	return false
}

// IsCrossVolume reports whether err was caused by a rename across storage volumes.
func IsCrossVolume(err error) bool {
	return stderrors.Is(err, ErrCrossVolume) || isCrossVolume(err)
}

func isCrossVolume(err error) bool {
	if err == nil {
		return false
	}
	if isCrossDeviceErrno(err) {
		return true
	}

	// Some hosts surface the condition only as text.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "cross-device") || strings.Contains(msg, "cross device") ||
		strings.Contains(msg, "not same device")
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is re-exports errors.Is so callers need a single import.
func Is(err, target error) bool { return stderrors.Is(err, target) }
