// internal/core/domain/scan.go
package domain

import "fmt"

// ScanKind classifies receipt scanning failures.
type ScanKind string

const (
	ScanNotFound          ScanKind = "not_found"
	ScanUnsupportedFormat ScanKind = "unsupported_format"
	ScanTooLarge          ScanKind = "too_large"
	ScanServiceError      ScanKind = "service_error"
	ScanParseError        ScanKind = "parse_error"
)

// ScanError is returned by receipt scanners. The scanner is an untrusted
// producer; even a successful scan's batch goes through ValidateBatch before
// it can touch stored state.
type ScanError struct {
	Kind ScanKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scan %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("scan %s: %s", e.Path, e.Kind)
}

func (e *ScanError) Unwrap() error { return e.Err }
