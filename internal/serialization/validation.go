package serialization

import (
	"fmt"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxEntryCount = 10_000_000       // Maximum parameters + optimizer entries
	MaxNameLength = 1024             // Maximum entry name length
)

// ValidateName checks an entry name for malicious patterns.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Type: "invalid_name", Details: "empty name"}
	}
	if len(name) > MaxNameLength {
		return &ValidationError{
			Type:    "name_too_long",
			Name:    name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxNameLength),
		}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		return &ValidationError{
			Type:    "invalid_name",
			Name:    name,
			Details: "contains path traversal or separator",
		}
	}
	if strings.Contains(name, "\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Name:    name,
			Details: "contains null byte",
		}
	}
	return nil
}

// ValidateHeader checks entry names and counts against the data section size.
func ValidateHeader(h *Header, dataSize uint64) error {
	if h.FormatVersion != FormatVersion {
		return &ValidationError{
			Type:    "version_mismatch",
			Details: fmt.Sprintf("header declares version %d, want %d", h.FormatVersion, FormatVersion),
		}
	}

	count := len(h.Parameters) + len(h.Optimizer)
	if count > MaxEntryCount {
		return &ValidationError{
			Type:    "too_many_entries",
			Details: fmt.Sprintf("got %d, max %d", count, MaxEntryCount),
		}
	}
	if uint64(count)*ValueSize != dataSize {
		return &ValidationError{
			Type:    "size_mismatch",
			Details: fmt.Sprintf("%d entries need %d bytes, data section has %d", count, count*ValueSize, dataSize),
		}
	}

	for _, names := range [][]string{h.Parameters, h.Optimizer} {
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if err := ValidateName(name); err != nil {
				return err
			}
			if _, dup := seen[name]; dup {
				return &ValidationError{Type: "duplicate_name", Name: name, Details: "listed twice"}
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}
