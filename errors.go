package recmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch        = "type_mismatch"
	CodeConstraintViolation = "constraint_violation"
	CodeUnknownUnit         = "unknown_unit"
	CodeSchemaMismatch      = "schema_mismatch"
	CodeConfiguration       = "configuration_error"
	CodeUnknownStyle        = "unknown_style"
)

// Sentinel errors matched by Issues.Is, one per issue code.
var (
	ErrTypeMismatch        = errors.New("recmodel: type mismatch")
	ErrConstraintViolation = errors.New("recmodel: constraint violation")
	ErrUnknownUnit         = errors.New("recmodel: unknown unit")
	ErrSchemaMismatch      = errors.New("recmodel: schema mismatch")
	ErrConfiguration       = errors.New("recmodel: configuration error")
	ErrUnknownStyle        = errors.New("recmodel: unknown style")
)

var sentinelByCode = map[string]error{
	CodeTypeMismatch:        ErrTypeMismatch,
	CodeConstraintViolation: ErrConstraintViolation,
	CodeUnknownUnit:         ErrUnknownUnit,
	CodeSchemaMismatch:      ErrSchemaMismatch,
	CodeConfiguration:       ErrConfiguration,
	CodeUnknownStyle:        ErrUnknownStyle,
}

// Issue represents a single failure.
type Issue struct {
	Path    string // Dotted model path (for example: demo.settings.intval).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"got":"z", "allowed":["a","b"]})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at settings.intval: expected int
		if it.Path != "" {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		} else {
			b.WriteString(it.Code)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue carries the code of target, so that
// errors.Is(err, ErrConstraintViolation) works on returned Issues.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the causes of the contained issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func singleIssue(path, code string, cause error, params map[string]any) Issues {
	return Issues{newIssue(path, code, cause, params)}
}
