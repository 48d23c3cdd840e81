package xapiskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. Each conversion failure carries exactly one of them.
const (
	CodeRequired             = "required"              // mandatory field absent or empty
	CodeInvalidProperty      = "invalid_property"      // disallowed key present
	CodeDiscriminatorUnknown = "discriminator_unknown" // objectType outside the recognized set
	CodeNestedSubStatement   = "nested_substatement"   // SubStatement inside a SubStatement
	CodeUnsupportedVersion   = "unsupported_version"
	CodeInvalidType          = "invalid_type"
	CodeInvalidFormat        = "invalid_format"
	CodeSemanticViolation    = "semantic_violation" // cross-field rule
	// Document layer
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer into the statement document (for example: /object/definition).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the offending field, allowed values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"success"}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
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
		// e.g. invalid_type at /result/success
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" && it.Message != it.Code {
			fmt.Fprintf(b, " (%s)", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As can see through Issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
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

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// FirstIssue returns the first issue carried by err. Non-Issues errors are
// reported as a parse_error at the document root.
func FirstIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		return iss[0], true
	}
	return Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}, true
}

// Rebase prefixes every issue path in err with the JSON Pointer base. Errors
// that are not Issues are wrapped as a parse_error located at base.
func Rebase(base string, err error) error {
	if err == nil {
		return nil
	}
	if base == "" || base == "/" {
		return err
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
