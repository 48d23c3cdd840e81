package xapiskema

// NumberMode dictates how numbers are interpreted.
type NumberMode int

const (
	NumberFloat64    NumberMode = iota // Fast mode (with potential precision loss).
	NumberJSONNumber                   // Preserve json.Number.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ReadOpt bundles document reading options.
type ReadOpt struct {
	// OnDuplicateKey controls duplicate JSON keys. The zero value rejects
	// them: a statement with two "object" keys has no single meaning.
	OnDuplicateKey DuplicatePolicy
	MaxDepth       int
	MaxBytes       int64
	// Warnings receives non-fatal issues (e.g. duplicate keys under
	// DuplicateWarn). May be nil.
	Warnings func(Issue)
}

// DuplicatePolicy maps onto Severity but defaults to rejecting duplicates.
type DuplicatePolicy int

const (
	DuplicateReject DuplicatePolicy = iota
	DuplicateWarn
	DuplicateIgnore
)

func (p DuplicatePolicy) severity() Severity {
	switch p {
	case DuplicateWarn:
		return Warn
	case DuplicateIgnore:
		return Ignore
	default:
		return Error
	}
}
