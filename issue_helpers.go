package xapiskema

// IssueAt creates single-issue Issues at the given path. It is the usual way
// converters fail fast.
func IssueAt(p PathRef, code, hint string, kv ...any) Issues {
	return Issues{p.Issue(code, hint, kv...)}
}

// Required reports a missing mandatory field.
func Required(field string) Issues {
	return IssueAt(Root().Field(field), CodeRequired, field+" is missing", "field", field)
}

// InvalidType reports a value of the wrong primitive type.
func InvalidType(field, expected string) Issues {
	return IssueAt(Root().Field(field), CodeInvalidType, "expected "+expected, "field", field, "expected", expected)
}

// InvalidFormat reports a value whose type is right but whose format is not.
func InvalidFormat(field, format string, cause error) Issues {
	iss := IssueAt(Root().Field(field), CodeInvalidFormat, "expected "+format, "field", field, "format", format)
	iss[0].Cause = cause
	return iss
}

// InvalidProperty reports a key that is not allowed where it appears.
func InvalidProperty(field, hint string) Issues {
	return IssueAt(Root().Field(field), CodeInvalidProperty, hint, "field", field)
}
