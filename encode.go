package xapiskema

import (
	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	json "github.com/goccy/go-json"
)

// MarshalDocument renders a raw document as JSON.
func MarshalDocument(doc any) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return b, nil
}

// CanonicalDocument renders a raw document in RFC 8785 canonical form, so
// equal documents produce identical bytes regardless of key order or number
// spelling.
func CanonicalDocument(doc any) ([]byte, error) {
	b, err := MarshalDocument(doc)
	if err != nil {
		return nil, err
	}
	c, err := jsoncanonicalizer.Transform(b)
	if err != nil {
		return nil, singleIssue(CodeParseError, err.Error())
	}
	return c, nil
}
