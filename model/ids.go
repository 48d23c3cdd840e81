package model

import (
	"github.com/google/uuid"
)

// IRI is an internationalized resource identifier.
type IRI string

// IRL is an internationalized resource locator.
type IRL string

// LanguageMap maps RFC 5646 language tags to strings.
type LanguageMap map[string]string

// StatementID identifies a statement.
type StatementID uuid.UUID

// ParseStatementID parses the textual UUID form of a statement id.
func ParseStatementID(s string) (StatementID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return StatementID{}, err
	}
	return StatementID(u), nil
}

// MustParseStatementID is ParseStatementID that panics on error. Intended for
// tests and constants.
func MustParseStatementID(s string) StatementID { return StatementID(uuid.MustParse(s)) }

// NewStatementID returns a random (version 4) statement id.
func NewStatementID() StatementID { return StatementID(uuid.New()) }

// String returns the canonical lowercase UUID form.
func (id StatementID) String() string { return uuid.UUID(id).String() }
