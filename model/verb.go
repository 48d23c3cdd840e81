package model

// VoidVerbID is the IRI of the verb that voids a previous statement.
const VoidVerbID IRI = "http://adlnet.gov/expapi/verbs/voided"

// Verb is the action of a statement.
type Verb struct {
	ID      IRI         `json:"id" validate:"required,uri"`
	Display LanguageMap `json:"display"`
}

// IsVoidVerb reports whether v voids another statement.
func (v Verb) IsVoidVerb() bool { return v.ID == VoidVerbID }
