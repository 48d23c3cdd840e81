package model

// Extensions maps IRIs to arbitrary values. A nil map means absent; an empty
// non-nil map is an explicitly empty extensions record.
type Extensions map[IRI]any
