package model

import "time"

// Statement is an actor performing a verb on an object, with optional
// result, context and metadata.
type Statement struct {
	ID          *StatementID
	Actor       Actor
	Verb        Verb
	Object      StatementObject
	Result      *Result
	Authority   Actor
	// Created and Stored keep the instant, not the zone: normalized
	// documents carry them in UTC, so a round trip yields the same instant
	// with Location() == time.UTC.
	Created     *time.Time
	Stored      *time.Time
	Context     *Context
	Attachments []Attachment
	// Version is empty when absent.
	Version string
}
