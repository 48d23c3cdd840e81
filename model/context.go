package model

import "github.com/google/uuid"

// Context gives a statement (or sub-statement) its surroundings. Revision and
// Platform are only legal when the owning object is an Activity.
type Context struct {
	Registration      *uuid.UUID
	Instructor        Actor
	Team              *Group
	ContextActivities *ContextActivities
	Revision          string
	Platform          string
	Language          string
	Statement         *StatementReference
	Extensions        Extensions
}

// ContextActivities groups activities related to the statement.
type ContextActivities struct {
	Parent   []Activity
	Grouping []Activity
	Category []Activity
	Other    []Activity
}
