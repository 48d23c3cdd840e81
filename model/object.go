package model

import "time"

// ObjectType is the value of the objectType discriminator.
type ObjectType string

const (
	ObjectTypeActivity     ObjectType = "Activity"
	ObjectTypeAgent        ObjectType = "Agent"
	ObjectTypeGroup        ObjectType = "Group"
	ObjectTypeSubStatement ObjectType = "SubStatement"
	ObjectTypeStatementRef ObjectType = "StatementRef"
)

// StatementObject is the polymorphic object slot of a statement. The set of
// implementations is closed: *Activity, *Agent, *Group, *SubStatement and
// *StatementReference.
type StatementObject interface {
	ObjectType() ObjectType
	isStatementObject()
}

// Activity is a thing an actor interacted with.
type Activity struct {
	ID         IRI
	Definition *Definition
}

func (*Activity) ObjectType() ObjectType { return ObjectTypeActivity }
func (*Activity) isStatementObject()     {}

// Definition describes an activity.
type Definition struct {
	Name        LanguageMap `json:"name"`
	Description LanguageMap `json:"description"`
	Type        IRI         `json:"type" validate:"omitempty,uri"`
	MoreInfo    IRL         `json:"moreInfo" validate:"omitempty,url"`
	Extensions  Extensions  `json:"extensions"`
}

// StatementReference points at another statement by id.
type StatementReference struct {
	StatementID StatementID
}

func (*StatementReference) ObjectType() ObjectType { return ObjectTypeStatementRef }
func (*StatementReference) isStatementObject()     {}

// SubStatement is a statement used as the object of another statement. Its
// Object is never a *SubStatement.
type SubStatement struct {
	Actor   Actor
	Verb    Verb
	Object  StatementObject
	Result  *Result
	Context *Context
	// Created is emitted in UTC, like Statement.Created.
	Created *time.Time
}

func (*SubStatement) ObjectType() ObjectType { return ObjectTypeSubStatement }
func (*SubStatement) isStatementObject()     {}
