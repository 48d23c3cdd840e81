package model

// Actor is an Agent or a Group.
type Actor interface {
	StatementObject
	isActor()
}

// Account identifies an actor by an account on an existing system.
type Account struct {
	HomePage IRL    `json:"homePage" validate:"required,url"`
	Name     string `json:"name" validate:"required"`
}

// InverseFunctionalIdentifier holds the identifying properties of an actor.
// An identified actor sets exactly one of them.
type InverseFunctionalIdentifier struct {
	Mbox        IRI      `json:"mbox" validate:"omitempty,startswith=mailto:"`
	MboxSHA1Sum string   `json:"mbox_sha1sum" validate:"omitempty,len=40,hexadecimal"`
	OpenID      IRI      `json:"openid" validate:"omitempty,uri"`
	Account     *Account `json:"account"`
}

// Count returns how many identifying properties are set.
func (i InverseFunctionalIdentifier) Count() int {
	n := 0
	if i.Mbox != "" {
		n++
	}
	if i.MboxSHA1Sum != "" {
		n++
	}
	if i.OpenID != "" {
		n++
	}
	if i.Account != nil {
		n++
	}
	return n
}

// Agent is an individual.
type Agent struct {
	Name string
	IFI  InverseFunctionalIdentifier
}

func (*Agent) ObjectType() ObjectType { return ObjectTypeAgent }
func (*Agent) isStatementObject()     {}
func (*Agent) isActor()               {}

// Group is an anonymous (no IFI) or identified collection of agents.
type Group struct {
	Name    string
	IFI     InverseFunctionalIdentifier
	Members []Agent
}

func (*Group) ObjectType() ObjectType { return ObjectTypeGroup }
func (*Group) isStatementObject()     {}
func (*Group) isActor()               {}
