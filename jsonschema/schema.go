// Package jsonschema exports a JSON Schema of the statement wire document.
//
// The schema describes shape only: property names, primitive types, the
// objectType discriminator and the version pattern. Cross-field rules such as
// context gating or the void verb are enforced by package normalizer.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// statementDoc mirrors the top-level property whitelist.
type statementDoc struct {
	ID          string          `json:"id,omitempty" jsonschema:"format=uuid"`
	Actor       actorDoc        `json:"actor"`
	Verb        verbDoc         `json:"verb"`
	Object      objectDoc       `json:"object"`
	Result      *resultDoc      `json:"result,omitempty"`
	Context     *contextDoc     `json:"context,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty" jsonschema:"format=date-time"`
	Stored      string          `json:"stored,omitempty" jsonschema:"format=date-time"`
	Authority   *actorDoc       `json:"authority,omitempty"`
	Version     string          `json:"version,omitempty" jsonschema:"pattern=^1\\.0(\\.[0-9]+)?$"`
	Attachments []attachmentDoc `json:"attachments,omitempty" jsonschema:"minItems=1"`
}

type accountDoc struct {
	HomePage string `json:"homePage" jsonschema:"format=uri"`
	Name     string `json:"name"`
}

type agentDoc struct {
	ObjectType  string      `json:"objectType,omitempty" jsonschema:"enum=Agent"`
	Name        string      `json:"name,omitempty"`
	Mbox        string      `json:"mbox,omitempty" jsonschema:"pattern=^mailto:"`
	MboxSHA1Sum string      `json:"mbox_sha1sum,omitempty" jsonschema:"pattern=^[0-9a-fA-F]{40}$"`
	OpenID      string      `json:"openid,omitempty" jsonschema:"format=uri"`
	Account     *accountDoc `json:"account,omitempty"`
}

type groupDoc struct {
	ObjectType  string      `json:"objectType" jsonschema:"enum=Group"`
	Name        string      `json:"name,omitempty"`
	Mbox        string      `json:"mbox,omitempty" jsonschema:"pattern=^mailto:"`
	MboxSHA1Sum string      `json:"mbox_sha1sum,omitempty" jsonschema:"pattern=^[0-9a-fA-F]{40}$"`
	OpenID      string      `json:"openid,omitempty" jsonschema:"format=uri"`
	Account     *accountDoc `json:"account,omitempty"`
	Member      []agentDoc  `json:"member,omitempty"`
}

// actorDoc is an Agent or a Group.
type actorDoc struct{}

func (actorDoc) JSONSchema() *jsonschema.Schema {
	return oneOf(agentDoc{}, groupDoc{})
}

type languageMap map[string]string

type verbDoc struct {
	ID      string      `json:"id" jsonschema:"format=uri"`
	Display languageMap `json:"display,omitempty"`
}

type definitionDoc struct {
	Name        languageMap    `json:"name,omitempty"`
	Description languageMap    `json:"description,omitempty"`
	Type        string         `json:"type,omitempty" jsonschema:"format=uri"`
	MoreInfo    string         `json:"moreInfo,omitempty" jsonschema:"format=uri"`
	Extensions  map[string]any `json:"extensions,omitempty"`
}

type activityDoc struct {
	ObjectType string         `json:"objectType,omitempty" jsonschema:"enum=Activity"`
	ID         string         `json:"id" jsonschema:"format=uri"`
	Definition *definitionDoc `json:"definition,omitempty"`
}

type statementRefDoc struct {
	ObjectType string `json:"objectType" jsonschema:"enum=StatementRef"`
	ID         string `json:"id" jsonschema:"format=uuid"`
}

// subStatementObjectDoc is every object variant except SubStatement.
type subStatementObjectDoc struct{}

func (subStatementObjectDoc) JSONSchema() *jsonschema.Schema {
	return oneOf(activityDoc{}, agentDoc{}, groupDoc{}, statementRefDoc{})
}

type subStatementDoc struct {
	ObjectType string                `json:"objectType" jsonschema:"enum=SubStatement"`
	Actor      actorDoc              `json:"actor"`
	Verb       verbDoc               `json:"verb"`
	Object     subStatementObjectDoc `json:"object"`
	Result     *resultDoc            `json:"result,omitempty"`
	Context    *contextDoc           `json:"context,omitempty"`
	Timestamp  string                `json:"timestamp,omitempty" jsonschema:"format=date-time"`
}

// objectDoc is the polymorphic object slot.
type objectDoc struct{}

func (objectDoc) JSONSchema() *jsonschema.Schema {
	return oneOf(activityDoc{}, agentDoc{}, groupDoc{}, subStatementDoc{}, statementRefDoc{})
}

type scoreDoc struct {
	Scaled *float64 `json:"scaled,omitempty" jsonschema:"minimum=-1,maximum=1"`
	Raw    *float64 `json:"raw,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

type resultDoc struct {
	Score      *scoreDoc      `json:"score,omitempty"`
	Success    *bool          `json:"success,omitempty"`
	Completion *bool          `json:"completion,omitempty"`
	Response   *string        `json:"response,omitempty"`
	Duration   *string        `json:"duration,omitempty" jsonschema:"pattern=^P"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type contextActivitiesDoc struct {
	Parent   []activityDoc `json:"parent,omitempty"`
	Grouping []activityDoc `json:"grouping,omitempty"`
	Category []activityDoc `json:"category,omitempty"`
	Other    []activityDoc `json:"other,omitempty"`
}

type contextDoc struct {
	Registration      string                `json:"registration,omitempty" jsonschema:"format=uuid"`
	Instructor        *actorDoc             `json:"instructor,omitempty"`
	Team              *groupDoc             `json:"team,omitempty"`
	ContextActivities *contextActivitiesDoc `json:"contextActivities,omitempty"`
	Revision          string                `json:"revision,omitempty"`
	Platform          string                `json:"platform,omitempty"`
	Language          string                `json:"language,omitempty"`
	Statement         *statementRefDoc      `json:"statement,omitempty"`
	Extensions        map[string]any        `json:"extensions,omitempty"`
}

type attachmentDoc struct {
	UsageType   string      `json:"usageType" jsonschema:"format=uri"`
	Display     languageMap `json:"display"`
	Description languageMap `json:"description,omitempty"`
	ContentType string      `json:"contentType"`
	Length      int64       `json:"length" jsonschema:"minimum=0"`
	SHA2        string      `json:"sha2" jsonschema:"pattern=^[0-9a-fA-F]+$"`
	FileURL     string      `json:"fileUrl,omitempty" jsonschema:"format=uri"`
}

func inline() *jsonschema.Reflector {
	return &jsonschema.Reflector{DoNotReference: true, Anonymous: true}
}

func oneOf(variants ...any) *jsonschema.Schema {
	r := inline()
	s := &jsonschema.Schema{}
	for _, v := range variants {
		vs := r.ReflectFromType(reflect.TypeOf(v))
		vs.Version = ""
		s.OneOf = append(s.OneOf, vs)
	}
	return s
}

// Statement returns the schema of a statement document.
func Statement() *jsonschema.Schema {
	r := inline()
	s := r.Reflect(statementDoc{})
	s.Title = "xAPI Statement"
	return s
}

// StatementJSON renders Statement as indented JSON.
func StatementJSON() ([]byte, error) {
	b, err := json.MarshalIndent(Statement(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal statement schema: %w", err)
	}
	return b, nil
}
