package normalizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
	"github.com/reoring/xapiskema/normalizer"
)

const meetingJSON = `{
  "id": "6690e6c9-3ef0-4ed3-8b37-7f3964730bee",
  "actor": {"objectType": "Agent", "name": "Team PB", "mbox": "mailto:teampb@example.com"},
  "verb": {"id": "http://adlnet.gov/expapi/verbs/attended", "display": {"en-US": "attended"}},
  "object": {
    "objectType": "Activity",
    "id": "http://www.example.com/meetings/occurances/34534",
    "definition": {
      "name": {"en-US": "example meeting"},
      "type": "http://adlnet.gov/expapi/activities/meeting"
    }
  },
  "result": {
    "success": true,
    "completion": true,
    "response": "We agreed on some example actions.",
    "duration": "PT1H0M0S",
    "score": {"scaled": 0.5, "raw": 50, "min": 0, "max": 100}
  },
  "context": {
    "registration": "ec531277-b57b-4c15-8d91-d292c5b2b8f7",
    "platform": "Example virtual meeting software",
    "language": "en-US",
    "revision": "1.0",
    "contextActivities": {"parent": {"id": "http://www.example.com/meetings/series/267"}},
    "extensions": {"http://example.com/profiles/meetings/extension/location": "room 4"}
  },
  "timestamp": "2013-05-18T05:32:34.804Z",
  "version": "1.0.0"
}`

const meetingYAML = `
version: 1.0.0
timestamp: "2013-05-18T05:32:34.804Z"
id: 6690e6c9-3ef0-4ed3-8b37-7f3964730bee
actor:
  objectType: Agent
  name: Team PB
  mbox: mailto:teampb@example.com
verb:
  id: http://adlnet.gov/expapi/verbs/attended
  display:
    en-US: attended
object:
  objectType: Activity
  id: http://www.example.com/meetings/occurances/34534
  definition:
    name:
      en-US: example meeting
    type: http://adlnet.gov/expapi/activities/meeting
result:
  success: true
  completion: true
  response: We agreed on some example actions.
  duration: PT1H0M0S
  score:
    scaled: 0.5
    raw: 50
    min: 0
    max: 100
context:
  registration: ec531277-b57b-4c15-8d91-d292c5b2b8f7
  platform: Example virtual meeting software
  language: en-US
  revision: "1.0"
  contextActivities:
    parent:
      id: http://www.example.com/meetings/series/267
  extensions:
    http://example.com/profiles/meetings/extension/location: room 4
`

func ptr[T any](v T) *T { return &v }

func agent(name, mbox string) *model.Agent {
	return &model.Agent{Name: name, IFI: model.InverseFunctionalIdentifier{Mbox: model.IRI(mbox)}}
}

func activity(id string) *model.Activity { return &model.Activity{ID: model.IRI(id)} }

func verb(id string) model.Verb {
	return model.Verb{ID: model.IRI(id), Display: model.LanguageMap{"en-US": "did"}}
}

// fullStatement sets every optional field of a statement.
func fullStatement() *model.Statement {
	id := model.MustParseStatementID("12345678-1234-5678-8234-567812345678")
	reg := uuid.MustParse("ec531277-b57b-4c15-8d91-d292c5b2b8f7")
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	stored := time.Date(2024, 3, 1, 10, 30, 1, 500000000, time.UTC)
	return &model.Statement{
		ID:    &id,
		Actor: agent("Alice", "mailto:alice@example.com"),
		Verb:  verb("http://adlnet.gov/expapi/verbs/completed"),
		Object: &model.Activity{
			ID: "http://example.com/courses/go",
			Definition: &model.Definition{
				Name:        model.LanguageMap{"en-US": "Go"},
				Description: model.LanguageMap{"en-US": "Learning Go"},
				Type:        "http://adlnet.gov/expapi/activities/course",
				MoreInfo:    "https://example.com/go",
				Extensions:  model.Extensions{"http://example.com/ext/level": "advanced"},
			},
		},
		Result: &model.Result{
			Score:      &model.Score{Scaled: ptr(0.9), Raw: ptr(90.0), Min: ptr(0.0), Max: ptr(100.0)},
			Success:    ptr(true),
			Completion: ptr(false),
			Response:   ptr("done"),
			Duration:   ptr("PT1M30.5S"),
			Extensions: model.Extensions{"http://example.com/ext/attempts": 3.0},
		},
		Authority: &model.Agent{IFI: model.InverseFunctionalIdentifier{Account: &model.Account{HomePage: "https://lrs.example.com", Name: "client"}}},
		Created:   &created,
		Stored:    &stored,
		Context: &model.Context{
			Registration: &reg,
			Instructor:   agent("Bob", "mailto:bob@example.com"),
			Team: &model.Group{
				Name:    "Gophers",
				Members: []model.Agent{*agent("Carol", "mailto:carol@example.com")},
			},
			ContextActivities: &model.ContextActivities{
				Parent:   []model.Activity{*activity("http://example.com/programs/backend")},
				Category: []model.Activity{*activity("http://example.com/profiles/course")},
			},
			Revision:   "2",
			Platform:   "web",
			Language:   "en-US",
			Statement:  &model.StatementReference{StatementID: model.MustParseStatementID("aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee")},
			Extensions: model.Extensions{"http://example.com/ext/cohort": "2024"},
		},
		Attachments: []model.Attachment{{
			UsageType:   "http://adlnet.gov/expapi/attachments/signature",
			Display:     model.LanguageMap{"en-US": "signature"},
			Description: model.LanguageMap{"en-US": "signed by alice"},
			ContentType: "application/octet-stream",
			Length:      4235,
			SHA2:        "672fa5fa658017f1b72d65036f13379c6ab05d4ab3b6664908d8acf0b6a0c634",
			FileURL:     "https://example.com/sig.bin",
		}},
		Version: "1.0.3",
	}
}

// minimalStatement sets only the mandatory fields.
func minimalStatement() *model.Statement {
	return &model.Statement{
		Actor:  agent("", "mailto:alice@example.com"),
		Verb:   model.Verb{ID: "http://adlnet.gov/expapi/verbs/experienced"},
		Object: activity("http://example.com/activities/a"),
	}
}

// baseDoc returns a small valid raw statement to be modified by tests.
func baseDoc() map[string]any {
	return map[string]any{
		"actor":  map[string]any{"mbox": "mailto:alice@example.com"},
		"verb":   map[string]any{"id": "http://adlnet.gov/expapi/verbs/experienced"},
		"object": map[string]any{"id": "http://example.com/activities/a"},
	}
}

func denormalize(t *testing.T, doc map[string]any) (*model.Statement, error) {
	t.Helper()
	return normalizer.New().DenormalizeStatement(context.Background(), doc)
}

// requireIssue asserts that err carries exactly one issue with the given code
// and path.
func requireIssue(t *testing.T, err error, code, path string) xapiskema.Issue {
	t.Helper()
	require.Error(t, err)
	iss, ok := xapiskema.AsIssues(err)
	require.True(t, ok, "error is not Issues: %v", err)
	require.Len(t, iss, 1, "%v", iss)
	require.Equal(t, code, iss[0].Code, "%v", iss)
	require.Equal(t, path, iss[0].Path, "%v", iss)
	return iss[0]
}
