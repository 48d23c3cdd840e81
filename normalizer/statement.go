package normalizer

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

// statementProperties is the fixed set of keys a statement document may carry.
var statementProperties = map[string]struct{}{
	"id":          {},
	"actor":       {},
	"verb":        {},
	"object":      {},
	"result":      {},
	"context":     {},
	"timestamp":   {},
	"stored":      {},
	"authority":   {},
	"version":     {},
	"attachments": {},
}

// StatementProperties returns the keys allowed at the top level of a
// statement document, sorted.
func StatementProperties() []string {
	out := make([]string, 0, len(statementProperties))
	for k := range statementProperties {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var versionPattern = regexp.MustCompile(`^1\.0(?:\.\d+)?$`)

type statementConverter struct{}

func (statementConverter) Normalize(ctx context.Context, v any, ac xapiskema.AttributeConverter) (any, error) {
	st, ok := v.(*model.Statement)
	if !ok || st == nil {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected *model.Statement, got %T", v))
	}

	data := make(map[string]any, 11)
	var err error
	if data["actor"], err = xapiskema.NormalizeField(ctx, ac, "actor", st.Actor, xapiskema.KindActor); err != nil {
		return nil, err
	}
	if data["verb"], err = xapiskema.NormalizeField(ctx, ac, "verb", st.Verb, xapiskema.KindVerb); err != nil {
		return nil, err
	}
	if data["object"], err = xapiskema.NormalizeField(ctx, ac, "object", st.Object, xapiskema.KindObject); err != nil {
		return nil, err
	}

	if st.ID != nil {
		data["id"] = st.ID.String()
	}
	if st.Authority != nil {
		if data["authority"], err = xapiskema.NormalizeField(ctx, ac, "authority", st.Authority, xapiskema.KindActor); err != nil {
			return nil, err
		}
	}
	if st.Result != nil {
		if data["result"], err = xapiskema.NormalizeField(ctx, ac, "result", st.Result, xapiskema.KindResult); err != nil {
			return nil, err
		}
	}
	if st.Created != nil {
		if data["timestamp"], err = xapiskema.NormalizeField(ctx, ac, "timestamp", *st.Created, xapiskema.KindCreated); err != nil {
			return nil, err
		}
	}
	if st.Stored != nil {
		if data["stored"], err = xapiskema.NormalizeField(ctx, ac, "stored", *st.Stored, xapiskema.KindStored); err != nil {
			return nil, err
		}
	}
	if st.Context != nil {
		if data["context"], err = xapiskema.NormalizeField(ctx, ac, "context", st.Context, xapiskema.KindContext); err != nil {
			return nil, err
		}
	}
	if st.Attachments != nil {
		if data["attachments"], err = xapiskema.NormalizeField(ctx, ac, "attachments", st.Attachments, xapiskema.KindAttachments); err != nil {
			return nil, err
		}
	}
	if st.Version != "" {
		data["version"] = st.Version
	}
	return data, nil
}

func (statementConverter) Denormalize(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	if err := checkStatementProperties(data); err != nil {
		return nil, err
	}

	var version string
	if v, ok := isset(data, "version"); ok {
		s, _ := v.(string)
		if !versionPattern.MatchString(s) {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("version"), xapiskema.CodeUnsupportedVersion,
				fmt.Sprintf("statements at version %q are not supported", fmt.Sprint(v)), "version", fmt.Sprint(v))
		}
		version = s
	}

	var id *model.StatementID
	if v, ok := isset(data, "id"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, xapiskema.InvalidType("id", "string")
		}
		sid, err := model.ParseStatementID(s)
		if err != nil {
			return nil, xapiskema.InvalidFormat("id", "UUID", err)
		}
		id = &sid
	}

	for _, f := range []string{"actor", "verb", "object"} {
		if isEmpty(data[f]) {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field(f), xapiskema.CodeRequired, "statement "+f+" is missing", "field", f)
		}
	}

	actor, err := xapiskema.DenormalizeField[model.Actor](ctx, ac, "actor", data["actor"], xapiskema.KindActor)
	if err != nil {
		return nil, err
	}
	verb, err := xapiskema.DenormalizeField[model.Verb](ctx, ac, "verb", data["verb"], xapiskema.KindVerb)
	if err != nil {
		return nil, err
	}
	object, err := xapiskema.DenormalizeField[model.StatementObject](ctx, ac, "object", data["object"], xapiskema.KindObject)
	if err != nil {
		return nil, err
	}
	if err := checkVoidVerb(verb, object); err != nil {
		return nil, err
	}

	st := &model.Statement{ID: id, Actor: actor, Verb: verb, Object: object, Version: version}

	if v, ok := isset(data, "result"); ok {
		if st.Result, err = xapiskema.DenormalizeField[*model.Result](ctx, ac, "result", v, xapiskema.KindResult); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "authority"); ok {
		if st.Authority, err = xapiskema.DenormalizeField[model.Actor](ctx, ac, "authority", v, xapiskema.KindActor); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "timestamp"); ok {
		t, err := xapiskema.DenormalizeField[time.Time](ctx, ac, "timestamp", v, xapiskema.KindCreated)
		if err != nil {
			return nil, err
		}
		st.Created = &t
	}
	if v, ok := isset(data, "stored"); ok {
		t, err := xapiskema.DenormalizeField[time.Time](ctx, ac, "stored", v, xapiskema.KindStored)
		if err != nil {
			return nil, err
		}
		st.Stored = &t
	}
	if v, ok := isset(data, "context"); ok {
		if err := checkContextGating(v, object); err != nil {
			return nil, err
		}
		if st.Context, err = xapiskema.DenormalizeField[*model.Context](ctx, ac, "context", v, xapiskema.KindContext); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "attachments"); ok {
		if err := checkAttachments(v); err != nil {
			return nil, err
		}
		if st.Attachments, err = xapiskema.DenormalizeField[[]model.Attachment](ctx, ac, "attachments", v, xapiskema.KindAttachments); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// checkStatementProperties rejects the first key (in sorted order) that is
// not a statement property.
func checkStatementProperties(data map[string]any) error {
	var unknown []string
	for k := range data {
		if _, ok := statementProperties[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return xapiskema.InvalidProperty(unknown[0], "some statement properties are not valid")
}

func checkVoidVerb(verb model.Verb, object model.StatementObject) error {
	if !verb.IsVoidVerb() {
		return nil
	}
	if _, ok := object.(*model.StatementReference); ok {
		return nil
	}
	return xapiskema.IssueAt(xapiskema.Root().Field("object"), xapiskema.CodeSemanticViolation,
		"statement verb voided does not use object \"StatementRef\"", "verb", string(verb.ID), "objectType", string(object.ObjectType()))
}

// checkContextGating rejects context.revision and context.platform unless the
// owning object is an Activity. A context that is not a record is left to the
// context converter to report.
func checkContextGating(raw any, object model.StatementObject) error {
	if _, ok := object.(*model.Activity); ok {
		return nil
	}
	data, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	for _, f := range []string{"revision", "platform"} {
		if _, set := isset(data, f); set {
			return xapiskema.IssueAt(xapiskema.Root().Field("context").Field(f), xapiskema.CodeInvalidProperty,
				fmt.Sprintf("the %q property is not valid with the object type %s", f, object.ObjectType()),
				"field", f, "objectType", string(object.ObjectType()))
		}
	}
	return nil
}

// checkAttachments requires a non-empty list whose first element is a
// non-empty record.
func checkAttachments(raw any) error {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return xapiskema.IssueAt(xapiskema.Root().Field("attachments"), xapiskema.CodeInvalidType,
			"statement attachments are not valid", "field", "attachments", "expected", "non-empty array")
	}
	if first, ok := list[0].(map[string]any); !ok || len(first) == 0 {
		return xapiskema.IssueAt(xapiskema.Root().Field("attachments").Index(0), xapiskema.CodeInvalidType,
			"statement attachments are not valid", "field", "attachments", "expected", "object")
	}
	return nil
}
