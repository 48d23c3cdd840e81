package normalizer

import (
	"context"
	"fmt"
	"time"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

// objectTypes lists the accepted discriminator values, in the order they are
// reported when an unknown one is seen.
var objectTypes = []model.ObjectType{
	model.ObjectTypeActivity,
	model.ObjectTypeAgent,
	model.ObjectTypeGroup,
	model.ObjectTypeSubStatement,
	model.ObjectTypeStatementRef,
}

// subStatementForbidden are statement properties a sub-statement must not carry.
var subStatementForbidden = []string{"id", "stored", "version", "authority"}

type objectConverter struct{}

func (objectConverter) Normalize(ctx context.Context, v any, ac xapiskema.AttributeConverter) (any, error) {
	switch o := v.(type) {
	case *model.Activity:
		data := map[string]any{
			"objectType": string(model.ObjectTypeActivity),
			"id":         string(o.ID),
		}
		if o.Definition != nil {
			def, err := xapiskema.NormalizeField(ctx, ac, "definition", o.Definition, xapiskema.KindDefinition)
			if err != nil {
				return nil, err
			}
			data["definition"] = def
		}
		return data, nil
	case *model.Agent, *model.Group:
		return ac.NormalizeAttribute(ctx, v, xapiskema.KindActor)
	case *model.StatementReference:
		return map[string]any{
			"objectType": string(model.ObjectTypeStatementRef),
			"id":         o.StatementID.String(),
		}, nil
	case *model.SubStatement:
		return normalizeSubStatement(ctx, o, ac)
	default:
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("unsupported statement object %T", v))
	}
}

func normalizeSubStatement(ctx context.Context, s *model.SubStatement, ac xapiskema.AttributeConverter) (map[string]any, error) {
	data := map[string]any{"objectType": string(model.ObjectTypeSubStatement)}
	var err error
	if data["actor"], err = xapiskema.NormalizeField(ctx, ac, "actor", s.Actor, xapiskema.KindActor); err != nil {
		return nil, err
	}
	if data["verb"], err = xapiskema.NormalizeField(ctx, ac, "verb", s.Verb, xapiskema.KindVerb); err != nil {
		return nil, err
	}
	if data["object"], err = xapiskema.NormalizeField(ctx, ac, "object", s.Object, xapiskema.KindObject); err != nil {
		return nil, err
	}
	if s.Result != nil {
		if data["result"], err = xapiskema.NormalizeField(ctx, ac, "result", s.Result, xapiskema.KindResult); err != nil {
			return nil, err
		}
	}
	if s.Context != nil {
		if data["context"], err = xapiskema.NormalizeField(ctx, ac, "context", s.Context, xapiskema.KindContext); err != nil {
			return nil, err
		}
	}
	if s.Created != nil {
		if data["timestamp"], err = xapiskema.NormalizeField(ctx, ac, "timestamp", *s.Created, xapiskema.KindCreated); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (objectConverter) Denormalize(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}

	discriminator := model.ObjectTypeActivity
	if v, ok := isset(data, "objectType"); ok {
		s, ok := v.(string)
		if !ok || !knownObjectType(model.ObjectType(s)) {
			return nil, unknownObjectType(v)
		}
		discriminator = model.ObjectType(s)
	}

	switch discriminator {
	case model.ObjectTypeAgent, model.ObjectTypeGroup:
		return xapiskema.Denormalize[model.Actor](ctx, ac, data, xapiskema.KindActor)
	case model.ObjectTypeSubStatement:
		return denormalizeSubStatement(ctx, data, ac)
	case model.ObjectTypeStatementRef:
		return denormalizeStatementRef(data)
	default:
		return denormalizeActivity(ctx, data, ac)
	}
}

func knownObjectType(t model.ObjectType) bool {
	for _, known := range objectTypes {
		if t == known {
			return true
		}
	}
	return false
}

func unknownObjectType(v any) error {
	allowed := make([]string, len(objectTypes))
	for i, t := range objectTypes {
		allowed[i] = string(t)
	}
	return xapiskema.IssueAt(xapiskema.Root().Field("objectType"), xapiskema.CodeDiscriminatorUnknown,
		fmt.Sprintf("the object is not an Activity, Agent/Group, SubStatement or StatementRef (got %v)", v),
		"objectType", fmt.Sprint(v), "allowed", allowed)
}

func denormalizeActivity(ctx context.Context, data map[string]any, ac xapiskema.AttributeConverter) (*model.Activity, error) {
	if isEmpty(data["id"]) {
		return nil, xapiskema.IssueAt(xapiskema.Root().Field("id"), xapiskema.CodeRequired, "activity has no id", "field", "id")
	}
	id, ok := data["id"].(string)
	if !ok {
		return nil, xapiskema.InvalidType("id", "string")
	}
	if err := validateVar("id", id, "uri"); err != nil {
		return nil, err
	}
	a := &model.Activity{ID: model.IRI(id)}
	if v, ok := isset(data, "definition"); ok {
		def, err := xapiskema.DenormalizeField[*model.Definition](ctx, ac, "definition", v, xapiskema.KindDefinition)
		if err != nil {
			return nil, err
		}
		a.Definition = def
	}
	return a, nil
}

func denormalizeStatementRef(data map[string]any) (*model.StatementReference, error) {
	s, ok := data["id"].(string)
	if !ok {
		return nil, xapiskema.InvalidType("id", "string")
	}
	id, err := model.ParseStatementID(s)
	if err != nil {
		return nil, xapiskema.InvalidFormat("id", "UUID", err)
	}
	return &model.StatementReference{StatementID: id}, nil
}

func denormalizeSubStatement(ctx context.Context, data map[string]any, ac xapiskema.AttributeConverter) (*model.SubStatement, error) {
	if nested, ok := data["object"].(map[string]any); ok {
		if t, _ := nested["objectType"].(string); t == string(model.ObjectTypeSubStatement) {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("object").Field("objectType"), xapiskema.CodeNestedSubStatement,
				"a sub-statement cannot have a sub-statement as its object")
		}
	}
	for _, f := range subStatementForbidden {
		if _, set := isset(data, f); set {
			return nil, xapiskema.InvalidProperty(f, fmt.Sprintf("a sub-statement cannot use the %q property", f))
		}
	}
	if isEmpty(data["object"]) {
		return nil, xapiskema.IssueAt(xapiskema.Root().Field("object"), xapiskema.CodeRequired, "a sub-statement requires an object", "field", "object")
	}
	for _, f := range []string{"actor", "verb"} {
		if isEmpty(data[f]) {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field(f), xapiskema.CodeRequired, "sub-statement "+f+" is missing", "field", f)
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

	s := &model.SubStatement{Actor: actor, Verb: verb, Object: object}
	if v, ok := isset(data, "result"); ok {
		if s.Result, err = xapiskema.DenormalizeField[*model.Result](ctx, ac, "result", v, xapiskema.KindResult); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "context"); ok {
		if err := checkContextGating(v, object); err != nil {
			return nil, err
		}
		if s.Context, err = xapiskema.DenormalizeField[*model.Context](ctx, ac, "context", v, xapiskema.KindContext); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "timestamp"); ok {
		t, err := xapiskema.DenormalizeField[time.Time](ctx, ac, "timestamp", v, xapiskema.KindCreated)
		if err != nil {
			return nil, err
		}
		s.Created = &t
	}
	return s, nil
}
