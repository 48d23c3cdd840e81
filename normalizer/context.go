package normalizer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type contextConverter struct{}

func (contextConverter) Normalize(ctx context.Context, v any, ac xapiskema.AttributeConverter) (any, error) {
	c, ok := v.(*model.Context)
	if !ok || c == nil {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected *model.Context, got %T", v))
	}
	data := map[string]any{}
	var err error
	if c.Registration != nil {
		data["registration"] = c.Registration.String()
	}
	if c.Instructor != nil {
		if data["instructor"], err = xapiskema.NormalizeField(ctx, ac, "instructor", c.Instructor, xapiskema.KindActor); err != nil {
			return nil, err
		}
	}
	if c.Team != nil {
		if data["team"], err = xapiskema.NormalizeField(ctx, ac, "team", c.Team, xapiskema.KindActor); err != nil {
			return nil, err
		}
	}
	if c.ContextActivities != nil {
		if data["contextActivities"], err = normalizeContextActivities(ctx, c.ContextActivities, ac); err != nil {
			return nil, xapiskema.Rebase("/contextActivities", err)
		}
	}
	if c.Revision != "" {
		data["revision"] = c.Revision
	}
	if c.Platform != "" {
		data["platform"] = c.Platform
	}
	if c.Language != "" {
		data["language"] = c.Language
	}
	if c.Statement != nil {
		if data["statement"], err = xapiskema.NormalizeField(ctx, ac, "statement", c.Statement, xapiskema.KindObject); err != nil {
			return nil, err
		}
	}
	if c.Extensions != nil {
		if data["extensions"], err = xapiskema.NormalizeField(ctx, ac, "extensions", c.Extensions, xapiskema.KindExtensions); err != nil {
			return nil, err
		}
	}
	return data, nil
}

type activityList struct {
	key  string
	list *[]model.Activity
}

func contextActivityLists(ca *model.ContextActivities) []activityList {
	return []activityList{
		{"parent", &ca.Parent},
		{"grouping", &ca.Grouping},
		{"category", &ca.Category},
		{"other", &ca.Other},
	}
}

func normalizeContextActivities(ctx context.Context, ca *model.ContextActivities, ac xapiskema.AttributeConverter) (map[string]any, error) {
	data := map[string]any{}
	for _, l := range contextActivityLists(ca) {
		if *l.list == nil {
			continue
		}
		out := make([]any, len(*l.list))
		for i := range *l.list {
			raw, err := ac.NormalizeAttribute(ctx, &(*l.list)[i], xapiskema.KindObject)
			if err != nil {
				return nil, rebaseIndex(l.key, i, err)
			}
			out[i] = raw
		}
		data[l.key] = out
	}
	return data, nil
}

func (contextConverter) Denormalize(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	c := &model.Context{}

	if v, ok := isset(data, "registration"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, xapiskema.InvalidType("registration", "string")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, xapiskema.InvalidFormat("registration", "UUID", err)
		}
		c.Registration = &id
	}
	if v, ok := isset(data, "instructor"); ok {
		if c.Instructor, err = xapiskema.DenormalizeField[model.Actor](ctx, ac, "instructor", v, xapiskema.KindActor); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "team"); ok {
		team, err := xapiskema.DenormalizeField[model.Actor](ctx, ac, "team", v, xapiskema.KindActor)
		if err != nil {
			return nil, err
		}
		g, ok := team.(*model.Group)
		if !ok {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("team"), xapiskema.CodeInvalidType, "context team must be a Group", "field", "team", "expected", "Group")
		}
		c.Team = g
	}
	if v, ok := isset(data, "contextActivities"); ok {
		if c.ContextActivities, err = denormalizeContextActivities(ctx, v, ac); err != nil {
			return nil, xapiskema.Rebase("/contextActivities", err)
		}
	}
	if c.Revision, err = optionalString(data, "revision"); err != nil {
		return nil, err
	}
	if c.Platform, err = optionalString(data, "platform"); err != nil {
		return nil, err
	}
	if c.Language, err = optionalString(data, "language"); err != nil {
		return nil, err
	}
	if c.Language != "" {
		if err := validateVar("language", c.Language, "bcp47_language_tag"); err != nil {
			return nil, err
		}
	}
	if v, ok := isset(data, "statement"); ok {
		obj, err := xapiskema.DenormalizeField[model.StatementObject](ctx, ac, "statement", v, xapiskema.KindObject)
		if err != nil {
			return nil, err
		}
		ref, ok := obj.(*model.StatementReference)
		if !ok {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("statement"), xapiskema.CodeInvalidType,
				"context statement must be a StatementRef", "field", "statement", "expected", "StatementRef")
		}
		c.Statement = ref
	}
	if v, ok := isset(data, "extensions"); ok {
		if c.Extensions, err = xapiskema.DenormalizeField[model.Extensions](ctx, ac, "extensions", v, xapiskema.KindExtensions); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// denormalizeContextActivities accepts a single activity record or a list of
// them under each key; the typed form is always a list.
func denormalizeContextActivities(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (*model.ContextActivities, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	ca := &model.ContextActivities{}
	allowed := map[string]bool{}
	for _, l := range contextActivityLists(ca) {
		allowed[l.key] = true
		v, ok := isset(data, l.key)
		if !ok {
			continue
		}
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		out := make([]model.Activity, 0, len(items))
		for i, item := range items {
			obj, err := xapiskema.Denormalize[model.StatementObject](ctx, ac, item, xapiskema.KindObject)
			if err != nil {
				return nil, rebaseIndex(l.key, i, err)
			}
			a, ok := obj.(*model.Activity)
			if !ok {
				return nil, xapiskema.IssueAt(xapiskema.Root().Field(l.key).Index(i), xapiskema.CodeInvalidType,
					"context activities must be activities", "field", l.key, "expected", "Activity")
			}
			out = append(out, *a)
		}
		*l.list = out
	}
	for k := range data {
		if !allowed[k] {
			return nil, xapiskema.InvalidProperty(k, "unknown context activities key")
		}
	}
	return ca, nil
}
