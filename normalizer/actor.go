package normalizer

import (
	"context"
	"fmt"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type actorConverter struct{}

func (actorConverter) Normalize(_ context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	switch a := v.(type) {
	case *model.Agent:
		return normalizeAgent(a), nil
	case *model.Group:
		data := map[string]any{"objectType": string(model.ObjectTypeGroup)}
		if a.Name != "" {
			data["name"] = a.Name
		}
		normalizeIFI(data, a.IFI)
		if len(a.Members) > 0 {
			members := make([]any, len(a.Members))
			for i := range a.Members {
				members[i] = normalizeAgent(&a.Members[i])
			}
			data["member"] = members
		}
		return data, nil
	default:
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected an agent or group, got %T", v))
	}
}

func normalizeAgent(a *model.Agent) map[string]any {
	data := map[string]any{"objectType": string(model.ObjectTypeAgent)}
	if a.Name != "" {
		data["name"] = a.Name
	}
	normalizeIFI(data, a.IFI)
	return data
}

func normalizeIFI(data map[string]any, ifi model.InverseFunctionalIdentifier) {
	if ifi.Mbox != "" {
		data["mbox"] = string(ifi.Mbox)
	}
	if ifi.MboxSHA1Sum != "" {
		data["mbox_sha1sum"] = ifi.MboxSHA1Sum
	}
	if ifi.OpenID != "" {
		data["openid"] = string(ifi.OpenID)
	}
	if ifi.Account != nil {
		data["account"] = map[string]any{
			"homePage": string(ifi.Account.HomePage),
			"name":     ifi.Account.Name,
		}
	}
}

func (actorConverter) Denormalize(_ context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	objectType := model.ObjectTypeAgent
	if v, ok := isset(data, "objectType"); ok {
		s, _ := v.(string)
		switch model.ObjectType(s) {
		case model.ObjectTypeAgent, model.ObjectTypeGroup:
			objectType = model.ObjectType(s)
		default:
			return nil, xapiskema.IssueAt(xapiskema.Root().Field("objectType"), xapiskema.CodeDiscriminatorUnknown,
				fmt.Sprintf("an actor is an Agent or a Group (got %v)", v), "objectType", fmt.Sprint(v), "allowed", []string{"Agent", "Group"})
		}
	}
	if objectType == model.ObjectTypeGroup {
		return denormalizeGroup(data)
	}
	return denormalizeAgent(data)
}

func denormalizeAgent(data map[string]any) (*model.Agent, error) {
	name, err := optionalString(data, "name")
	if err != nil {
		return nil, err
	}
	ifi, err := denormalizeIFI(data)
	if err != nil {
		return nil, err
	}
	if n := ifi.Count(); n != 1 {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeSemanticViolation,
			fmt.Sprintf("an agent must have exactly one inverse functional identifier, found %d", n), "count", n)
	}
	return &model.Agent{Name: name, IFI: ifi}, nil
}

func denormalizeGroup(data map[string]any) (*model.Group, error) {
	name, err := optionalString(data, "name")
	if err != nil {
		return nil, err
	}
	ifi, err := denormalizeIFI(data)
	if err != nil {
		return nil, err
	}
	if ifi.Count() > 1 {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeSemanticViolation,
			"a group must not have more than one inverse functional identifier", "count", ifi.Count())
	}
	g := &model.Group{Name: name, IFI: ifi}
	if v, ok := isset(data, "member"); ok {
		list, ok := v.([]any)
		if !ok {
			return nil, xapiskema.InvalidType("member", "array")
		}
		g.Members = make([]model.Agent, 0, len(list))
		for i, m := range list {
			rec, err := asRecord(m)
			if err != nil {
				return nil, rebaseIndex("member", i, err)
			}
			if t, ok := isset(rec, "objectType"); ok && t != string(model.ObjectTypeAgent) {
				return nil, xapiskema.IssueAt(xapiskema.Root().Field("member").Index(i).Field("objectType"), xapiskema.CodeInvalidProperty,
					"group members must be agents", "field", "objectType")
			}
			a, err := denormalizeAgent(rec)
			if err != nil {
				return nil, rebaseIndex("member", i, err)
			}
			g.Members = append(g.Members, *a)
		}
	}
	if ifi.Count() == 0 && len(g.Members) == 0 {
		return nil, xapiskema.IssueAt(xapiskema.Root().Field("member"), xapiskema.CodeRequired, "an anonymous group requires members", "field", "member")
	}
	return g, nil
}

func denormalizeIFI(data map[string]any) (model.InverseFunctionalIdentifier, error) {
	var ifi model.InverseFunctionalIdentifier
	mbox, err := optionalString(data, "mbox")
	if err != nil {
		return ifi, err
	}
	sha1, err := optionalString(data, "mbox_sha1sum")
	if err != nil {
		return ifi, err
	}
	openid, err := optionalString(data, "openid")
	if err != nil {
		return ifi, err
	}
	ifi.Mbox, ifi.MboxSHA1Sum, ifi.OpenID = model.IRI(mbox), sha1, model.IRI(openid)
	if v, ok := isset(data, "account"); ok {
		rec, err := asRecord(v)
		if err != nil {
			return ifi, rebase("account", err)
		}
		homePage, err := optionalString(rec, "homePage")
		if err != nil {
			return ifi, rebase("account", err)
		}
		name, err := optionalString(rec, "name")
		if err != nil {
			return ifi, rebase("account", err)
		}
		ifi.Account = &model.Account{HomePage: model.IRL(homePage), Name: name}
	}
	if err := validateStruct(ifi); err != nil {
		return ifi, err
	}
	return ifi, nil
}
