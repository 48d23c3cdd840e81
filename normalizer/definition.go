package normalizer

import (
	"context"
	"fmt"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type definitionConverter struct{}

func (definitionConverter) Normalize(ctx context.Context, v any, ac xapiskema.AttributeConverter) (any, error) {
	d, ok := v.(*model.Definition)
	if !ok || d == nil {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected *model.Definition, got %T", v))
	}
	data := map[string]any{}
	if d.Name != nil {
		data["name"] = normalizeLanguageMap(d.Name)
	}
	if d.Description != nil {
		data["description"] = normalizeLanguageMap(d.Description)
	}
	if d.Type != "" {
		data["type"] = string(d.Type)
	}
	if d.MoreInfo != "" {
		data["moreInfo"] = string(d.MoreInfo)
	}
	if d.Extensions != nil {
		ext, err := xapiskema.NormalizeField(ctx, ac, "extensions", d.Extensions, xapiskema.KindExtensions)
		if err != nil {
			return nil, err
		}
		data["extensions"] = ext
	}
	return data, nil
}

func (definitionConverter) Denormalize(ctx context.Context, raw any, ac xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	d := &model.Definition{}
	if d.Name, err = languageMap(data, "name"); err != nil {
		return nil, err
	}
	if d.Description, err = languageMap(data, "description"); err != nil {
		return nil, err
	}
	typ, err := optionalString(data, "type")
	if err != nil {
		return nil, err
	}
	moreInfo, err := optionalString(data, "moreInfo")
	if err != nil {
		return nil, err
	}
	d.Type, d.MoreInfo = model.IRI(typ), model.IRL(moreInfo)
	if v, ok := isset(data, "extensions"); ok {
		if d.Extensions, err = xapiskema.DenormalizeField[model.Extensions](ctx, ac, "extensions", v, xapiskema.KindExtensions); err != nil {
			return nil, err
		}
	}
	if err := validateStruct(d); err != nil {
		return nil, err
	}
	return d, nil
}
