package normalizer

import (
	"context"
	"fmt"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type verbConverter struct{}

func (verbConverter) Normalize(_ context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	verb, ok := v.(model.Verb)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected model.Verb, got %T", v))
	}
	data := map[string]any{"id": string(verb.ID)}
	if verb.Display != nil {
		data["display"] = normalizeLanguageMap(verb.Display)
	}
	return data, nil
}

func (verbConverter) Denormalize(_ context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	id, err := requiredString(data, "id")
	if err != nil {
		return nil, err
	}
	display, err := languageMap(data, "display")
	if err != nil {
		return nil, err
	}
	verb := model.Verb{ID: model.IRI(id), Display: display}
	if err := validateStruct(verb); err != nil {
		return nil, err
	}
	return verb, nil
}
