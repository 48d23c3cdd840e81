package normalizer

import (
	"context"
	"fmt"
	"math"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type attachmentsConverter struct{}

func (attachmentsConverter) Normalize(_ context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	list, ok := v.([]model.Attachment)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected []model.Attachment, got %T", v))
	}
	out := make([]any, len(list))
	for i, a := range list {
		data := map[string]any{
			"usageType":   string(a.UsageType),
			"display":     normalizeLanguageMap(a.Display),
			"contentType": a.ContentType,
			"length":      a.Length,
			"sha2":        a.SHA2,
		}
		if a.Description != nil {
			data["description"] = normalizeLanguageMap(a.Description)
		}
		if a.FileURL != "" {
			data["fileUrl"] = string(a.FileURL)
		}
		out[i] = data
	}
	return out, nil
}

func (attachmentsConverter) Denormalize(_ context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, "expected an array of attachments", "expected", "array")
	}
	out := make([]model.Attachment, 0, len(list))
	for i, item := range list {
		a, err := denormalizeAttachment(item)
		if err != nil {
			return nil, xapiskema.Rebase(xapiskema.Root().Index(i).Pointer(), err)
		}
		out = append(out, a)
	}
	return out, nil
}

func denormalizeAttachment(raw any) (model.Attachment, error) {
	var a model.Attachment
	data, err := asRecord(raw)
	if err != nil {
		return a, err
	}
	usageType, err := optionalString(data, "usageType")
	if err != nil {
		return a, err
	}
	if a.ContentType, err = optionalString(data, "contentType"); err != nil {
		return a, err
	}
	if a.SHA2, err = optionalString(data, "sha2"); err != nil {
		return a, err
	}
	fileURL, err := optionalString(data, "fileUrl")
	if err != nil {
		return a, err
	}
	a.UsageType, a.FileURL = model.IRI(usageType), model.IRL(fileURL)
	if a.Display, err = languageMap(data, "display"); err != nil {
		return a, err
	}
	if a.Description, err = languageMap(data, "description"); err != nil {
		return a, err
	}
	v, ok := isset(data, "length")
	if !ok {
		return a, xapiskema.Required("length")
	}
	n, ok := number(v)
	if !ok || n != math.Trunc(n) || n >= 1<<63 || n < -(1<<63) {
		return a, xapiskema.InvalidType("length", "integer")
	}
	a.Length = int64(n)
	if err := validateStruct(a); err != nil {
		return a, err
	}
	return a, nil
}
