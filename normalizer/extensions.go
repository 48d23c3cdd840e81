package normalizer

import (
	"context"
	"fmt"
	"sort"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

type extensionsConverter struct{}

func (extensionsConverter) Normalize(_ context.Context, v any, _ xapiskema.AttributeConverter) (any, error) {
	ext, ok := v.(model.Extensions)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected model.Extensions, got %T", v))
	}
	data := make(map[string]any, len(ext))
	for k, val := range ext {
		data[string(k)] = val
	}
	return data, nil
}

// Denormalize copies values verbatim. Keys must be absolute IRIs; they are
// checked in sorted order so the reported key is stable.
func (extensionsConverter) Denormalize(_ context.Context, raw any, _ xapiskema.AttributeConverter) (any, error) {
	data, err := asRecord(raw)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ext := make(model.Extensions, len(data))
	for _, k := range keys {
		if err := validateVar(k, k, "url"); err != nil {
			return nil, err
		}
		ext[model.IRI(k)] = data[k]
	}
	return ext, nil
}
