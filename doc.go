// Package xapiskema converts xAPI statements between typed values and their
// canonical wire documents (JSON-like map[string]any trees).
//
// - Denormalize: raw document -> typed Statement, enforcing structural and
//   semantic rules (property whitelist, version gate, objectType dispatch,
//   sub-statement restrictions, context gating, strict result primitives)
// - Normalize: typed Statement -> raw document, omitting absent optionals
// - A stable error model via Issues (JSON Pointer, code, message)
// - Document input via Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Typed entities live in model/, converters in normalizer/, codecs in codec/,
//   the HTTP surface in middleware/ and server/, and the CLI under cmd/xapiskema.
// - Converters are stateless and fail fast: the first violated rule aborts the
//   conversion with exactly one Issue.
//
// Typical usage:
//
//	s := normalizer.New()
//	doc, err := xapiskema.DecodeDocument(xapiskema.JSONBytes(data), xapiskema.ReadOpt{})
//	st, err := s.DenormalizeStatement(ctx, doc)
//	raw, err := s.NormalizeStatement(ctx, st)
package xapiskema
