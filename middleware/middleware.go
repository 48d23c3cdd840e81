package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

// StatementDecoder is the part of normalizer.Serializer the middleware needs.
type StatementDecoder interface {
	DecodeStatement(ctx context.Context, src xapiskema.Source) (*model.Statement, error)
}

type ctxKeyStatement struct{}

// ContextWithStatement attaches a decoded statement to the context.
func ContextWithStatement(ctx context.Context, st *model.Statement) context.Context {
	return context.WithValue(ctx, ctxKeyStatement{}, st)
}

// StatementFromContext retrieves the statement stored by DecodeStatement.
func StatementFromContext(ctx context.Context) (*model.Statement, bool) {
	st, ok := ctx.Value(ctxKeyStatement{}).(*model.Statement)
	return st, ok
}

// DefaultReadOpt returns a recommended default for HTTP boundaries.
// Duplicate keys are errors; depth and size are bounded.
func DefaultReadOpt() xapiskema.ReadOpt {
	return xapiskema.ReadOpt{
		OnDuplicateKey: xapiskema.DuplicateReject,
		MaxDepth:       32,
		MaxBytes:       1 << 20,
	}
}

type issuePayload struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues xapiskema.Issues) map[string]any {
	out := make([]issuePayload, 0, len(issues))
	for _, is := range issues {
		out = append(out, issuePayload{Path: is.Path, Code: is.Code, Message: is.Message, Hint: is.Hint, Params: is.Params})
	}
	return map[string]any{"issues": out}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeStatement reads the request body as a statement (YAML when the
// Content-Type says so, JSON otherwise), stores it in the request context and
// answers 400 with an issues payload when the body is rejected. Bodies larger
// than maxBytes are cut off and answered with 413; maxBytes <= 0 disables the
// limit.
func DecodeStatement(d StatementDecoder, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := r.Body
			if maxBytes > 0 {
				body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			var src xapiskema.Source
			if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
				src = xapiskema.YAMLReader(body)
			} else {
				src = xapiskema.JSONReader(body)
			}
			st, err := d.DecodeStatement(r.Context(), src)
			if err != nil {
				status := http.StatusBadRequest
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				if iss, ok := xapiskema.AsIssues(err); ok {
					WriteJSON(w, status, ErrorPayload(iss))
					return
				}
				WriteJSON(w, status, map[string]any{"error": err.Error()})
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithStatement(r.Context(), st)))
		})
	}
}
