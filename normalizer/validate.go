package normalizer

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	xapiskema "github.com/reoring/xapiskema"
)

// validate is a package-level singleton; validators cache struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags of a leaf model value and reports the
// first violation as an Issue at the wire path of the offending field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return xapiskema.Issues{{Path: "/", Code: xapiskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return fieldIssue(verrs[0])
}

// validateVar checks a single value stored under field.
func validateVar(field string, v any, tag string) error {
	err := validate.Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return rebase(field, fieldIssue(verrs[0]))
	}
	return xapiskema.InvalidFormat(field, tag, err)
}

func fieldIssue(fe validator.FieldError) error {
	// Namespace is "Type.field.sub"; drop the struct name.
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	} else {
		ns = ""
	}
	p := xapiskema.Root()
	for _, seg := range strings.Split(ns, ".") {
		p = p.Field(seg)
	}
	code := xapiskema.CodeInvalidFormat
	if fe.Tag() == "required" {
		code = xapiskema.CodeRequired
	}
	iss := xapiskema.IssueAt(p, code, "failed "+fe.Tag()+" rule", "field", fe.Field(), "rule", fe.Tag())
	iss[0].Cause = fe
	return iss
}
