package xapiskema

import (
	"errors"
	"io"

	eng "github.com/reoring/xapiskema/internal/engine"
)

// DecodeDocument reads one document from src and returns its top-level
// record. Duplicate keys, depth and size limits are enforced per opt. The
// result is the raw input of the statement converter.
func DecodeDocument(src Source, opt ReadOpt) (map[string]any, error) {
	if src == nil {
		return nil, singleIssue(CodeParseError, "nil source")
	}
	var sink func(eng.SimpleIssue)
	if opt.Warnings != nil {
		sink = func(si eng.SimpleIssue) {
			opt.Warnings(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	enforced := eng.WrapWithEnforcement(src.source(), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey.severity()),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	conv := eng.AsJSONNumber
	if src.NumberMode() == NumberFloat64 {
		conv = eng.AsFloat64
	}
	v, err := eng.DecodeDocument(enforced, conv)
	if err != nil {
		return nil, toIssues(err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, IssueAt(Root(), CodeInvalidType, "a statement document must be an object", "expected", "object")
	}
	return doc, nil
}

// ReadDocument is DecodeDocument over a JSON reader.
func ReadDocument(r io.Reader, opt ReadOpt) (map[string]any, error) {
	return DecodeDocument(JSONReader(r), opt)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: "/", Message: msg})
}
