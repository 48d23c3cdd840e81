package engine

// Frames tracks object/array nesting for tokenizers whose underlying decoder
// does not distinguish object keys from string values.
type Frames struct {
	stack []frame
}

// Open records the start of an object or array.
func (f *Frames) Open(k Kind) Token {
	if k == KindBeginObject {
		f.stack = append(f.stack, frame{kind: kindObject, expectingKey: true})
	} else {
		f.stack = append(f.stack, frame{kind: kindArray})
	}
	return Token{Kind: k, Offset: -1}
}

// Close records the end of the innermost container.
func (f *Frames) Close(k Kind) Token {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.consumed()
	return Token{Kind: k, Offset: -1}
}

// String classifies a string token as an object key or a string value.
func (f *Frames) String(s string) Token {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return Token{Kind: KindKey, String: s, Offset: -1}
		}
	}
	f.consumed()
	return Token{Kind: KindString, String: s, Offset: -1}
}

// Scalar records a non-string scalar value.
func (f *Frames) Scalar(t Token) Token {
	f.consumed()
	return t
}

func (f *Frames) consumed() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
