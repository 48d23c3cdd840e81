package xapiskema

import (
	"io"
	"sync"

	eng "github.com/reoring/xapiskema/internal/engine"
	gojsonsrc "github.com/reoring/xapiskema/source/gojson"
	jsonsrc "github.com/reoring/xapiskema/source/json"
	yamlsrc "github.com/reoring/xapiskema/source/yaml"
)

// Source is a token stream over one input document.
type Source interface {
	source() eng.TokenSource
	NumberMode() NumberMode
}

// JSONDriver converts JSON input into a Source. The default implementation is
// based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// StdJSONDriver returns the encoding/json backed driver. It reports exact
// byte offsets, which makes MaxBytes enforcement precise.
func StdJSONDriver() JSONDriver { return stdJSONDriver{} }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return engineSource{gojsonsrc.NewReader(r)} }
func (goJSONDriver) NewBytes(b []byte) Source     { return engineSource{gojsonsrc.NewBytes(b)} }
func (goJSONDriver) Name() string                 { return "go-json" }

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return engineSource{jsonsrc.NewReader(r)} }
func (stdJSONDriver) NewBytes(b []byte) Source     { return engineSource{jsonsrc.NewBytes(b)} }
func (stdJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// YAMLBytes wraps a YAML document as a Source.
func YAMLBytes(b []byte) Source { return engineSource{yamlsrc.NewBytes(b)} }

// YAMLReader wraps an io.Reader holding a YAML document as a Source.
func YAMLReader(r io.Reader) Source { return engineSource{yamlsrc.NewReader(r)} }

// WithNumberMode wraps a Source and overrides its NumberMode.
func WithNumberMode(s Source, m NumberMode) Source { return overrideNumberMode{inner: s, mode: m} }

type engineSource struct{ inner eng.TokenSource }

func (s engineSource) source() eng.TokenSource { return s.inner }
func (s engineSource) NumberMode() NumberMode  { return NumberJSONNumber }

type overrideNumberMode struct {
	inner Source
	mode  NumberMode
}

func (o overrideNumberMode) source() eng.TokenSource { return o.inner.source() }
func (o overrideNumberMode) NumberMode() NumberMode  { return o.mode }
