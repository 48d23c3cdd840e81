package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/xapiskema/i18n"
)

const validStatement = `{
  "actor": {"objectType": "Agent", "mbox": "mailto:learner@example.com"},
  "verb": {"id": "http://adlnet.gov/expapi/verbs/completed"},
  "object": {"id": "http://example.com/activities/course"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	good := writeFile(t, "good.json", validStatement)
	bad := writeFile(t, "bad.json", `{"verb": {"id": "http://example.com/v"}, "object": {"id": "http://example.com/a"}}`)

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	out, err = run(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, bad+": required at /actor")
}

func TestValidate_YAMLByExtension(t *testing.T) {
	p := writeFile(t, "statement.yaml", `
actor:
  objectType: Agent
  mbox: mailto:learner@example.com
verb:
  id: http://adlnet.gov/expapi/verbs/completed
object:
  id: http://example.com/activities/course
`)
	out, err := run(t, "validate", p)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, ": ok\n"))
}

func TestValidate_Stdin(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(validStatement))
	cmd.SetArgs([]string{"validate", "-"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "-: ok\n", out.String())
}

func TestNormalize(t *testing.T) {
	p := writeFile(t, "s.json", validStatement)
	out, err := run(t, "normalize", p)
	require.NoError(t, err)
	assert.Equal(t, `{"actor":{"mbox":"mailto:learner@example.com","objectType":"Agent"},"object":{"id":"http://example.com/activities/course","objectType":"Activity"},"verb":{"id":"http://adlnet.gov/expapi/verbs/completed"}}`+"\n", out)
}

func TestNormalize_Indent(t *testing.T) {
	p := writeFile(t, "s.json", validStatement)
	out, err := run(t, "normalize", "--indent", p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"actor\": {\n    \"mbox\": \"mailto:learner@example.com\",\n"), out)
	assert.Less(t, strings.Index(out, `"object"`), strings.Index(out, `"verb"`))
}

func TestNormalize_Invalid(t *testing.T) {
	p := writeFile(t, "s.json", `{"actor": {"mbox": "mailto:a@example.com"}, "verb": {"id": "http://example.com/v"}, "object": {"id": "http://example.com/a"}, "version": "2.0.0"}`)
	_, err := run(t, "normalize", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported_version at /version")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "xAPI Statement"`)
}

func TestRootFlags_Rejected(t *testing.T) {
	p := writeFile(t, "s.json", validStatement)
	_, err := run(t, "--lang", "fr", "validate", p)
	assert.Error(t, err)
	_, err = run(t, "--format", "xml", "validate", p)
	assert.Error(t, err)
	_, err = run(t, "--log-level", "loud", "validate", p)
	assert.Error(t, err)
}

func TestMaxDepthFlag(t *testing.T) {
	p := writeFile(t, "s.json", validStatement)
	out, err := run(t, "--max-depth", "1", "validate", p)
	require.Error(t, err)
	assert.Contains(t, out, "/actor")
}
