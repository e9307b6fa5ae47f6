package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[{"id":"h","type":"header","layout":"single","content":"Hello <b>world</b>"},{"id":"t","type":"text","layout":"single","content":"Some **bold** text"}]`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	out, err := run(t, sample, "render", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="blog-content">`)
	assert.Contains(t, out, "<strong>bold</strong>")

	out, err = run(t, sample, "render", "--mode", "preview")
	require.NoError(t, err)
	assert.Contains(t, out, `"mode": "preview"`)
	assert.Contains(t, out, `"variant": "structured"`)
}

func TestRender_LegacyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0o644))

	out, err := run(t, "", "render", "--html", path)
	require.NoError(t, err)
	assert.Contains(t, out, "line one<br>line two")
}

func TestSummary(t *testing.T) {
	out, err := run(t, sample, "summary")
	require.NoError(t, err)
	assert.Equal(t, "Hello world Some **bold** text\n", out)

	out, err = run(t, sample, "summary", "--budget", "5")
	require.NoError(t, err)
	assert.Equal(t, "Hello...\n", out)
}

func TestFmt(t *testing.T) {
	spaced := "[\n  {\"id\": \"a\", \"type\": \"text\", \"layout\": \"single\", \"content\": \"x\"}\n]"

	out, err := run(t, spaced, "fmt")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a","type":"text","layout":"single","content":"x"}]`+"\n", out)

	_, err = run(t, spaced, "fmt", "--check")
	assert.Error(t, err)

	_, err = run(t, strings.TrimSpace(out), "fmt", "--check")
	assert.NoError(t, err)

	_, err = run(t, "plain old text", "fmt")
	assert.ErrorIs(t, err, errNotStructured)

	_, err = run(t, `[{"id":"a","type":"video"}]`, "fmt")
	assert.ErrorContains(t, err, "invalid content")
}

func TestInspect(t *testing.T) {
	out, err := run(t, sample, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "variant: structured")
	assert.Contains(t, out, "sections: 2")
	assert.Contains(t, out, "header")
	assert.Contains(t, out, "valid")

	out, err = run(t, "hello", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "variant: legacy_text")
	assert.Contains(t, out, "length: 5")
}
