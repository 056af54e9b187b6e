package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/internal/maincmd"
)

func writeTemp(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.suru")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestLexFilesPrintsTokens(t *testing.T) {
	path := writeTemp(t, "x: 1\n")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.LexFiles(stdio, false, path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "identifier")
	assert.Contains(t, out.String(), "int literal")
	assert.Empty(t, errOut.String())
}

func TestParseFilesPrintsTree(t *testing.T) {
	path := writeTemp(t, "x: 1\n")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.ParseFiles(stdio, false, 0, false, path)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "VarDecl")
	assert.Empty(t, errOut.String())
}

func TestParseFilesReportsSyntaxErrors(t *testing.T) {
	path := writeTemp(t, "x: \n")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.ParseFiles(stdio, false, 0, false, path)
	assert.Error(t, err)
	assert.NotEmpty(t, errOut.String())
}

func TestParseFilesMissingFile(t *testing.T) {
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.ParseFiles(stdio, false, 0, false, filepath.Join(t.TempDir(), "missing.suru"))
	assert.Error(t, err)
	assert.Contains(t, errOut.String(), "no such file")
}
