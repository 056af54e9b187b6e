package maincmd_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/internal/filetest"
	"github.com/suru-lang/suru/internal/maincmd"
)

// TestParseFilesNestedSources walks testdata/valid with a nested glob,
// exercising filetest.SourceFilesGlob across subdirectories the way a
// multi-module suru project would be laid out on disk.
func TestParseFilesNestedSources(t *testing.T) {
	dir := filepath.Join("testdata", "valid")
	files := filetest.SourceFilesGlob(t, dir, "**/*.suru")
	require.Len(t, files, 2)

	for _, rel := range files {
		t.Run(rel, func(t *testing.T) {
			var out, errOut bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

			err := maincmd.ParseFiles(stdio, false, 0, false, filepath.Join(dir, rel))
			require.NoError(t, err)
			assert.Empty(t, errOut.String())
			assert.NotEmpty(t, out.String())
		})
	}
}

func TestParseFilesNestedSourcesWithErrors(t *testing.T) {
	dir := filepath.Join("testdata", "invalid")
	files := filetest.SourceFilesGlob(t, dir, "**/*.suru")
	require.Len(t, files, 1)

	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}
	err := maincmd.ParseFiles(stdio, false, 0, false, filepath.Join(dir, files[0]))
	assert.Error(t, err)
	assert.NotEmpty(t, errOut.String())
}
