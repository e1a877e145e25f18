package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	lockFile, err := acquireFileLock(path)
	require.NoError(t, err)
	defer releaseFileLock(lockFile)

	_, err = os.Stat(path + ".lock")
	assert.NoError(t, err, "lock file should exist")

	// flock locks are per open file description, so a second open conflicts
	_, err = acquireFileLock(path)
	assert.Error(t, err)
}

func TestReleaseFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	lockFile, err := acquireFileLock(path)
	require.NoError(t, err)
	require.NoError(t, releaseFileLock(lockFile))

	_, err = os.Stat(path + ".lock")
	assert.True(t, os.IsNotExist(err))

	again, err := acquireFileLock(path)
	require.NoError(t, err)
	assert.NoError(t, releaseFileLock(again))

	assert.NoError(t, releaseFileLock(nil))
}

func TestWriteReportFileHeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	held, err := acquireFileLock(path)
	require.NoError(t, err)
	defer releaseFileLock(held)

	err = writeReportFile(path, nil, formatJSONL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock")
}

func TestWriteReports(t *testing.T) {
	reports := []report{{
		Recommendations: []recommendation{
			{ReferenceID: 1, ID: 2, Title: "B"},
			{ReferenceID: 1, ID: 3, Title: "C"},
		},
	}}

	var jsonl bytes.Buffer
	require.NoError(t, writeReports(&jsonl, reports, formatJSONL))
	assert.Len(t, strings.Split(strings.TrimSpace(jsonl.String()), "\n"), 2)

	var empty bytes.Buffer
	require.NoError(t, writeReports(&empty, nil, formatJSON))
	assert.Equal(t, "[]", strings.TrimSpace(empty.String()))

	assert.Error(t, writeReports(&empty, reports, "xml"))
}
