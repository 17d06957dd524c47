package follow

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/testutil"
)

func collect(t *testing.T, f *Follower, n int) []Document {
	t.Helper()
	var docs []Document
	timeout := time.After(5 * time.Second)
	for len(docs) < n {
		select {
		case doc, ok := <-f.Documents():
			require.True(t, ok, "documents closed early")
			docs = append(docs, doc)
		case <-timeout:
			t.Fatalf("timed out after %d of %d documents", len(docs), n)
		}
	}
	return docs
}

func TestFollowerSkipsNonJSONLines(t *testing.T) {
	path := testutil.WriteJSONFile(t, "events.jsonl", "{\"a\":1}\nnot json\n\n[1,2]\r\n{\"broken\":\n\"plain\"\n")

	f, err := Start(path, Options{FromStart: true, Poll: true})
	require.NoError(t, err)
	defer f.Stop()

	docs := collect(t, f, 3)

	assert.Equal(t, 1, docs[0].Line)
	assert.Equal(t, `{"a":1}`, docs[0].Text)
	assert.Equal(t, jsonvalue.KindObject, jsonvalue.KindOf(docs[0].Value))

	assert.Equal(t, 4, docs[1].Line)
	assert.Equal(t, "[1,2]", docs[1].Text)

	assert.Equal(t, 6, docs[2].Line)
	assert.Equal(t, jsonvalue.String("plain"), docs[2].Value)

	assert.Equal(t, int64(2), f.Skipped())
}

func TestFollowerSeesAppendedLines(t *testing.T) {
	path := testutil.WriteJSONFile(t, "events.jsonl", "{\"old\":true}\n")

	f, err := Start(path, Options{Poll: true})
	require.NoError(t, err)
	defer f.Stop()

	// give the tailer time to seek to the end before appending
	time.Sleep(300 * time.Millisecond)

	testutil.AppendLine(t, path, `{"new":true}`)

	docs := collect(t, f, 1)
	assert.Equal(t, `{"new":true}`, docs[0].Text)
}

func TestFollowerStopClosesDocuments(t *testing.T) {
	path := testutil.WriteJSONFile(t, "events.jsonl", "")

	f, err := Start(path, Options{Poll: true})
	require.NoError(t, err)
	f.Stop()
	assert.NoError(t, f.Stop())

	select {
	case _, ok := <-f.Documents():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("documents not closed")
	}
}

func TestStartMissingFile(t *testing.T) {
	_, err := Start(filepath.Join(t.TempDir(), "missing.jsonl"), Options{})
	assert.Error(t, err)
}
