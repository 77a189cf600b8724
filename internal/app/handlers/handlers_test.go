package handlers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"webextractor/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sample() *usecase.Findings {
	f := usecase.NewFindings()
	f.Emails.Add("b@site.test", "a@site.test")
	f.Names.Add("Mario Rossi")
	f.Comments.Add("secret")
	f.Links.Add("https://site.test/x")
	return f
}

const expReport = `Web Data Extractor: https://site.test
== Email found:
a@site.test
b@site.test

== Name found:
Mario Rossi

== Telephone number found:
== HTML comments found:
secret

== Link found:
https://site.test/x
`

func TestOutputFilename(t *testing.T) {
	assert.Equal(t, "https---targetSite-htb.out.txt", OutputFilename("https://targetSite.htb"))
	assert.Equal(t, "http---x-com-8080-a-b-q-1.out.txt", OutputFilename("http://x.com:8080/a/b?q=1"))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "https://site.test", sample()))
	assert.Equal(t, expReport, buf.String())
}

func TestProcessResultReplacesOldReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OutputFilename("https://site.test"))
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the report itself\n"), 0o600))

	var out bytes.Buffer
	got, err := ProcessResult(&out, dir, "https://site.test", sample(), zap.NewExample())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expReport, string(b))
	assert.Equal(t, expReport, out.String())
}

func TestProcessResultBadDir(t *testing.T) {
	var out bytes.Buffer
	_, err := ProcessResult(&out, filepath.Join(t.TempDir(), "missing"), "https://site.test", sample(), zap.NewNop())
	assert.Error(t, err)
}

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk full")
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	var out bytes.Buffer
	wc := &closeFailer{}
	err := writeAndClose(wc, &out, "https://site.test", sample())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, wc.closed)
	assert.Equal(t, expReport, wc.String(), "content is written before close")
}
