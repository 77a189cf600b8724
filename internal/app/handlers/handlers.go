package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"webextractor/internal/usecase"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// OutputFilename derives the report file name from the seed URL.
func OutputFilename(seed string) string {
	return nonAlnum.ReplaceAllString(seed, "-") + ".out.txt"
}

type section struct {
	title  string
	values usecase.Set
	gap    bool // blank line before the heading
}

func sections(f *usecase.Findings) []section {
	return []section{
		{"== Email found:", f.Emails, false},
		{"== Name found:", f.Names, true},
		{"== Telephone number found:", f.Phones, true},
		{"== HTML comments found:", f.Comments, false},
		{"== Link found:", f.Links, true},
	}
}

// WriteReport writes the sorted findings under one heading per signal.
func WriteReport(w io.Writer, seed string, f *usecase.Findings) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Web Data Extractor: %s\n", seed)
	for _, s := range sections(f) {
		if s.gap {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, s.title)
		for _, v := range s.values.Sorted() {
			fmt.Fprintln(bw, v)
		}
	}
	return bw.Flush()
}

// ProcessResult prints the report to out and stores it in dir, replacing any
// report left by a previous run. It returns the report path.
func ProcessResult(out io.Writer, dir, seed string, f *usecase.Findings, logger *zap.Logger) (string, error) {
	path := filepath.Join(dir, OutputFilename(seed))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", eris.Wrapf(err, "remove old report %s", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "create report %s", path)
	}
	if err := writeAndClose(file, out, seed, f); err != nil {
		return "", eris.Wrapf(err, "report %s", path)
	}
	logger.Info("report written",
		zap.String("path", path),
		zap.Int("emails", f.Emails.Len()),
		zap.Int("names", f.Names.Len()),
		zap.Int("phones", f.Phones.Len()),
		zap.Int("comments", f.Comments.Len()),
		zap.Int("links", f.Links.Len()),
	)
	return path, nil
}

// writeAndClose writes the report to both out and wc, then closes wc. A close
// error is returned when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, out io.Writer, seed string, f *usecase.Findings) error {
	if err := WriteReport(io.MultiWriter(out, wc), seed, f); err != nil {
		_ = wc.Close()
		return eris.Wrap(err, "write")
	}
	if err := wc.Close(); err != nil {
		return eris.Wrap(err, "close")
	}
	return nil
}
