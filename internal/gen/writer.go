package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"modelkit/internal/ctxlog"
)

// File permission constants.
const filePerm = 0o644

// Writer stores generated files through an afs file system, so the output
// location may be any URL afs understands.
type Writer struct {
	fs afs.Service
}

// NewWriter creates a Writer backed by the given service, or by afs.New()
// when fs is nil.
func NewWriter(fs afs.Service) *Writer {
	if fs == nil {
		fs = afs.New()
	}

	return &Writer{fs: fs}
}

// URL returns the location of a generated file.
func (w *Writer) URL(file *GeneratedFile) string {
	return fileURL(file.Dir, file.Filename)
}

// Write stores file in its package directory.
func (w *Writer) Write(ctx context.Context, file *GeneratedFile) error {
	target := w.URL(file)

	if err := w.fs.Upload(ctx, target, filePerm, bytes.NewReader(file.Content)); err != nil {
		return fmt.Errorf("writing file %s: %w", target, err)
	}

	ctxlog.FromContext(ctx).Debug("wrote generated file", "url", target, "bytes", len(file.Content))

	return nil
}

// Read returns the current content at the file's location. exists is false
// when nothing has been generated yet.
func (w *Writer) Read(ctx context.Context, file *GeneratedFile) (content []byte, exists bool, err error) {
	target := w.URL(file)

	exists, err = w.fs.Exists(ctx, target)
	if err != nil {
		return nil, false, fmt.Errorf("checking %s: %w", target, err)
	}

	if !exists {
		return nil, false, nil
	}

	content, err = w.fs.DownloadWithURL(ctx, target)
	if err != nil {
		return nil, true, fmt.Errorf("reading %s: %w", target, err)
	}

	return content, true, nil
}

func fileURL(dir, name string) string {
	if !strings.Contains(dir, "://") {
		return filepath.Join(dir, name)
	}

	return url.Join(dir, name)
}
