// Package manipulate provides Document, a handle over a private working copy
// of a PDF file. Page structure (rotation, selection, merging, splitting) is
// changed in memory and persisted only by Write; the source file is never
// opened for writing.
package manipulate

import (
	"errors"
	"log"
	"os"

	"github.com/benedoc-inc/pagekit/core/model"
	"github.com/benedoc-inc/pagekit/core/workcopy"
	"github.com/benedoc-inc/pagekit/types"
)

// Options configures how documents are opened
type Options struct {
	TempDir         string      // Directory for working copies (os.TempDir when empty)
	Verbose         bool        // Log each operation
	Logger          *log.Logger // Verbose output destination (log.Default when nil)
	DisableWarnings bool        // Skip collecting warnings
}

// Document is an open PDF backed by its own working copy. A Document is not
// safe for concurrent use; two Documents opened from the same source are
// independent of each other.
type Document struct {
	copy     *workcopy.Copy
	model    *model.Model
	opts     Options
	warnings *types.WarningCollector
}

// Open copies the file at path into a private working copy and parses it.
// It fails with a not-found error when path does not exist and with an
// invalid-format error when the bytes are not a readable PDF.
func Open(path string, opts Options) (*Document, error) {
	c, err := workcopy.Acquire(path, opts.TempDir)
	if err != nil {
		return nil, err
	}

	d, err := adopt(c, opts)
	if err != nil {
		if pdfErr, ok := types.IsPDFError(err); ok {
			pdfErr.WithContext("source", path)
		}
		return nil, err
	}

	d.logf("opened %s: %d pages (copy %s, %d bytes, xxh3 %s)", path, d.Count(), c.Path(), c.Size(), c.Checksum())
	return d, nil
}

// adopt opens a model on a working copy the new Document will own.
// The copy is released if the model cannot be opened.
func adopt(c *workcopy.Copy, opts Options) (*Document, error) {
	m, err := model.Open(c.Path())
	if err != nil {
		c.Release()
		return nil, err
	}
	return &Document{
		copy:     c,
		model:    m,
		opts:     opts,
		warnings: types.NewWarningCollector(!opts.DisableWarnings),
	}, nil
}

// With opens the document at path, calls fn with it and closes it when fn
// returns, whether fn succeeds, fails or panics.
func With(path string, opts Options, fn func(d *Document) error) (err error) {
	d, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(d)
}

// Count returns the number of pages currently in the document
func (d *Document) Count() int {
	return d.model.PageCount()
}

// Write serializes the document, including every rotation and selection made
// so far, to path. The file is created or truncated. Errors from the file
// system and the serializer are returned unchanged and a partially written
// file is left in place.
func (d *Document) Write(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := d.model.Serialize(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	d.logf("wrote %d pages to %s", d.Count(), path)
	return nil
}

// Close closes the document model and removes the working copy.
// Calling Close more than once is a no-op.
func (d *Document) Close() error {
	if d == nil || d.copy == nil {
		return nil
	}
	path := d.copy.Path()
	err := errors.Join(d.model.Close(), d.copy.Release())
	d.copy = nil

	d.logf("closed document (removed %s)", path)
	return err
}

// Warnings returns the non-fatal findings recorded so far, such as merged
// pages whose size differed from the merge geometry
func (d *Document) Warnings() []*types.Warning {
	return d.warnings.Warnings()
}

func (d *Document) logf(format string, args ...interface{}) {
	if !d.opts.Verbose {
		return
	}
	logger := d.opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
