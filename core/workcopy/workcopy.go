// Package workcopy manages private working copies of source files.
//
// A Copy is a uniquely named file in a temporary directory. It is created
// exclusively, filled once, and removed by Release. Callers own the copy
// and must release it on every exit path, typically with defer.
package workcopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/benedoc-inc/pagekit/types"
)

// namePrefix marks files created by this package in shared temp directories
const namePrefix = "pagekit-"

// Copy is a private working file. The zero value is an already-released copy.
type Copy struct {
	path     string
	size     int64
	checksum uint64
}

// Acquire copies src into a new uniquely named file in dir (os.TempDir when
// dir is empty). It fails with a not-found error if src is not an existing
// regular file. Nothing is left on disk when Acquire fails.
func Acquire(src, dir string) (*Copy, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.WrapErrorf(types.ErrCodeNotFound, err, "source %s does not exist", src).
				WithContext("path", src)
		}
		return nil, types.WrapErrorf(types.ErrCodeIOError, err, "failed to stat source %s", src)
	}
	if !info.Mode().IsRegular() {
		return nil, types.NewPDFErrorf(types.ErrCodeNotFound, "source %s is not a regular file", src).
			WithContext("path", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return nil, types.WrapErrorf(types.ErrCodeIOError, err, "failed to open source %s", src)
	}
	defer in.Close()

	return Create(dir, filepath.Ext(src), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// Create makes a new uniquely named file in dir with extension ext and fills
// it by calling fill. If fill fails the file is removed and the error is
// returned unchanged.
func Create(dir, ext string, fill func(w io.Writer) error) (*Copy, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, namePrefix+uuid.NewString()+ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, types.WrapErrorf(types.ErrCodeIOError, err, "failed to create working copy in %s", dir)
	}

	c := &Copy{path: path}
	h := xxh3.New()
	cw := &countingWriter{w: io.MultiWriter(f, h)}

	if err := fill(cw); err != nil {
		f.Close()
		c.Release()
		return nil, err
	}
	if err := f.Close(); err != nil {
		c.Release()
		return nil, types.WrapErrorf(types.ErrCodeIOError, err, "failed to close working copy %s", path)
	}

	c.size = cw.n
	c.checksum = h.Sum64()
	return c, nil
}

// With acquires a copy of src, passes it to fn and releases it when fn
// returns, including when fn fails or panics.
func With(src, dir string, fn func(c *Copy) error) (err error) {
	c, err := Acquire(src, dir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := c.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn(c)
}

// Path returns the working file path, or "" once released.
func (c *Copy) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Size returns the number of bytes written into the copy.
func (c *Copy) Size() int64 {
	if c == nil {
		return 0
	}
	return c.size
}

// Checksum returns the XXH3 digest of the bytes written into the copy as 16 hex characters.
func (c *Copy) Checksum() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%016x", c.checksum)
}

// Release removes the working file. Releasing a nil, zero or already
// released copy is a no-op, as is releasing a copy whose file is already gone.
func (c *Copy) Release() error {
	if c == nil || c.path == "" {
		return nil
	}
	path := c.path
	c.path = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return types.WrapErrorf(types.ErrCodeIOError, err, "failed to remove working copy %s", path)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
