// Package model adapts pdfcpu's in-memory document model to the page
// structure operations used by document handles: page count, rotation,
// media box, page selection and serialization.
package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/benedoc-inc/pagekit/types"
)

var configOnce sync.Once

// NewConfiguration returns the pdfcpu configuration used for every read.
// Unless the embedding program chose a pdfcpu config dir, none is created.
func NewConfiguration() *pdfmodel.Configuration {
	configOnce.Do(func() {
		if pdfmodel.ConfigPath == "default" {
			api.DisableConfigDir()
		}
	})
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	conf.CreateBookmarks = false
	return conf
}

// Model is an open, mutable document. It is not safe for concurrent use.
type Model struct {
	ctx  *pdfmodel.Context
	file *os.File // nil for models read from memory
}

// Open parses the document at path. The file stays open until Close.
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.WrapErrorf(types.ErrCodeNotFound, err, "document %s does not exist", path)
		}
		return nil, types.WrapErrorf(types.ErrCodeIOError, err, "failed to open %s", path)
	}

	ctx, err := read(f, NewConfiguration())
	if err != nil {
		f.Close()
		return nil, types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to parse %s", path).
			WithContext("path", path)
	}

	return &Model{ctx: ctx, file: f}, nil
}

// OpenBytes parses an in-memory document.
func OpenBytes(data []byte) (*Model, error) {
	ctx, err := read(bytes.NewReader(data), NewConfiguration())
	if err != nil {
		return nil, types.WrapError(types.ErrCodeInvalidFormat, "failed to parse document", err)
	}
	return &Model{ctx: ctx}, nil
}

func read(rs io.ReadSeeker, conf *pdfmodel.Configuration) (ctx *pdfmodel.Context, err error) {
	// pdfcpu panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("pdfcpu: %v", r)
		}
	}()

	ctx, err = api.ReadAndValidate(rs, conf)
	if err != nil {
		return nil, err
	}
	if err = ctx.EnsurePageCount(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// PageCount returns the number of pages in the document
func (m *Model) PageCount() int {
	return m.ctx.PageCount
}

func (m *Model) checkPage(pageNumber int) error {
	if pageNumber < 1 || pageNumber > m.ctx.PageCount {
		return types.NewRangeError(types.ParamPageNumber, "page %d out of range (1-%d)", pageNumber, m.ctx.PageCount).
			WithContext("pageNumber", pageNumber).
			WithContext("pageCount", m.ctx.PageCount)
	}
	return nil
}

func (m *Model) page(pageNumber int) (pdftypes.Dict, *pdfmodel.InheritedPageAttrs, error) {
	if err := m.checkPage(pageNumber); err != nil {
		return nil, nil, err
	}
	d, _, inh, err := m.ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, nil, types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to resolve page %d", pageNumber)
	}
	if d == nil {
		return nil, nil, types.NewPDFErrorf(types.ErrCodeInvalidFormat, "page %d has no page dictionary", pageNumber)
	}
	return d, inh, nil
}

// Rotation returns the rotation in effect for a page and whether the page
// carries a rotation entry, either its own or one inherited from the page tree.
func (m *Model) Rotation(pageNumber int) (int, bool, error) {
	d, inh, err := m.page(pageNumber)
	if err != nil {
		return 0, false, err
	}
	_, own := d.Find("Rotate")
	return inh.Rotate, own || inh.Rotate != 0, nil
}

// SetRotation writes a rotation entry onto the page itself.
func (m *Model) SetRotation(pageNumber, rotation int) error {
	d, _, err := m.page(pageNumber)
	if err != nil {
		return err
	}
	d.Update("Rotate", pdftypes.Integer(rotation))
	return nil
}

// MediaBox returns the unrotated dimensions of a page's media box.
func (m *Model) MediaBox(pageNumber int) (types.PageSize, error) {
	_, inh, err := m.page(pageNumber)
	if err != nil {
		return types.PageSize{}, err
	}
	if inh.MediaBox == nil {
		return types.PageSize{}, types.NewPDFErrorf(types.ErrCodeInvalidFormat, "page %d has no media box", pageNumber)
	}
	return types.PageSize{Width: inh.MediaBox.Width(), Height: inh.MediaBox.Height()}, nil
}

type pageRotation struct {
	value   int
	present bool
}

// SelectPages replaces the page sequence with the given 1-based pages, in
// order. Repeated numbers produce independent copies of the page.
// Nothing changes if any number is out of range.
func (m *Model) SelectPages(pageNumbers []int) error {
	if len(pageNumbers) == 0 {
		return types.NewArgumentError(types.ParamPageNumbers, "at least one page is required")
	}

	rotations := make([]pageRotation, len(pageNumbers))
	for i, n := range pageNumbers {
		if n < 1 || n > m.ctx.PageCount {
			return types.NewRangeError(types.ParamPageNumbers, "page %d out of range (1-%d)", n, m.ctx.PageCount).
				WithContext("pageNumber", n).
				WithContext("pageCount", m.ctx.PageCount)
		}
		value, present, err := m.Rotation(n)
		if err != nil {
			return err
		}
		rotations[i] = pageRotation{value, present}
	}

	extracted, err := pdfcpu.ExtractPages(m.ctx, pageNumbers, false)
	if err != nil {
		return types.WrapError(types.ErrCodeInvalidFormat, "failed to extract pages", err)
	}

	// The extracted context has no page count yet; a round trip yields a validated one.
	var buf bytes.Buffer
	if err := api.WriteContext(extracted, &buf); err != nil {
		return types.WrapError(types.ErrCodeIOError, "failed to serialize selected pages", err)
	}
	selected, err := OpenBytes(buf.Bytes())
	if err != nil {
		return err
	}

	// Extraction keeps only positive rotations
	for i, r := range rotations {
		if r.present {
			if err := selected.SetRotation(i+1, r.value); err != nil {
				return err
			}
		}
	}

	m.ctx = selected.ctx
	return nil
}

// Serialize writes the document to w. Write errors are returned as-is.
func (m *Model) Serialize(w io.Writer) error {
	m.ctx.ResetWriteContext()
	return api.WriteContext(m.ctx, w)
}

// Bytes serializes the document into memory.
func (m *Model) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the file backing the model. It is safe to call more than once.
func (m *Model) Close() error {
	if m == nil || m.file == nil {
		return nil
	}
	f := m.file
	m.file = nil
	return f.Close()
}
