package model

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/benedoc-inc/pagekit/types"
)

// Mismatch records an appended page whose own media box differs from the
// builder's page size.
type Mismatch struct {
	Source int            // 1-based position of the appended model
	Page   int            // 1-based page number within that model
	Size   types.PageSize // The page's original media box dimensions
}

// Builder concatenates the pages of several models into a new document in
// which every page uses the same page size. Pages are not scaled: each keeps
// its content and takes a [0 0 width height] media box and crop box.
type Builder struct {
	size       types.PageSize
	box        *pdftypes.Rectangle
	ctx        *pdfmodel.Context
	sources    int
	pages      int
	mismatches []Mismatch
}

// NewBuilder creates an empty builder for pages of the given size
func NewBuilder(size types.PageSize) *Builder {
	return &Builder{
		size: size,
		box:  pdftypes.NewRectangle(0, 0, size.Width, size.Height),
	}
}

// Append imports every page of src, in its current order. src is serialized
// and re-read so the builder never shares objects with it.
func (b *Builder) Append(src *Model) error {
	data, err := src.Bytes()
	if err != nil {
		return types.WrapErrorf(types.ErrCodeIOError, err, "failed to serialize document %d", b.sources+1)
	}
	conf := NewConfiguration()
	conf.Cmd = pdfmodel.MERGECREATE
	imported, err := read(bytes.NewReader(data), conf)
	if err != nil {
		return types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to import document %d", b.sources+1)
	}

	b.sources++
	if err := b.recordMismatches(imported); err != nil {
		return err
	}

	if b.ctx == nil {
		imported.EnsureVersionForWriting()
		b.ctx = imported
		b.pages = imported.PageCount
		return nil
	}

	want := b.pages + imported.PageCount
	if err := pdfcpu.MergeXRefTables(fmt.Sprintf("document %d", b.sources), imported, b.ctx, false, false); err != nil {
		return types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to merge document %d", b.sources)
	}
	// MergeXRefTables drops page tree errors, so verify the count.
	if b.ctx.PageCount != want {
		return types.NewPDFErrorf(types.ErrCodeInvalidFormat,
			"merging document %d produced %d pages, want %d", b.sources, b.ctx.PageCount, want)
	}
	b.pages = want
	return nil
}

func (b *Builder) recordMismatches(ctx *pdfmodel.Context) error {
	for i := 1; i <= ctx.PageCount; i++ {
		_, _, inh, err := ctx.PageDict(i, false)
		if err != nil {
			return types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to resolve page %d of document %d", i, b.sources)
		}
		if inh.MediaBox == nil {
			continue
		}
		if !sameBox(inh.MediaBox, b.box) {
			b.mismatches = append(b.mismatches, Mismatch{
				Source: b.sources,
				Page:   i,
				Size:   types.PageSize{Width: inh.MediaBox.Width(), Height: inh.MediaBox.Height()},
			})
		}
	}
	return nil
}

func sameBox(a, b *pdftypes.Rectangle) bool {
	const tolerance = 0.01
	return math.Abs(a.LL.X-b.LL.X) < tolerance &&
		math.Abs(a.LL.Y-b.LL.Y) < tolerance &&
		math.Abs(a.UR.X-b.UR.X) < tolerance &&
		math.Abs(a.UR.Y-b.UR.Y) < tolerance
}

// PageCount returns the number of pages appended so far
func (b *Builder) PageCount() int {
	return b.pages
}

// Size returns the page size every output page receives
func (b *Builder) Size() types.PageSize {
	return b.size
}

// Mismatches lists appended pages whose original media box differed from the page size
func (b *Builder) Mismatches() []Mismatch {
	return b.mismatches
}

// Finish applies the page size to every page and writes the document to w.
// The builder must not be used afterwards.
func (b *Builder) Finish(w io.Writer) error {
	if b.ctx == nil {
		return types.NewPDFError(types.ErrCodeInvalidArgument, "no documents appended")
	}

	for i := 1; i <= b.ctx.PageCount; i++ {
		d, _, _, err := b.ctx.PageDict(i, false)
		if err != nil {
			return types.WrapErrorf(types.ErrCodeInvalidFormat, err, "failed to resolve merged page %d", i)
		}
		d.Update("MediaBox", b.box.Array())
		d.Update("CropBox", b.box.Array())
	}

	return api.WriteContext(b.ctx, w)
}
