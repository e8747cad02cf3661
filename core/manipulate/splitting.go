package manipulate

import (
	"fmt"

	"github.com/benedoc-inc/pagekit/core/workcopy"
	"github.com/benedoc-inc/pagekit/types"
)

// PageRange represents a range of pages (1-based, inclusive)
type PageRange struct {
	Start int // First page number (1-based)
	End   int // Last page number (1-based, inclusive)
}

func (r PageRange) pages() []int {
	pages := make([]int, 0, r.End-r.Start+1)
	for i := r.Start; i <= r.End; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Split returns one new Document per range, each holding that range's pages.
// d is left unchanged. The caller must close every returned Document.
func (d *Document) Split(ranges ...PageRange) ([]*Document, error) {
	if len(ranges) == 0 {
		return nil, types.NewArgumentError(types.ParamRanges, "at least one page range is required")
	}

	total := d.Count()
	for i, r := range ranges {
		if r.Start < 1 || r.Start > total {
			return nil, types.NewRangeError(types.ParamRanges, "range %d: start page %d out of range (1-%d)", i+1, r.Start, total)
		}
		if r.End < r.Start || r.End > total {
			return nil, types.NewRangeError(types.ParamRanges, "range %d: end page %d out of range (%d-%d)", i+1, r.End, r.Start, total)
		}
	}

	parts := make([]*Document, 0, len(ranges))
	for _, r := range ranges {
		part, err := d.clone()
		if err == nil {
			parts = append(parts, part)
			err = part.Select(r.pages()...)
		}
		if err != nil {
			closeAll(parts)
			return nil, fmt.Errorf("failed to split pages %d-%d: %w", r.Start, r.End, err)
		}
	}

	d.logf("split %d pages into %d documents", total, len(parts))
	return parts, nil
}

// SplitEvery splits the document into parts of pagesPerDocument pages; the last part may be shorter
func (d *Document) SplitEvery(pagesPerDocument int) ([]*Document, error) {
	if pagesPerDocument < 1 {
		return nil, types.NewArgumentError(types.ParamPagesPer, "must be at least 1")
	}

	var ranges []PageRange
	for start := 1; start <= d.Count(); start += pagesPerDocument {
		end := start + pagesPerDocument - 1
		if end > d.Count() {
			end = d.Count()
		}
		ranges = append(ranges, PageRange{Start: start, End: end})
	}

	return d.Split(ranges...)
}

// clone serializes the current model into a new Document with its own working copy
func (d *Document) clone() (*Document, error) {
	c, err := workcopy.Create(d.opts.TempDir, ".pdf", d.model.Serialize)
	if err != nil {
		return nil, err
	}
	return adopt(c, d.opts)
}

func closeAll(docs []*Document) {
	for _, doc := range docs {
		doc.Close()
	}
}
