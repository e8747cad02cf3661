package manipulate

import (
	"fmt"

	"github.com/benedoc-inc/pagekit/core/model"
	"github.com/benedoc-inc/pagekit/core/workcopy"
	"github.com/benedoc-inc/pagekit/types"
)

// Merge returns a new Document holding every page of d followed by every
// page of others, in argument order. All pages take the media box size of
// page 1 of d; pages of other sizes are not scaled and are reported as
// GEOMETRY_MISMATCH warnings on the returned Document.
//
// d and others are left unchanged and stay open. The returned Document has
// its own working copy and must be closed by the caller.
func (d *Document) Merge(others ...*Document) (*Document, error) {
	if len(others) == 0 {
		return nil, types.NewArgumentError(types.ParamOthers, "at least one document to merge is required")
	}
	for i, other := range others {
		if other == nil || other.copy == nil {
			return nil, types.NewArgumentError(types.ParamOthers, fmt.Sprintf("document %d is not open", i+1))
		}
	}

	size, err := d.model.MediaBox(1)
	if err != nil {
		return nil, fmt.Errorf("failed to determine merge page size: %w", err)
	}

	builder := model.NewBuilder(size)
	for _, src := range append([]*Document{d}, others...) {
		if err := builder.Append(src.model); err != nil {
			return nil, err
		}
	}

	c, err := workcopy.Create(d.opts.TempDir, ".pdf", builder.Finish)
	if err != nil {
		return nil, err
	}
	merged, err := adopt(c, d.opts)
	if err != nil {
		return nil, err
	}

	for _, mm := range builder.Mismatches() {
		merged.warnings.Add(types.NewWarningf(types.WarningLevelWarning, types.WarnCodeGeometryMismatch,
			"document %d page %d is %v, placed on %v", mm.Source, mm.Page, mm.Size, size).
			WithContext("document", mm.Source).
			WithContext("page", mm.Page))
		d.logf("Warning: document %d page %d is %v, placed on %v", mm.Source, mm.Page, mm.Size, size)
	}

	d.logf("merged %d documents into %d pages of %v", len(others)+1, merged.Count(), size)
	return merged, nil
}
