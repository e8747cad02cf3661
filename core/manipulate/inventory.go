package manipulate

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/benedoc-inc/pagekit/types"
)

// PageSize returns a page's unrotated media box dimensions
func (d *Document) PageSize(pageNumber int) (types.PageSize, error) {
	if err := d.checkPage(pageNumber); err != nil {
		return types.PageSize{}, err
	}
	return d.model.MediaBox(pageNumber)
}

// Pages describes every page in order
func (d *Document) Pages() ([]types.PageInfo, error) {
	pages := make([]types.PageInfo, 0, d.Count())
	for n := 1; n <= d.Count(); n++ {
		rotation, err := d.PageAngle(n)
		if err != nil {
			return nil, err
		}
		size, err := d.model.MediaBox(n)
		if err != nil {
			return nil, err
		}
		pages = append(pages, types.PageInfo{
			Number:   n,
			Rotation: rotation,
			Size:     size,
			SizeName: size.Name(),
		})
	}
	return pages, nil
}

// Inventory returns a snapshot of the document's page structure
func (d *Document) Inventory() (*types.Inventory, error) {
	pages, err := d.Pages()
	if err != nil {
		return nil, err
	}
	return &types.Inventory{PageCount: len(pages), Pages: pages}, nil
}

// WriteInventory writes the inventory to w as indented JSON
func (d *Document) WriteInventory(w io.Writer) error {
	inv, err := d.Inventory()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return types.WrapError(types.ErrCodeIOError, "failed to encode inventory", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
