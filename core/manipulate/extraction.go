package manipulate

// Select reduces the document to the given pages, in the given order.
// Pages may be repeated or reordered: afterwards page i is what was page
// pageNumbers[i-1]. Every number is checked against the current page count
// before anything changes.
func (d *Document) Select(pageNumbers ...int) error {
	before := d.Count()
	if err := d.model.SelectPages(pageNumbers); err != nil {
		return err
	}

	d.logf("selected pages %v: %d -> %d pages", pageNumbers, before, d.Count())
	return nil
}
