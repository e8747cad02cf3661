package manipulate

import (
	"github.com/benedoc-inc/pagekit/types"
)

// Remove deletes the given pages, keeping the rest in their current order.
// Repeated numbers are removed once. At least one page must remain.
func (d *Document) Remove(pageNumbers ...int) error {
	if len(pageNumbers) == 0 {
		return types.NewArgumentError(types.ParamPageNumbers, "at least one page is required")
	}

	count := d.Count()
	drop := make(map[int]bool, len(pageNumbers))
	for _, n := range pageNumbers {
		if n < 1 || n > count {
			return types.NewRangeError(types.ParamPageNumbers, "page %d out of range (1-%d)", n, count).
				WithContext("pageNumber", n).
				WithContext("pageCount", count)
		}
		drop[n] = true
	}
	if len(drop) == count {
		return types.NewArgumentError(types.ParamPageNumbers, "cannot remove every page")
	}

	keep := make([]int, 0, count-len(drop))
	for n := 1; n <= count; n++ {
		if !drop[n] {
			keep = append(keep, n)
		}
	}

	d.logf("removing %d of %d pages", len(drop), count)
	return d.Select(keep...)
}
