package manipulate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benedoc-inc/pagekit/core/angle"
	"github.com/benedoc-inc/pagekit/types"
)

// PageAngle returns a page's rotation, or 0 if it has none.
// pageNumber is 1-based (first page is 1)
func (d *Document) PageAngle(pageNumber int) (int, error) {
	rotation, _, err := d.model.Rotation(pageNumber)
	if err != nil {
		return 0, err
	}
	return rotation, nil
}

// Rotate adds delta degrees to a page's rotation and returns the result.
// A page without a rotation takes delta as-is; otherwise the sum is reduced
// modulo 360 keeping its sign, so 270 then 180 gives 90 and -270 then -180
// gives -90.
//
// The page number is checked first, then the angle; either failure is a
// range error tagged with the offending parameter and leaves the page unchanged.
func (d *Document) Rotate(pageNumber int, delta int) (int, error) {
	if err := d.checkPage(pageNumber); err != nil {
		return 0, err
	}
	if err := checkAngle(delta); err != nil {
		return 0, err
	}
	return d.rotate(pageNumber, delta)
}

// RotateAll rotates every page by delta and returns the resulting rotations in page order
func (d *Document) RotateAll(delta int) ([]int, error) {
	if err := checkAngle(delta); err != nil {
		return nil, err
	}

	results := make([]int, 0, d.Count())
	for pageNumber := 1; pageNumber <= d.Count(); pageNumber++ {
		rotation, err := d.rotate(pageNumber, delta)
		if err != nil {
			return nil, fmt.Errorf("failed to rotate page %d: %w", pageNumber, err)
		}
		results = append(results, rotation)
	}
	return results, nil
}

func (d *Document) rotate(pageNumber, delta int) (int, error) {
	current, present, err := d.model.Rotation(pageNumber)
	if err != nil {
		return 0, err
	}

	var existing *int
	if present {
		existing = &current
	}
	rotation := angle.Combine(existing, delta)

	if err := d.model.SetRotation(pageNumber, rotation); err != nil {
		return 0, err
	}

	d.logf("rotated page %d by %d degrees (old: %d, new: %d)", pageNumber, delta, current, rotation)
	return rotation, nil
}

func (d *Document) checkPage(pageNumber int) error {
	if pageNumber < 1 || pageNumber > d.Count() {
		return types.NewRangeError(types.ParamPageNumber, "page %d out of range (1-%d)", pageNumber, d.Count()).
			WithContext("pageNumber", pageNumber).
			WithContext("pageCount", d.Count())
	}
	return nil
}

func checkAngle(delta int) error {
	if angle.IsAcceptable(delta) {
		return nil
	}
	accepted := make([]string, len(angle.Acceptable))
	for i, a := range angle.Acceptable {
		accepted[i] = strconv.Itoa(a)
	}
	return types.NewRangeError(types.ParamRotateAngle, "rotation angle must be one of %s degrees, got %d",
		strings.Join(accepted, ", "), delta).
		WithContext("rotateAngle", delta)
}
