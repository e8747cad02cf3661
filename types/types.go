package types

import (
	"fmt"
	"math"
)

// PageSize represents page dimensions in points (1 point = 1/72 inch)
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Standard page sizes
var (
	PageSizeLetter = PageSize{612, 792}  // 8.5 x 11 inches
	PageSizeA4     = PageSize{595, 842}  // 210 x 297 mm
	PageSizeLegal  = PageSize{612, 1008} // 8.5 x 14 inches
	PageSizeA3     = PageSize{842, 1191} // 297 x 420 mm
	PageSizeA5     = PageSize{420, 595}  // 148 x 210 mm
)

var standardSizes = []struct {
	name string
	size PageSize
}{
	{"Letter", PageSizeLetter},
	{"A4", PageSizeA4},
	{"Legal", PageSizeLegal},
	{"A3", PageSizeA3},
	{"A5", PageSizeA5},
}

// sizeTolerance absorbs rounding in boxes written by other producers
const sizeTolerance = 0.01

// Equal reports whether two sizes match within a hundredth of a point
func (s PageSize) Equal(other PageSize) bool {
	return math.Abs(s.Width-other.Width) < sizeTolerance &&
		math.Abs(s.Height-other.Height) < sizeTolerance
}

// Name returns the standard size name (e.g., "A4") or "" when the size is not a known one.
// Landscape variants match their portrait name.
func (s PageSize) Name() string {
	for _, std := range standardSizes {
		if s.Equal(std.size) || s.Equal(PageSize{std.size.Height, std.size.Width}) {
			return std.name
		}
	}
	return ""
}

func (s PageSize) String() string {
	if name := s.Name(); name != "" {
		return fmt.Sprintf("%gx%g (%s)", s.Width, s.Height, name)
	}
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// PageInfo describes one page of an open document
type PageInfo struct {
	Number   int      `json:"number"`             // 1-based position
	Rotation int      `json:"rotation"`           // Rotation state, 0 when unset
	Size     PageSize `json:"size"`               // Media box dimensions, unrotated
	SizeName string   `json:"size_name,omitempty"` // Standard size name if recognized
}

// Inventory is a snapshot of a document's page structure
type Inventory struct {
	PageCount int        `json:"page_count"`
	Pages     []PageInfo `json:"pages"`
}
