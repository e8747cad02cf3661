package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benedoc-inc/pagekit/types"
)

// Page describes one generated page
type Page struct {
	Size   types.PageSize
	Rotate *int // nil writes no /Rotate entry
}

// Builder assembles a document of simple pages, each with a one-rectangle content stream
type Builder struct {
	pages           []Page
	inheritedRotate *int
}

// New creates an empty document builder
func New() *Builder {
	return &Builder{}
}

// AddPage appends an unrotated page
func (b *Builder) AddPage(size types.PageSize) *Builder {
	b.pages = append(b.pages, Page{Size: size})
	return b
}

// AddPages appends n unrotated pages of the same size
func (b *Builder) AddPages(n int, size types.PageSize) *Builder {
	for i := 0; i < n; i++ {
		b.AddPage(size)
	}
	return b
}

// AddRotatedPage appends a page carrying its own /Rotate entry
func (b *Builder) AddRotatedPage(size types.PageSize, rotate int) *Builder {
	b.pages = append(b.pages, Page{Size: size, Rotate: &rotate})
	return b
}

// InheritRotation sets /Rotate on the page tree root so pages without their own entry inherit it
func (b *Builder) InheritRotation(rotate int) *Builder {
	b.inheritedRotate = &rotate
	return b
}

// Bytes renders the document
func (b *Builder) Bytes() []byte {
	w := NewWriter()

	catalog := w.Reserve()
	pagesNode := w.Reserve()

	kids := make([]string, 0, len(b.pages))
	for i, p := range b.pages {
		content := w.AddStreamObject([]byte(fmt.Sprintf("q 0 0 1 rg %d %d 20 20 re f Q", 10+i, 10+i)))

		var dict strings.Builder
		fmt.Fprintf(&dict, "<</Type /Page /Parent %d 0 R /MediaBox [0 0 %g %g] /Resources <<>> /Contents %d 0 R",
			pagesNode, p.Size.Width, p.Size.Height, content)
		if p.Rotate != nil {
			fmt.Fprintf(&dict, " /Rotate %d", *p.Rotate)
		}
		dict.WriteString(">>")

		page := w.AddObject([]byte(dict.String()))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}

	var node strings.Builder
	fmt.Fprintf(&node, "<</Type /Pages /Kids [%s] /Count %d", strings.Join(kids, " "), len(b.pages))
	if b.inheritedRotate != nil {
		fmt.Fprintf(&node, " /Rotate %d", *b.inheritedRotate)
	}
	node.WriteString(">>")

	w.SetObject(pagesNode, []byte(node.String()))
	w.SetObject(catalog, []byte(fmt.Sprintf("<</Type /Catalog /Pages %d 0 R>>", pagesNode)))
	w.SetRoot(catalog)

	return w.Bytes()
}

// WriteFile renders the document into dir/name and returns the path
func (b *Builder) WriteFile(tb testing.TB, dir, name string) string {
	tb.Helper()
	return WriteBytes(tb, dir, name, b.Bytes())
}

// Pages returns an n-page document of the given size
func Pages(n int, size types.PageSize) []byte {
	return New().AddPages(n, size).Bytes()
}

// WriteBytes writes data into dir/name and returns the path
func WriteBytes(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}
