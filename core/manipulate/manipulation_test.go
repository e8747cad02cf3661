package manipulate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/benedoc-inc/pagekit/internal/fixture"
	"github.com/benedoc-inc/pagekit/types"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
	}{
		{"subset", []int{1, 3, 5}},
		{"reorder", []int{5, 4, 3, 2, 1}},
		{"duplicates", []int{1, 1, 2}},
		{"single", []int{3}},
		{"grow", []int{1, 2, 3, 4, 5, 5, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			d := env.open(env.write("numbered.pdf", numberedPages(5)))

			if err := d.Select(tt.pages...); err != nil {
				t.Fatalf("Select(%v) error = %v", tt.pages, err)
			}
			if d.Count() != len(tt.pages) {
				t.Errorf("Count() = %d, want %d", d.Count(), len(tt.pages))
			}
			if got := pageIDs(t, d); !equalInts(got, tt.pages) {
				t.Errorf("pages after Select(%v) = %v", tt.pages, got)
			}
		})
	}
}

func TestSelect_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	d := env.open(env.write("numbered.pdf", numberedPages(5)))

	err := d.Select()
	if !errors.Is(err, types.ErrArgument) || types.ParamOf(err) != types.ParamPageNumbers {
		t.Errorf("Select() error = %v, want argument error on pageNumbers", err)
	}

	for _, pages := range [][]int{{1, 3, 6}, {0, 1}, {-1}} {
		err := d.Select(pages...)
		if !errors.Is(err, types.ErrRange) || types.ParamOf(err) != types.ParamPageNumbers {
			t.Errorf("Select(%v) error = %v, want range error on pageNumbers", pages, err)
		}
	}

	if d.Count() != 5 {
		t.Errorf("Count() = %d after rejected selections, want 5", d.Count())
	}
}

func TestSelect_ThenRotateAndWrite(t *testing.T) {
	env := newTestEnv(t)
	d := env.open(env.write("rotated.pdf", fixture.New().
		AddRotatedPage(types.PageSizeA4, -90).
		AddPages(2, types.PageSizeA4)))

	// Ranges are checked against the current count after a selection
	if err := d.Select(3, 1); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if _, err := d.Rotate(3, 90); types.ParamOf(err) != types.ParamPageNumber {
		t.Errorf("Rotate(3) after shrinking to 2 pages error = %v", err)
	}
	if got, _ := d.PageAngle(2); got != -90 {
		t.Errorf("PageAngle(2) = %d, want the selected page's -90", got)
	}
	if _, err := d.Rotate(1, 180); err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	out := filepath.Join(env.srcDir, "selected.pdf")
	if err := d.Write(out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	reopened := env.open(out)
	if reopened.Count() != 2 {
		t.Errorf("reopened Count() = %d, want 2", reopened.Count())
	}
	if got, _ := reopened.PageAngle(1); got != 180 {
		t.Errorf("reopened PageAngle(1) = %d, want 180", got)
	}
	if got, _ := reopened.PageAngle(2); got != -90 {
		t.Errorf("reopened PageAngle(2) = %d, want -90", got)
	}
}

func TestMerge(t *testing.T) {
	env := newTestEnv(t)
	a := env.openPages(5)
	b := env.openPages(5)
	c := env.openPages(5)

	two, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge(b) error = %v", err)
	}
	defer two.Close()
	if two.Count() != 10 {
		t.Errorf("Merge(b).Count() = %d, want 10", two.Count())
	}

	three, err := a.Merge(b, c)
	if err != nil {
		t.Fatalf("Merge(b, c) error = %v", err)
	}
	defer three.Close()
	if three.Count() != 15 {
		t.Errorf("Merge(b, c).Count() = %d, want 15", three.Count())
	}

	for name, d := range map[string]*Document{"a": a, "b": b, "c": c} {
		if d.Count() != 5 {
			t.Errorf("%s.Count() = %d after merge, want 5", name, d.Count())
		}
	}

	// Each handle owns a distinct working copy
	seen := map[string]bool{}
	for _, d := range []*Document{a, b, c, two, three} {
		if seen[d.copy.Path()] {
			t.Errorf("working copy %s shared between handles", d.copy.Path())
		}
		seen[d.copy.Path()] = true
	}
}

func TestMerge_OrderAndRotation(t *testing.T) {
	env := newTestEnv(t)
	a := env.open(env.write("a.pdf", fixture.New().AddPages(2, types.PageSizeA4)))
	b := env.open(env.write("b.pdf", fixture.New().AddPages(1, types.PageSizeA4)))
	a.Rotate(2, -90)
	b.Rotate(1, 180)

	merged, err := a.Merge(b, a)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	defer merged.Close()

	want := []int{0, -90, 180, 0, -90}
	if merged.Count() != len(want) {
		t.Fatalf("Count() = %d, want %d", merged.Count(), len(want))
	}
	for i, w := range want {
		if got, _ := merged.PageAngle(i + 1); got != w {
			t.Errorf("PageAngle(%d) = %d, want %d", i+1, got, w)
		}
	}
}

func TestMerge_IndependentLifecycles(t *testing.T) {
	env := newTestEnv(t)
	a := env.openPages(2)
	b := env.openPages(3)

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	// Operands stay usable after the result is closed, and vice versa
	if err := merged.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := a.Rotate(1, 90); err != nil {
		t.Errorf("operand unusable after closing merge result: %v", err)
	}

	again, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	defer again.Close()
	b.Close()
	if got, _ := again.PageAngle(1); got != 90 {
		t.Errorf("merge result PageAngle(1) = %d, want 90", got)
	}
	// Mutating the result does not reach the operands
	again.Rotate(2, 180)
	if got, _ := a.PageAngle(2); got != 0 {
		t.Errorf("operand PageAngle(2) = %d, want 0", got)
	}
}

func TestMerge_Geometry(t *testing.T) {
	env := newTestEnv(t)
	letter := env.open(env.write("letter.pdf", fixture.New().AddPages(2, types.PageSizeLetter)))
	a4 := env.open(env.write("a4.pdf", fixture.New().AddPages(2, types.PageSizeA4)))

	merged, err := letter.Merge(a4)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	defer merged.Close()

	for n := 1; n <= merged.Count(); n++ {
		size, err := merged.PageSize(n)
		if err != nil {
			t.Fatalf("PageSize(%d) error = %v", n, err)
		}
		if !size.Equal(types.PageSizeLetter) {
			t.Errorf("PageSize(%d) = %v, want Letter", n, size)
		}
	}

	warnings := merged.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("Warnings() = %v, want 2 geometry mismatches", warnings)
	}
	for i, w := range warnings {
		if w.Code != types.WarnCodeGeometryMismatch {
			t.Errorf("warning %d code = %s", i, w.Code)
		}
		if w.Context["document"] != 2 || w.Context["page"] != i+1 {
			t.Errorf("warning %d context = %v, want document 2 page %d", i, w.Context, i+1)
		}
	}
	if len(letter.Warnings()) != 0 {
		t.Error("warnings recorded on the primary document")
	}
}

func TestMerge_WarningsDisabled(t *testing.T) {
	env := newTestEnv(t)
	opts := env.options()
	opts.DisableWarnings = true

	letter, err := Open(env.write("letter.pdf", fixture.New().AddPages(1, types.PageSizeLetter)), opts)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer letter.Close()
	a4 := env.open(env.write("a4.pdf", fixture.New().AddPages(1, types.PageSizeA4)))

	merged, err := letter.Merge(a4)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	defer merged.Close()

	if len(merged.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none when disabled", merged.Warnings())
	}
}

func TestMerge_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	a := env.openPages(2)

	_, err := a.Merge()
	if !errors.Is(err, types.ErrArgument) || types.ParamOf(err) != types.ParamOthers {
		t.Errorf("Merge() error = %v, want argument error on others", err)
	}

	closed := env.openPages(1)
	closed.Close()
	for _, others := range [][]*Document{{nil}, {closed}} {
		if _, err := a.Merge(others...); types.ParamOf(err) != types.ParamOthers {
			t.Errorf("Merge(%v) error = %v, want argument error on others", others, err)
		}
	}

	// Only the open operands' copies remain
	if copies := env.workingCopies(); len(copies) != 1 {
		t.Errorf("working copies = %v, want 1", copies)
	}
}

func TestMerge_CloseRemovesResultCopy(t *testing.T) {
	env := newTestEnv(t)
	a := env.openPages(1)
	b := env.openPages(2)

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	path := merged.copy.Path()
	merged.Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("merge working copy %s survived Close", path)
	}
}

func TestSplit(t *testing.T) {
	env := newTestEnv(t)
	d := env.open(env.write("numbered.pdf", numberedPages(6)))

	parts, err := d.Split(PageRange{1, 2}, PageRange{3, 5}, PageRange{6, 6})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	defer closeAll(parts)

	want := [][]int{{1, 2}, {3, 4, 5}, {6}}
	if len(parts) != len(want) {
		t.Fatalf("Split() returned %d parts, want %d", len(parts), len(want))
	}
	for i, part := range parts {
		if got := pageIDs(t, part); !equalInts(got, want[i]) {
			t.Errorf("part %d pages = %v, want %v", i+1, got, want[i])
		}
	}
	if d.Count() != 6 {
		t.Errorf("source Count() = %d after Split, want 6", d.Count())
	}
}

func TestSplit_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	d := env.openPages(4)

	if _, err := d.Split(); types.ParamOf(err) != types.ParamRanges {
		t.Errorf("Split() error = %v, want argument error on ranges", err)
	}
	for _, r := range []PageRange{{0, 2}, {3, 2}, {2, 5}} {
		if _, err := d.Split(r); !errors.Is(err, types.ErrRange) || types.ParamOf(err) != types.ParamRanges {
			t.Errorf("Split(%v) error = %v, want range error on ranges", r, err)
		}
	}
	if copies := env.workingCopies(); len(copies) != 1 {
		t.Errorf("working copies = %v after rejected splits, want 1", copies)
	}
}

func TestSplitEvery(t *testing.T) {
	env := newTestEnv(t)
	d := env.openPages(7)

	parts, err := d.SplitEvery(3)
	if err != nil {
		t.Fatalf("SplitEvery() error = %v", err)
	}
	defer closeAll(parts)

	expectedCounts := []int{3, 3, 1}
	if len(parts) != len(expectedCounts) {
		t.Fatalf("SplitEvery(3) returned %d parts, want 3", len(parts))
	}
	for i, part := range parts {
		if part.Count() != expectedCounts[i] {
			t.Errorf("part %d Count() = %d, want %d", i+1, part.Count(), expectedCounts[i])
		}
	}

	if _, err := d.SplitEvery(0); types.ParamOf(err) != types.ParamPagesPer {
		t.Errorf("SplitEvery(0) error = %v", err)
	}
}

func TestInventory(t *testing.T) {
	env := newTestEnv(t)
	d := env.open(env.write("mixed.pdf", fixture.New().
		AddPage(types.PageSizeA4).
		AddRotatedPage(types.PageSizeLetter, -90).
		AddPage(types.PageSize{Width: 300, Height: 300})))

	var buf bytes.Buffer
	if err := d.WriteInventory(&buf); err != nil {
		t.Fatalf("WriteInventory() error = %v", err)
	}

	var inv types.Inventory
	if err := json.Unmarshal(buf.Bytes(), &inv); err != nil {
		t.Fatalf("inventory is not valid JSON: %v\n%s", err, buf.String())
	}
	if inv.PageCount != 3 || len(inv.Pages) != 3 {
		t.Fatalf("inventory = %+v, want 3 pages", inv)
	}

	want := []types.PageInfo{
		{Number: 1, Rotation: 0, Size: types.PageSizeA4, SizeName: "A4"},
		{Number: 2, Rotation: -90, Size: types.PageSizeLetter, SizeName: "Letter"},
		{Number: 3, Rotation: 0, Size: types.PageSize{Width: 300, Height: 300}},
	}
	for i, w := range want {
		got := inv.Pages[i]
		if got.Number != w.Number || got.Rotation != w.Rotation || !got.Size.Equal(w.Size) || got.SizeName != w.SizeName {
			t.Errorf("page %d = %+v, want %+v", i+1, got, w)
		}
	}
}

func TestPageSize_OutOfRange(t *testing.T) {
	env := newTestEnv(t)
	d := env.openPages(2)

	if _, err := d.PageSize(3); types.ParamOf(err) != types.ParamPageNumber {
		t.Errorf("PageSize(3) error = %v, want range error on pageNumber", err)
	}
}
