// Package fixture writes small, valid PDF files for tests.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Writer builds a PDF file from raw object bodies with a classic xref table
type Writer struct {
	objects    map[int][]byte
	nextObjNum int
	rootRef    string
	pdfVersion string
}

// NewWriter creates a new PDF writer
func NewWriter() *Writer {
	return &Writer{
		objects:    make(map[int][]byte),
		nextObjNum: 1,
		pdfVersion: "1.7",
	}
}

// AddObject adds a new object and returns its object number
func (w *Writer) AddObject(content []byte) int {
	objNum := w.nextObjNum
	w.SetObject(objNum, content)
	return objNum
}

// AddStreamObject adds an unfiltered stream object and returns its object number
func (w *Writer) AddStreamObject(data []byte) int {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<</Length %d>>\nstream\n", len(data))
	buf.Write(data)
	buf.WriteString("\nendstream")
	return w.AddObject(buf.Bytes())
}

// Reserve allocates an object number to be filled later with SetObject
func (w *Writer) Reserve() int {
	objNum := w.nextObjNum
	w.nextObjNum++
	return objNum
}

// SetObject sets or replaces an object at a specific number
func (w *Writer) SetObject(objNum int, content []byte) {
	w.objects[objNum] = content
	if objNum >= w.nextObjNum {
		w.nextObjNum = objNum + 1
	}
}

// SetRoot sets the root (catalog) object reference
func (w *Writer) SetRoot(objNum int) {
	w.rootRef = fmt.Sprintf("%d 0 R", objNum)
}

// Write outputs the complete PDF to the given writer
func (w *Writer) Write(out io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%%PDF-%s\n", w.pdfVersion)
	buf.Write([]byte{0x25, 0xE2, 0xE3, 0xCF, 0xD3, 0x0A}) // Binary marker

	var objNums []int
	for num := range w.objects {
		objNums = append(objNums, num)
	}
	sort.Ints(objNums)

	positions := make(map[int]int)
	for _, objNum := range objNums {
		positions[objNum] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", objNum)
		buf.Write(w.objects[objNum])
		buf.WriteString("\nendobj\n")
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", w.nextObjNum)
	fmt.Fprintf(&buf, "%010d %05d f \n", 0, 65535)
	for i := 1; i < w.nextObjNum; i++ {
		if pos, ok := positions[i]; ok {
			fmt.Fprintf(&buf, "%010d %05d n \n", pos, 0)
		} else {
			fmt.Fprintf(&buf, "%010d %05d f \n", 0, 1)
		}
	}

	buf.WriteString("trailer\n<<\n")
	fmt.Fprintf(&buf, "/Size %d\n", w.nextObjNum)
	if w.rootRef != "" {
		fmt.Fprintf(&buf, "/Root %s\n", w.rootRef)
	}
	buf.WriteString(">>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefPos)

	_, err := out.Write(buf.Bytes())
	return err
}

// Bytes returns the complete PDF as a byte slice
func (w *Writer) Bytes() []byte {
	var buf bytes.Buffer
	w.Write(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}
