package conjparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An IndexEntry is one line of a multistream dump index: the bzip2 stream
// a page lives in, the page ID and the page title.
type IndexEntry struct {
	StreamOffset int64
	PageID       int64
	Title        string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", e.StreamOffset, e.PageID, e.Title)
}

func parseIndexLine(line string) (IndexEntry, error) {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("bad index record: %q", line)
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	return IndexEntry{StreamOffset: offset, PageID: id, Title: parts[2]}, nil
}

// An IndexReader reads a multistream dump index.
//
// Offsets in some dumps were written as 32-bit values and wrap; the reader
// assumes offsets were meant to be non-decreasing and unwraps them.
type IndexReader struct {
	s          *bufio.Scanner
	base       int64
	prevOffset int64
}

// NewIndexReader gets an index reader over the given stream of index lines.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{s: bufio.NewScanner(r)}
}

// Next gets the next entry from the index stream.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.s.Scan() {
		err := ir.s.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}

	e, err := parseIndexLine(ir.s.Text())
	if err != nil {
		return IndexEntry{}, err
	}
	if e.StreamOffset < ir.prevOffset {
		ir.base += 1 << 32
	}
	ir.prevOffset = e.StreamOffset
	e.StreamOffset += ir.base
	return e, nil
}

// An IndexSummaryReader reduces an index to (stream offset, page count)
// pairs, which is all the multistream parser needs to fan work out.
type IndexSummaryReader struct {
	index      *IndexReader
	prevOffset int64
	count      int
}

// NewIndexSummaryReader gets a new IndexSummaryReader from the given
// stream of index lines.
func NewIndexSummaryReader(r io.Reader) (*IndexSummaryReader, error) {
	rv := &IndexSummaryReader{index: NewIndexReader(r)}
	first, err := rv.index.Next()
	if err != nil {
		return nil, err
	}
	rv.prevOffset = first.StreamOffset
	rv.count = 1
	return rv, nil
}

// Next gets the next offset and count from the index summary reader.
//
// The last summary is returned together with io.EOF.
func (isr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := isr.index.Next()
		if err != nil {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = 0, 0
			return offset, count, err
		}

		if e.StreamOffset != isr.prevOffset {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = e.StreamOffset, 1
			return offset, count, nil
		}
		isr.count++
	}
}
