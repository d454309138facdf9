package conjparse

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A user who contributed a revision.
type Contributor struct {
	ID       uint64 `xml:"id"`
	Username string `xml:"username"`
}

// A revision to a page.
type Revision struct {
	ID          uint64      `xml:"id"`
	Timestamp   string      `xml:"timestamp"`
	Contributor Contributor `xml:"contributor"`
	Comment     string      `xml:"comment"`
	Text        string      `xml:"text"`
}

// A wiki page: one raw dictionary entry.
type Page struct {
	Title     string     `xml:"title"`
	ID        uint64     `xml:"id"`
	Revisions []Revision `xml:"revision"`
}

// Text returns the body of the page's first revision.
func (p *Page) Text() string {
	if len(p.Revisions) == 0 {
		return ""
	}
	return p.Revisions[0].Text
}

// That which emits wiki pages.
type Parser interface {
	// Next returns the next page in document order, or io.EOF at the end
	// of the dump.
	Next() (*Page, error)
	// SiteInfo returns the toplevel site info of the dump.
	SiteInfo() SiteInfo
	// Skipped reports how many malformed pages were skipped so far.
	Skipped() int64
	// SkipSamples returns titles (or snippets) of skipped pages, capped.
	SkipSamples() []string
}

const (
	// A single page larger than this has almost certainly lost its
	// closing tag, so there is no boundary left to resync on.
	maxEntrySize = 64 << 20

	maxSkipSamples = 20

	pageOpen  = "<page"
	pageClose = "</page>"
)

var skipTitleRE = regexp.MustCompile(`<title>([^<]*)</title>`)

// pageScanner cuts a decompressed dump stream into page-sized chunks and
// decodes them independently, so one bad page never poisons the rest of
// the stream.
type pageScanner struct {
	br      *bufio.Reader
	skipped int64
	samples []string
	done    bool
}

func newPageScanner(r io.Reader) *pageScanner {
	return &pageScanner{br: bufio.NewReaderSize(r, 1<<20)}
}

// readThrough reads until buf ends with delim, returning everything read.
// The data read so far is returned alongside any error.
func readThrough(br *bufio.Reader, delim string, max int) ([]byte, error) {
	var buf []byte
	last := delim[len(delim)-1]
	for {
		chunk, err := br.ReadBytes(last)
		buf = append(buf, chunk...)
		if err != nil {
			return buf, err
		}
		if bytes.HasSuffix(buf, []byte(delim)) {
			return buf, nil
		}
		if len(buf) > max {
			return buf, ErrEntryTooLarge
		}
	}
}

func (s *pageScanner) recordSkip(chunk []byte) {
	s.skipped++
	if len(s.samples) >= maxSkipSamples {
		return
	}
	sample := "(untitled)"
	if m := skipTitleRE.FindSubmatch(chunk); m != nil {
		sample = string(m[1])
	}
	s.samples = append(s.samples, sample)
}

// next returns the next well-formed page, skipping past malformed ones.
func (s *pageScanner) next() (*Page, error) {
	for {
		if s.done {
			return nil, io.EOF
		}

		chunk, err := readThrough(s.br, pageClose, maxEntrySize)
		switch err {
		case nil:
		case io.EOF:
			// Trailing bytes after the last page. An unterminated
			// page in there is one more skip, not an error.
			s.done = true
			if bytes.Contains(chunk, []byte(pageOpen)) {
				s.recordSkip(chunk)
			}
			return nil, io.EOF
		case ErrEntryTooLarge:
			return nil, fmt.Errorf("%w (title=%q)",
				err, firstTitle(chunk))
		default:
			return nil, fmt.Errorf("reading dump: %w", err)
		}

		start := bytes.Index(chunk, []byte(pageOpen))
		if start < 0 {
			// A stray close tag with no matching open.
			s.recordSkip(chunk)
			continue
		}

		page := new(Page)
		if err := xml.Unmarshal(chunk[start:], page); err != nil {
			s.recordSkip(chunk)
			continue
		}
		return page, nil
	}
}

func firstTitle(chunk []byte) string {
	if m := skipTitleRE.FindSubmatch(chunk); m != nil {
		return string(m[1])
	}
	return ""
}

type singleStreamParser struct {
	siteInfo SiteInfo
	scanner  *pageScanner
}

// NewParser gets a dump parser reading from the given (already
// decompressed) reader. It returns ErrDumpFormat if the stream does not
// start with a MediaWiki dump header.
func NewParser(r io.Reader) (Parser, error) {
	scanner := newPageScanner(r)

	// Everything before the first page is the dump header. The header
	// must name the mediawiki toplevel element; site info is optional
	// in hand-rolled exports.
	header, err := readThrough(scanner.br, pageOpen, maxEntrySize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading dump header: %w", err)
	}
	atEOF := err == io.EOF

	if !bytes.Contains(header, []byte("<mediawiki")) {
		return nil, ErrDumpFormat
	}

	si := SiteInfo{}
	if start := bytes.Index(header, []byte("<siteinfo")); start >= 0 {
		if end := bytes.Index(header, []byte("</siteinfo>")); end > start {
			raw := header[start : end+len("</siteinfo>")]
			if err := xml.Unmarshal(raw, &si); err != nil {
				return nil, fmt.Errorf("%w: bad site info: %v",
					ErrDumpFormat, err)
			}
		}
	}

	p := &singleStreamParser{siteInfo: si, scanner: scanner}
	if atEOF {
		p.scanner.done = true
	} else {
		// The open tag was consumed while locating the header; give
		// it back so the scanner sees a complete first page.
		p.scanner.br = prepend([]byte(pageOpen), p.scanner.br)
	}
	return p, nil
}

func prepend(head []byte, br *bufio.Reader) *bufio.Reader {
	return bufio.NewReaderSize(
		io.MultiReader(bytes.NewReader(head), br), 1<<20)
}

func (p *singleStreamParser) Next() (*Page, error) {
	return p.scanner.next()
}

func (p *singleStreamParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

func (p *singleStreamParser) Skipped() int64 {
	return p.scanner.skipped
}

func (p *singleStreamParser) SkipSamples() []string {
	return append([]string(nil), p.scanner.samples...)
}

// mainNamespace reports whether a title lives in the main namespace.
// Viccionari keeps conjugation appendixes and talk pages elsewhere.
func mainNamespace(title string) bool {
	return !strings.ContainsRune(title, ':')
}
