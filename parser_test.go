package conjparse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const dumpHeader = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" xml:lang="ca">
  <siteinfo>
    <sitename>Viccionari</sitename>
    <base>https://ca.wiktionary.org/wiki/Portada</base>
    <generator>MediaWiki 1.43</generator>
    <case>case-sensitive</case>
  </siteinfo>
`

func page(title, id, text string) string {
	return `  <page>
    <title>` + title + `</title>
    <id>` + id + `</id>
    <revision>
      <id>100</id>
      <timestamp>2024-01-01T00:00:00Z</timestamp>
      <contributor><username>algu</username><id>7</id></contributor>
      <text>` + text + `</text>
    </revision>
  </page>
`
}

func TestParserBasic(t *testing.T) {
	dump := dumpHeader +
		page("parlar", "1", "{{ca-verb|parlar}}") +
		page("casa", "2", "{{ca-nom|f}}") +
		"</mediawiki>"

	p, err := NewParser(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Error setting up parser: %v", err)
	}
	if p.SiteInfo().SiteName != "Viccionari" {
		t.Errorf("Wrong site name: %v", p.SiteInfo().SiteName)
	}

	titles := []string{}
	for {
		pg, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading page: %v", err)
		}
		titles = append(titles, pg.Title)
	}
	if len(titles) != 2 || titles[0] != "parlar" || titles[1] != "casa" {
		t.Fatalf("Wrong titles: %v", titles)
	}
	if p.Skipped() != 0 {
		t.Errorf("Expected no skips, got %v", p.Skipped())
	}
}

func TestParserEmptyDump(t *testing.T) {
	p, err := NewParser(strings.NewReader(dumpHeader + "</mediawiki>"))
	if err != nil {
		t.Fatalf("Error setting up parser: %v", err)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
}

func TestParserBadFormat(t *testing.T) {
	_, err := NewParser(strings.NewReader("this is not a dump at all"))
	if !errors.Is(err, ErrDumpFormat) {
		t.Fatalf("Expected ErrDumpFormat, got %v", err)
	}
}

func TestParserSkipsMalformedEntry(t *testing.T) {
	dump := dumpHeader +
		page("parlar", "1", "{{ca-verb|parlar}}") +
		page("trencat", "2", "&undefined; entity") +
		page("dormir", "3", "{{ca-verb|dormir}}") +
		"</mediawiki>"

	p, err := NewParser(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Error setting up parser: %v", err)
	}

	titles := []string{}
	for {
		pg, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error reading page: %v", err)
		}
		titles = append(titles, pg.Title)
	}
	if len(titles) != 2 || titles[0] != "parlar" || titles[1] != "dormir" {
		t.Fatalf("Wrong surviving titles: %v", titles)
	}
	if p.Skipped() != 1 {
		t.Fatalf("Expected exactly 1 skip, got %v", p.Skipped())
	}
	samples := p.SkipSamples()
	if len(samples) != 1 || samples[0] != "trencat" {
		t.Fatalf("Wrong skip samples: %v", samples)
	}
}

func TestParserUnterminatedTail(t *testing.T) {
	dump := dumpHeader +
		page("parlar", "1", "{{ca-verb|parlar}}") +
		"  <page>\n    <title>penjat</title>\n" // never closed

	p, err := NewParser(strings.NewReader(dump))
	if err != nil {
		t.Fatalf("Error setting up parser: %v", err)
	}

	pg, err := p.Next()
	if err != nil || pg.Title != "parlar" {
		t.Fatalf("Expected parlar, got %v/%v", pg, err)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
	if p.Skipped() != 1 {
		t.Fatalf("Expected the unterminated page skipped, got %v", p.Skipped())
	}
}

type failingReader struct {
	data io.Reader
	err  error
}

func (r *failingReader) Read(b []byte) (int, error) {
	n, err := r.data.Read(b)
	if err == io.EOF {
		return n, r.err
	}
	return n, err
}

func TestParserSurfacesReadErrors(t *testing.T) {
	corrupt := errors.New("bzip2 data invalid: bad magic value")
	dump := dumpHeader + page("parlar", "1", "x")

	p, err := NewParser(&failingReader{strings.NewReader(dump), corrupt})
	if err != nil {
		t.Fatalf("Error setting up parser: %v", err)
	}

	if _, err := p.Next(); err != nil {
		t.Fatalf("First page should parse, got %v", err)
	}
	_, err = p.Next()
	if !errors.Is(err, corrupt) {
		t.Fatalf("Expected corruption error, got %v", err)
	}
}

func TestPageText(t *testing.T) {
	p := &Page{}
	if p.Text() != "" {
		t.Errorf("Expected empty text for revisionless page")
	}
}
