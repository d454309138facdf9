package conjparse

import (
	"regexp"
	"strings"
)

// PartOfSpeech tags a sense with its grammatical category.
type PartOfSpeech string

const (
	PoSVerb      PartOfSpeech = "verb"
	PoSNoun      PartOfSpeech = "noun"
	PoSAdjective PartOfSpeech = "adjective"
	PoSAdverb    PartOfSpeech = "adverb"
)

// A Sense is one cleaned definition of a lemma.
type Sense struct {
	PartOfSpeech PartOfSpeech `json:"pos"`
	Text         string       `json:"text"`
}

// A VerbEntry is one verb parsed out of a dump page. A nil Table means the
// entry is definitions-only and contributes nothing to the forms table.
type VerbEntry struct {
	Infinitive string
	Table      *ConjugationTable
	Senses     []Sense

	// ReflexiveOf names the base verb whose conjugation table this
	// reflexive headword reuses; resolved in the builder's second pass.
	ReflexiveOf string
	// AlternativeOf names the preferred spelling this entry defers to.
	AlternativeOf string

	// Page provenance, used to merge duplicate lemmas deterministically.
	pageID uint64
	order  int
}

var (
	verbHeadingRE = regexp.MustCompile(`(?m)^===?=?\s*Verb\s*===?=?\s*$`)
	headingRE     = regexp.MustCompile(`(?m)^==`)
	lemmaRE       = regexp.MustCompile(`^[\pL·'\- ]+$`)
	altFormRE     = regexp.MustCompile(`\{\{forma-a\|ca\|([^}|]+)\}\}`)
)

// Conjugation template names recognized in verb sections. ca-conj-ref
// points at another verb's table instead of carrying its own.
const (
	tmplConj     = "ca-conj"
	tmplConjRef  = "ca-conj-ref"
	tmplVerbHead = "ca-verb"
)

// ValidLemma reports whether s can be a dictionary headword.
func ValidLemma(s string) bool {
	return s != "" && lemmaRE.MatchString(s)
}

// verbSections returns the bodies of every Verb section in a page.
func verbSections(text string) []string {
	var sections []string
	for _, loc := range verbHeadingRE.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if end := headingRE.FindStringIndex(rest); end != nil {
			rest = rest[:end[0]]
		}
		sections = append(sections, rest)
	}
	return sections
}

// ParseVerbs extracts the verb entries from one dump page. It returns nil
// when the page is not a main-namespace Catalan verb. A page may yield
// several entries when homograph verbs share the title: each conjugation
// template in a section starts a new entry which owns the sense lines that
// follow it.
func ParseVerbs(p *Page) []VerbEntry {
	title := strings.ToLower(strings.TrimSpace(p.Title))
	if !mainNamespace(p.Title) || !ValidLemma(title) {
		return nil
	}
	text := p.Text()
	if !strings.Contains(text, "{{"+tmplVerbHead) {
		return nil
	}

	var entries []VerbEntry
	for _, section := range verbSections(text) {
		parsed := parseSection(title, section)
		// An alternative-form reference only counts inside the verb
		// section; other parts of speech keep theirs to themselves.
		if m := altFormRE.FindStringSubmatch(section); m != nil {
			alternative := strings.TrimSpace(m[1])
			for i := range parsed {
				parsed[i].AlternativeOf = alternative
			}
		}
		entries = append(entries, parsed...)
	}
	if entries == nil {
		return nil
	}

	for i := range entries {
		entries[i].pageID = p.ID
		entries[i].order = i
	}
	return entries
}

// parseSection splits one Verb section into entries. The section body is
// segmented at each conjugation template; senses in a segment belong to
// the entry its template opened. Sections with no template at all yield a
// single definitions-only entry.
func parseSection(title, section string) []VerbEntry {
	type segment struct {
		table *ConjugationTable
		refOf string
		text  string
	}

	var segments []segment
	var bounds [][2]int
	var tmpls []*Template
	for pos := 0; ; {
		open, end, ok := findTemplate(section, pos)
		if !ok {
			break
		}
		pos = end
		t := ParseTemplate(section[open:end])
		if t.Name != tmplConj && t.Name != tmplConjRef {
			continue
		}
		bounds = append(bounds, [2]int{open, end})
		tmpls = append(tmpls, t)
	}

	if len(tmpls) == 0 {
		senses := ExtractSenses(section)
		if senses == nil {
			return nil
		}
		entry := VerbEntry{Infinitive: title, Senses: senses}
		if base := StripReflexive(title); base != title {
			entry.ReflexiveOf = base
		}
		return []VerbEntry{entry}
	}

	for i, t := range tmpls {
		end := len(section)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		seg := segment{text: section[bounds[i][1]:end]}

		switch t.Name {
		case tmplConjRef:
			seg.refOf = t.Arg(1)
			if seg.refOf == "" {
				seg.refOf = StripReflexive(title)
			}
		case tmplConj:
			if t.Arg(1) == "" {
				t.Pos = append([]string{title}, t.Pos...)
			}
			// A broken template degrades the entry to
			// definitions-only rather than killing the page.
			seg.table, _ = ParseConjugation(t)
		}
		segments = append(segments, seg)
	}

	// Senses ahead of the first template still belong to the first verb.
	segments[0].text = section[:bounds[0][0]] + segments[0].text

	entries := make([]VerbEntry, 0, len(segments))
	for _, seg := range segments {
		entry := VerbEntry{
			Infinitive:  title,
			Table:       seg.table,
			Senses:      ExtractSenses(seg.text),
			ReflexiveOf: seg.refOf,
		}
		if entry.ReflexiveOf == "" && entry.Table == nil {
			if base := StripReflexive(title); base != title {
				entry.ReflexiveOf = base
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
