package conjparse

import (
	"regexp"
	"strings"
)

var (
	galleryRE    = regexp.MustCompile(`(?ms)<gallery>.*?</gallery>`)
	nowikiRE     = regexp.MustCompile(`(?ms)<nowiki>.*?</nowiki>`)
	commentRE    = regexp.MustCompile(`(?ms)<!--.*?-->`)
	refRE        = regexp.MustCompile(`(?ms)<ref[^>]*>.*?</ref>`)
	htmlTagRE    = regexp.MustCompile(`<[^>]*>`)
	linkRE       = regexp.MustCompile(`\[\[([^\]\|]*)(?:\|([^\]]*))?\]\]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CleanMarkup strips wiki markup from a line of definition text, leaving
// plain prose. Internal links keep their display text, templates and
// references are dropped entirely.
func CleanMarkup(line string) string {
	line = galleryRE.ReplaceAllString(line, "")
	line = nowikiRE.ReplaceAllString(line, "")
	line = commentRE.ReplaceAllString(line, "")
	line = stripTemplates(line)
	line = flattenLinks(line)
	line = strings.ReplaceAll(line, "'''", "")
	line = strings.ReplaceAll(line, "''", "")
	line = refRE.ReplaceAllString(line, "")
	line = htmlTagRE.ReplaceAllString(line, "")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(line, " "))
}

// stripTemplates removes balanced {{...}} invocations, nested ones
// included. Unbalanced braces are left as-is rather than guessed at.
func stripTemplates(line string) string {
	offsets := templateOffsets(line)
	if len(offsets) == 0 {
		return line
	}
	var b strings.Builder
	last := 0
	for _, o := range offsets {
		b.WriteString(line[last:o[0]])
		last = o[1]
	}
	b.WriteString(line[last:])
	return b.String()
}

// flattenLinks rewrites [[target|text]] as text and [[target]] as target,
// preserving cross-references as plain prose.
func flattenLinks(line string) string {
	return linkRE.ReplaceAllStringFunc(line, func(m string) string {
		parts := linkRE.FindStringSubmatch(m)
		if parts[2] != "" {
			return parts[2]
		}
		return parts[1]
	})
}

var hasLetterRE = regexp.MustCompile(`\pL`)

// ExtractSenses pulls the numbered definition lines out of a verb section
// body. Each "#" line is one sense; "#:" usage examples and non-textual
// leftovers are dropped. Sense order is preserved and duplicates are kept.
func ExtractSenses(section string) []Sense {
	var senses []Sense
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		// Section-separator templates like {{-sin-}} end the senses.
		if strings.Contains(strings.ToLower(line), "{{-") {
			break
		}
		body := strings.TrimLeft(line, "#")
		if strings.HasPrefix(line, "#:") || strings.HasPrefix(line, "#*") {
			continue
		}
		text := CleanMarkup(body)
		if !hasLetterRE.MatchString(text) {
			continue
		}
		senses = append(senses, Sense{PartOfSpeech: PoSVerb, Text: text})
	}
	return senses
}
