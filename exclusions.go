package conjparse

import (
	"bufio"
	"io"
	"strings"
)

// LoadExclusions reads a lemma exclusion list: one lowercase lemma per
// line, blank lines and #-comments ignored. Excluded lemmas contribute
// nothing to either output table.
func LoadExclusions(r io.Reader) (map[string]bool, error) {
	lemmas := map[string]bool{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.ToLower(strings.TrimSpace(s.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lemmas[line] = true
	}
	return lemmas, s.Err()
}
