package conjparse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// Artifact file names inside the output directory.
const (
	FormsFile           = "forms.txt"
	DefinitionsFile     = "definitions.txt"
	DefinitionsJSONFile = "definitions.json"
)

// A FormsTable is the reverse index: every distinct normalized surface
// form mapped to its sorted lemma candidates. Backed by a red-black tree
// so that writing it out comes sorted for free, keeping version-over-
// version diffs meaningful.
type FormsTable struct {
	tree *redblacktree.Tree
}

func NewFormsTable() *FormsTable {
	return &FormsTable{tree: redblacktree.NewWithStringComparator()}
}

// Add records that form belongs to lemma. True homographs accumulate as
// candidates; re-adding an existing pair is a no-op, so merge order does
// not matter.
func (ft *FormsTable) Add(form, lemma string) {
	form = NormalizeForm(form)
	if form == "" || lemma == "" {
		return
	}

	var lemmas []string
	if v, ok := ft.tree.Get(form); ok {
		lemmas = v.([]string)
	}
	i := sort.SearchStrings(lemmas, lemma)
	if i < len(lemmas) && lemmas[i] == lemma {
		return
	}
	lemmas = append(lemmas, "")
	copy(lemmas[i+1:], lemmas[i:])
	lemmas[i] = lemma
	ft.tree.Put(form, lemmas)
}

// Lemmas returns the candidate lemmas for a normalized form, nil when the
// form is unknown.
func (ft *FormsTable) Lemmas(form string) []string {
	v, ok := ft.tree.Get(NormalizeForm(form))
	if !ok {
		return nil
	}
	return append([]string(nil), v.([]string)...)
}

// Len returns the number of distinct forms.
func (ft *FormsTable) Len() int {
	return ft.tree.Size()
}

// Each visits every record in form order.
func (ft *FormsTable) Each(fn func(form string, lemmas []string)) {
	it := ft.tree.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value().([]string))
	}
}

// WriteTo writes the table sorted by form, one record per line:
// form<TAB>lemma[,lemma...]
func (ft *FormsTable) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	it := ft.tree.Iterator()
	for it.Next() {
		c, err := fmt.Fprintf(bw, "%s\t%s\n",
			it.Key().(string), strings.Join(it.Value().([]string), ","))
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadFormsTable loads a forms table written by WriteTo.
func ReadFormsTable(r io.Reader) (*FormsTable, error) {
	ft := NewFormsTable()
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		form, lemmas, ok := strings.Cut(s.Text(), "\t")
		if !ok {
			return nil, fmt.Errorf("bad forms record: %q", s.Text())
		}
		for _, lemma := range strings.Split(lemmas, ",") {
			ft.Add(form, lemma)
		}
	}
	return ft, s.Err()
}

// A DefinitionStore maps each lemma to its ordered senses plus an optional
// usage note.
type DefinitionStore struct {
	senses map[string][]Sense
	notes  map[string]string
}

func NewDefinitionStore() *DefinitionStore {
	return &DefinitionStore{
		senses: map[string][]Sense{},
		notes:  map[string]string{},
	}
}

// Put appends senses for a lemma, dropping exact-text repeats of senses
// already present. Sense order within one call is preserved.
func (ds *DefinitionStore) Put(lemma string, senses []Sense) {
	have := ds.senses[lemma]
	for _, s := range senses {
		dup := false
		for _, h := range have {
			if h.Text == s.Text {
				dup = true
				break
			}
		}
		if !dup {
			have = append(have, s)
		}
	}
	ds.senses[lemma] = have
}

// SetNote attaches a usage note to a lemma.
func (ds *DefinitionStore) SetNote(lemma, note string) {
	ds.notes[lemma] = note
}

// Senses returns the ordered senses for a lemma.
func (ds *DefinitionStore) Senses(lemma string) []Sense {
	return append([]Sense(nil), ds.senses[lemma]...)
}

// Len returns the number of lemmas with definitions.
func (ds *DefinitionStore) Len() int {
	return len(ds.senses)
}

// Each visits every lemma in sorted order.
func (ds *DefinitionStore) Each(fn func(lemma string, senses []Sense, note string)) {
	for _, lemma := range ds.sortedLemmas() {
		fn(lemma, ds.senses[lemma], ds.notes[lemma])
	}
}

func (ds *DefinitionStore) sortedLemmas() []string {
	lemmas := make([]string, 0, len(ds.senses))
	for lemma := range ds.senses {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	return lemmas
}

// WriteTo writes the store sorted by lemma, one record per line:
// lemma<TAB>sense[<TAB>sense...]
func (ds *DefinitionStore) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, lemma := range ds.sortedLemmas() {
		texts := make([]string, 0, len(ds.senses[lemma])+1)
		texts = append(texts, lemma)
		for _, s := range ds.senses[lemma] {
			texts = append(texts, s.Text)
		}
		c, err := fmt.Fprintln(bw, strings.Join(texts, "\t"))
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadDefinitionsTable loads a definitions table written by WriteTo.
func ReadDefinitionsTable(r io.Reader) (*DefinitionStore, error) {
	ds := NewDefinitionStore()
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		fields := strings.Split(s.Text(), "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("bad definitions record: %q", s.Text())
		}
		senses := make([]Sense, 0, len(fields)-1)
		for _, text := range fields[1:] {
			senses = append(senses, Sense{PartOfSpeech: PoSVerb, Text: text})
		}
		ds.Put(fields[0], senses)
	}
	return ds, s.Err()
}

// definitionRecord is the JSON artifact shape for one lemma.
type definitionRecord struct {
	Senses []string `json:"senses"`
	Note   string   `json:"note,omitempty"`
}

func (ds *DefinitionStore) writeJSON(w io.Writer) error {
	records := make(map[string]definitionRecord, len(ds.senses))
	for lemma, senses := range ds.senses {
		rec := definitionRecord{Note: ds.notes[lemma]}
		for _, s := range senses {
			rec.Senses = append(rec.Senses, s.Text)
		}
		records[lemma] = rec
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// WriteTables persists both lookup structures into dir, all-or-nothing:
// every artifact is written to a temp file first and the renames only
// happen once all writes succeeded, so a failed build never clobbers the
// previous good tables.
func WriteTables(dir string, forms *FormsTable, defs *DefinitionStore) error {
	type artifact struct {
		name  string
		write func(io.Writer) error
	}
	artifacts := []artifact{
		{FormsFile, func(w io.Writer) error {
			_, err := forms.WriteTo(w)
			return err
		}},
		{DefinitionsFile, func(w io.Writer) error {
			_, err := defs.WriteTo(w)
			return err
		}},
		{DefinitionsJSONFile, defs.writeJSON},
	}

	var tmps []string
	cleanup := func() {
		for _, tmp := range tmps {
			os.Remove(tmp)
		}
	}

	for _, a := range artifacts {
		tmp := filepath.Join(dir, a.name+".tmp")
		f, err := os.Create(tmp)
		if err != nil {
			cleanup()
			return fmt.Errorf("%w: %v", ErrTableWrite, err)
		}
		tmps = append(tmps, tmp)

		err = a.write(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			cleanup()
			return fmt.Errorf("%w: %s: %v", ErrTableWrite, a.name, err)
		}
	}

	// Renames run in reverse artifact order so forms.txt lands last:
	// consumers key on the forms table, so a swap that dies midway can
	// leave new definitions behind the old forms table, never a new forms
	// table over stale definitions.
	for i := len(artifacts) - 1; i >= 0; i-- {
		if err := os.Rename(tmps[i], filepath.Join(dir, artifacts[i].name)); err != nil {
			cleanup()
			return fmt.Errorf("%w: %v", ErrTableWrite, err)
		}
	}
	return nil
}
