package conjparse

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/dustin/go-humanize"
)

// BuildOptions tune one pipeline run.
type BuildOptions struct {
	// Workers is the size of the page-parsing pool. Defaults to
	// GOMAXPROCS.
	Workers int
	// Exclusions lists lemmas to drop entirely (see LoadExclusions).
	Exclusions map[string]bool
	// Notes is the lemma→note sidecar to embed (see LoadNotes).
	Notes map[string]string
	// Progress, when set, is called with the running page count every
	// 1000 pages.
	Progress func(pages int64)
}

// A Report summarizes one pipeline run: enough to spot data-quality
// regressions without opening the artifacts.
type Report struct {
	Pages           int64
	SkippedPages    int64
	SkipSamples     []string
	VerbEntries     int
	DefinitionsOnly int
	UnresolvedRefs  int
	Excluded        int
	Forms           int
	Lemmas          int
}

func (r *Report) String() string {
	return fmt.Sprintf(
		"%s pages (%s skipped), %s verb entries "+
			"(%s definitions-only, %s unresolved refs, %s excluded), "+
			"%s forms, %s lemmas",
		humanize.Comma(r.Pages), humanize.Comma(r.SkippedPages),
		humanize.Comma(int64(r.VerbEntries)),
		humanize.Comma(int64(r.DefinitionsOnly)),
		humanize.Comma(int64(r.UnresolvedRefs)),
		humanize.Comma(int64(r.Excluded)),
		humanize.Comma(int64(r.Forms)), humanize.Comma(int64(r.Lemmas)))
}

// A BuildResult carries the two lookup structures and the run report.
type BuildResult struct {
	Forms       *FormsTable
	Definitions *DefinitionStore
	Report      Report
}

// Build runs the whole extraction pipeline over a dump: pages fan out to
// a parsing pool, a single collector gathers entries keyed by infinitive,
// and a second pass resolves reflexive references, expands conjugations
// and merges everything into the output tables. The merge is insensitive
// to worker completion order.
func Build(p Parser, opts BuildOptions) (*BuildResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pagech := make(chan *Page, 1000)
	entrych := make(chan []VerbEntry, 1000)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for page := range pagech {
				if entries := ParseVerbs(page); entries != nil {
					entrych <- entries
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(entrych)
	}()

	// The collector is the only writer into the accumulation map.
	byLemma := map[string][]VerbEntry{}
	var collected sync.WaitGroup
	collected.Add(1)
	go func() {
		defer collected.Done()
		for entries := range entrych {
			for _, e := range entries {
				byLemma[e.Infinitive] = append(byLemma[e.Infinitive], e)
			}
		}
	}()

	report := Report{}
	var readErr error
	for {
		page, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		pagech <- page
		report.Pages++
		if opts.Progress != nil && report.Pages%1000 == 0 {
			opts.Progress(report.Pages)
		}
	}
	close(pagech)
	collected.Wait()

	if readErr != nil {
		return nil, readErr
	}
	report.SkippedPages = p.Skipped()
	report.SkipSamples = p.SkipSamples()

	res := &BuildResult{
		Forms:       NewFormsTable(),
		Definitions: NewDefinitionStore(),
		Report:      report,
	}
	res.merge(byLemma, opts)
	return res, nil
}

// sortByProvenance orders one lemma's entries by (page ID, in-page
// position), the canonical order for merging and reflexive resolution.
func sortByProvenance(entries []VerbEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].pageID != entries[j].pageID {
			return entries[i].pageID < entries[j].pageID
		}
		return entries[i].order < entries[j].order
	})
}

// baseTable finds the conjugation table a reflexive entry refers to: the
// first non-reflexive table under the base lemma in provenance order.
func baseTable(byLemma map[string][]VerbEntry, base string) *ConjugationTable {
	for _, e := range byLemma[base] {
		if e.Table != nil && e.ReflexiveOf == "" {
			return e.Table
		}
	}
	return nil
}

// merge is the second pass: reflexive resolution plus the commutative
// fold into the two tables. Entries under one lemma are ordered by page
// provenance first, so duplicate-entry merges come out the same no matter
// which worker finished first.
func (res *BuildResult) merge(byLemma map[string][]VerbEntry, opts BuildOptions) {
	// Every slice must be in provenance order before any lemma merges:
	// baseTable consults other lemmas' slices, and map iteration order
	// must not decide which homograph table a reflexive headword sees.
	for _, entries := range byLemma {
		sortByProvenance(entries)
	}

	for lemma, entries := range byLemma {
		if opts.Exclusions[StripReflexive(lemma)] {
			res.Report.Excluded += len(entries)
			continue
		}

		for _, e := range entries {
			res.Report.VerbEntries++

			table := e.Table
			if table == nil && e.ReflexiveOf != "" {
				table = baseTable(byLemma, e.ReflexiveOf)
				if table == nil {
					res.Report.UnresolvedRefs++
				}
			}

			if table != nil {
				for _, form := range table.Expand() {
					res.Forms.Add(form, lemma)
				}
			} else {
				res.Report.DefinitionsOnly++
			}

			senses := e.Senses
			if e.AlternativeOf != "" && len(byLemma[e.AlternativeOf]) > 0 {
				senses = append(append([]Sense(nil), senses...), Sense{
					PartOfSpeech: PoSVerb,
					Text: fmt.Sprintf("Forma alternativa a %s",
						e.AlternativeOf),
				})
			}
			if len(senses) > 0 {
				res.Definitions.Put(lemma, senses)
			}
		}
	}

	for lemma, note := range opts.Notes {
		if len(res.Definitions.senses[lemma]) > 0 {
			res.Definitions.SetNote(lemma, note)
		}
	}

	res.Report.Forms = res.Forms.Len()
	res.Report.Lemmas = res.Definitions.Len()
}
