// Load built verb tables into CouchBase.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of record workers")

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] /path/to/tables\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type record struct {
	key string
	doc interface{}
}

type formDoc struct {
	Type   string   `json:"type"`
	Form   string   `json:"form"`
	Lemmas []string `json:"lemmas"`
}

type lemmaDoc struct {
	Type   string   `json:"type"`
	Lemma  string   `json:"lemma"`
	Senses []string `json:"senses"`
	Note   string   `json:"note,omitempty"`
}

func recordHandler(db *couchbase.Bucket, ch <-chan record) {
	defer wg.Done()
	for r := range ch {
		if err := db.Set(r.key, 0, r.doc); err != nil {
			log.Printf("Error setting %v: %v", r.key, err)
		}
	}
}

func openTables(dir string) (*conjparse.FormsTable, *conjparse.DefinitionStore) {
	ff, err := os.Open(filepath.Join(dir, conjparse.FormsFile))
	if err != nil {
		log.Fatalf("Error opening forms table: %v", err)
	}
	defer ff.Close()
	forms, err := conjparse.ReadFormsTable(ff)
	if err != nil {
		log.Fatalf("Error reading forms table: %v", err)
	}

	df, err := os.Open(filepath.Join(dir, conjparse.DefinitionsFile))
	if err != nil {
		log.Fatalf("Error opening definitions table: %v", err)
	}
	defer df.Close()
	defs, err := conjparse.ReadDefinitionsTable(df)
	if err != nil {
		log.Fatalf("Error reading definitions table: %v", err)
	}

	return forms, defs
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}

	forms, defs := openTables(flag.Arg(0))

	ch := make(chan record, 1000)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go recordHandler(db, ch)
	}

	records := int64(0)
	start := time.Now()
	forms.Each(func(form string, lemmas []string) {
		ch <- record{"form:" + form, formDoc{"form", form, lemmas}}
		records++
	})
	defs.Each(func(lemma string, senses []conjparse.Sense, note string) {
		doc := lemmaDoc{Type: "lemma", Lemma: lemma, Note: note}
		for _, s := range senses {
			doc.Senses = append(doc.Senses, s.Text)
		}
		ch <- record{"lemma:" + lemma, doc}
		records++
	})
	close(ch)
	wg.Wait()

	log.Printf("Loaded %s records in %v",
		humanize.Comma(records), time.Since(start))
}
