// Load built verb tables into CouchDB.
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/httputil"
)

var wg sync.WaitGroup

type verbDoc struct {
	ID     string   `json:"_id"`
	Rev    string   `json:"_rev,omitempty"`
	Type   string   `json:"type"`
	Lemmas []string `json:"lemmas,omitempty"`
	Senses []string `json:"senses,omitempty"`
	Note   string   `json:"note,omitempty"`
}

func escapeID(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

func resolveConflict(db *couch.Database, d *verbDoc) {
	var prev verbDoc
	err := db.Retrieve(escapeID(d.ID), &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", d.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", d.ID)
		return
	}
	if _, err = db.EditWith(d, d.ID, prev.Rev); err != nil {
		log.Printf("  Error updating %v: %v", d.ID, err)
	}
}

func doRecord(db *couch.Database, d *verbDoc) {
	defer wg.Done()
	_, _, err := db.Insert(d)
	switch {
	case err == nil:
		// yay
	case httputil.IsHTTPStatus(err, 409):
		resolveConflict(db, d)
	default:
		log.Printf("Error inserting %#v: %v", d, err)
	}
}

func recordHandler(db couch.Database, ch <-chan *verbDoc) {
	for d := range ch {
		doRecord(&db, d)
	}
}

func main() {
	dburl, dir := os.Args[1], os.Args[2]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	ff, err := os.Open(filepath.Join(dir, conjparse.FormsFile))
	if err != nil {
		log.Fatalf("Error opening forms table: %v", err)
	}
	forms, err := conjparse.ReadFormsTable(ff)
	ff.Close()
	if err != nil {
		log.Fatalf("Error reading forms table: %v", err)
	}

	df, err := os.Open(filepath.Join(dir, conjparse.DefinitionsFile))
	if err != nil {
		log.Fatalf("Error opening definitions table: %v", err)
	}
	defs, err := conjparse.ReadDefinitionsTable(df)
	df.Close()
	if err != nil {
		log.Fatalf("Error reading definitions table: %v", err)
	}

	ch := make(chan *verbDoc, 1000)

	for i := 0; i < 20; i++ {
		go recordHandler(db, ch)
	}

	records := int64(0)
	start := time.Now()

	forms.Each(func(form string, lemmas []string) {
		wg.Add(1)
		ch <- &verbDoc{
			ID:     escapeID("form:" + form),
			Type:   "form",
			Lemmas: lemmas,
		}
		records++
	})
	defs.Each(func(lemma string, senses []conjparse.Sense, note string) {
		doc := &verbDoc{
			ID:   escapeID("lemma:" + lemma),
			Type: "lemma",
			Note: note,
		}
		for _, s := range senses {
			doc.Senses = append(doc.Senses, s.Text)
		}
		wg.Add(1)
		ch <- doc
		records++
	})
	wg.Wait()
	close(ch)

	log.Printf("Loaded %s records in %v",
		humanize.Comma(records), time.Since(start))
}
