// Load the built forms table into MongoDB.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-humanize"
	"gopkg.in/mgo.v2"
)

var proc = flag.Int("proc", 8, "How many insert workers to run.")
var dir = flag.String("tables", "data", "Directory holding the built tables.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "forms", "The collection to store form records in.")
var dbname = flag.String("dbname", "verbs", "The database name to use.")

var wg sync.WaitGroup

// Forms are unique in the table by construction, so duplicates mean the
// collection already held a previous load.
var formIndex = mgo.Index{
	Key:        []string{"form"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type formRecord struct {
	Form   string   `bson:",omitempty"`
	Lemmas []string `bson:",omitempty"`
}

func recordHandler(db *mgo.Database, ch <-chan formRecord) {
	for r := range ch {
		insertRecord(db, r)
	}
}

func insertRecord(db *mgo.Database, r formRecord) {
	defer wg.Done()
	err := db.C(*collection).Insert(&r)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate key error inserting %s", r.Form)
			}
		} else {
			log.Printf("Error inserting %s: %s", r.Form, err)
		}
	}
}

func main() {
	flag.Parse()

	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error dialing mongodb: %v", err)
	}

	ff, err := os.Open(filepath.Join(*dir, conjparse.FormsFile))
	if err != nil {
		log.Fatalf("Error opening forms table: %v", err)
	}
	forms, err := conjparse.ReadFormsTable(ff)
	ff.Close()
	if err != nil {
		log.Fatalf("Error reading forms table: %v", err)
	}

	db := session.DB(*dbname)
	if err := db.C(*collection).EnsureIndex(formIndex); err != nil {
		log.Fatal("Error creating form index: ", err)
	}

	ch := make(chan formRecord, 1000)
	for i := 0; i < *proc; i++ {
		go recordHandler(db, ch)
	}

	records := int64(0)
	start := time.Now()
	forms.Each(func(form string, lemmas []string) {
		wg.Add(1)
		ch <- formRecord{Form: form, Lemmas: lemmas}
		records++
	})
	wg.Wait()
	close(ch)

	d := time.Since(start)
	log.Printf("Loaded %s forms in %v (%.2f r/s)",
		humanize.Comma(records), d, float64(records)/d.Seconds())
}
