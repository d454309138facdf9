// Sample program that counts the verb entries in a dump without building
// anything.
package main

import (
	"compress/bzip2"
	"flag"
	"log"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-humanize"
)

var numWorkers int

var wg sync.WaitGroup

var verbs, withTables, reflexives int64

func pageHandler(ch <-chan *conjparse.Page) {
	defer wg.Done()
	for p := range ch {
		for _, e := range conjparse.ParseVerbs(p) {
			atomic.AddInt64(&verbs, 1)
			if e.Table != nil {
				atomic.AddInt64(&withTables, 1)
			}
			if e.ReflexiveOf != "" {
				atomic.AddInt64(&reflexives, 1)
			}
		}
	}
}

func process(p conjparse.Parser) {
	log.Printf("Got site info:  %+v", p.SiteInfo())

	ch := make(chan *conjparse.Page, 1000)

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go pageHandler(ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	var err error
	for err == nil {
		var page *conjparse.Page
		page, err = p.Next()
		if err == nil {
			ch <- page
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	close(ch)
	wg.Wait()

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
	log.Printf("Verb entries: %s (%s with tables, %s reflexive), %s pages skipped",
		humanize.Comma(verbs), humanize.Comma(withTables),
		humanize.Comma(reflexives), humanize.Comma(p.Skipped()))
}

func processSingleStream(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	p, err := conjparse.NewParser(bzip2.NewReader(f))
	if err != nil {
		log.Fatalf("Error setting up new page parser:  %v", err)
	}

	process(p)
}

func processMultiStream(idx, data string) {
	p, err := conjparse.NewIndexedParser(idx, data, runtime.GOMAXPROCS(0))
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}
	process(p)
}

func main() {
	var cpus int
	flag.IntVar(&numWorkers, "workers", 8, "Number of parsing workers")
	flag.IntVar(&cpus, "cpus", runtime.GOMAXPROCS(0), "Number of CPUS to utilize")
	flag.Parse()

	runtime.GOMAXPROCS(cpus)

	switch flag.NArg() {
	case 1:
		processSingleStream(flag.Arg(0))
	case 2:
		processMultiStream(flag.Arg(0), flag.Arg(1))
	default:
		log.Fatalf("Need either a single stream dump, or index and multi-stream")
	}
}
