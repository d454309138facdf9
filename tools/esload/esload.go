// Index built verb definitions into ElasticSearch.
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"
)

func main() {
	dir, esurl := os.Args[1], os.Args[2]

	df, err := os.Open(filepath.Join(dir, conjparse.DefinitionsFile))
	if err != nil {
		log.Fatalf("Error opening definitions table: %v", err)
	}
	defs, err := conjparse.ReadDefinitionsTable(df)
	df.Close()
	if err != nil {
		log.Fatalf("Error reading definitions table: %v", err)
	}

	es := elasticsearch.ElasticSearch{URL: esurl}
	bulkLoader := es.Bulk()

	records := int64(0)
	counter := 0
	start := time.Now()

	defs.Each(func(lemma string, senses []conjparse.Sense, note string) {
		counter++
		if counter > 1000 {
			bulkLoader.SendBatch()
			counter = 0
		}

		texts := make([]string, 0, len(senses))
		for _, s := range senses {
			texts = append(texts, s.Text)
		}
		ui := elasticsearch.UpdateInstruction{
			Id:    lemma,
			Index: "verbs",
			Type:  "lemma",
			Body: map[string]interface{}{
				"lemma":  lemma,
				"senses": texts,
				"note":   note,
			},
		}
		bulkLoader.Update(&ui)
		records++
	})
	bulkLoader.Quit()

	log.Printf("Indexed %s lemmas in %v",
		humanize.Comma(records), time.Since(start))
}
