// Load the built forms table into Redis for O(1) point lookups.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-humanize"
	"github.com/redis/go-redis/v9"
)

var addr = flag.String("addr", "localhost:6379", "Redis address")
var password = flag.String("password", "", "Redis password")
var batchSize = flag.Int("batch", 1000, "Pipeline batch size")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [opts] /path/to/tables", os.Args[0])
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:     *addr,
		Password: *password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer client.Close()

	ff, err := os.Open(filepath.Join(flag.Arg(0), conjparse.FormsFile))
	if err != nil {
		log.Fatalf("Error opening forms table: %v", err)
	}
	forms, err := conjparse.ReadFormsTable(ff)
	ff.Close()
	if err != nil {
		log.Fatalf("Error reading forms table: %v", err)
	}

	pipeline := client.Pipeline()
	count := 0
	records := int64(0)
	start := time.Now()

	var flushErr error
	forms.Each(func(form string, lemmas []string) {
		pipeline.Set(ctx, "form:"+form, strings.Join(lemmas, ","), 0)
		count++
		records++
		if count >= *batchSize {
			if _, err := pipeline.Exec(ctx); err != nil && flushErr == nil {
				flushErr = err
			}
			count = 0
		}
	})
	if count > 0 {
		if _, err := pipeline.Exec(ctx); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	if flushErr != nil {
		log.Fatalf("Error executing pipeline: %v", flushErr)
	}

	log.Printf("Loaded %s forms in %v",
		humanize.Comma(records), time.Since(start))
}
