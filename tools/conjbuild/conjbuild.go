// Build the verb lookup tables from a Viccionari dump.
package main

import (
	"compress/bzip2"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/conjugador/go-conjparse"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type config struct {
	Workers    int    `yaml:"workers"`
	OutputDir  string `yaml:"output_dir"`
	Exclusions string `yaml:"exclusions"`
	Notes      string `yaml:"notes"`
}

var (
	configFile = flag.String("config", "", "YAML config file")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0),
		"Number of parsing workers")
	outputDir  = flag.String("out", "data", "Output directory")
	exclusions = flag.String("exclusions", "", "Lemma exclusions file")
	notes      = flag.String("notes", "", "Lemma notes JSON file")
)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] dump.xml.bz2\n  %s [opts] index.txt.bz2 multistream.xml.bz2\n",
		os.Args[0], os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

// loadConfig applies the config file as defaults; explicit flags win.
func loadConfig(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error opening config: %v", err)
	}
	defer f.Close()

	var c config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		log.Fatalf("Error parsing config: %v", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if c.Workers > 0 && !set["workers"] {
		*workers = c.Workers
	}
	if c.OutputDir != "" && !set["out"] {
		*outputDir = c.OutputDir
	}
	if c.Exclusions != "" && !set["exclusions"] {
		*exclusions = c.Exclusions
	}
	if c.Notes != "" && !set["notes"] {
		*notes = c.Notes
	}
}

func openParser() conjparse.Parser {
	switch flag.NArg() {
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("Error opening dump: %v", err)
		}
		p, err := conjparse.NewParser(bzip2.NewReader(f))
		if err != nil {
			log.Fatalf("Error reading dump: %v", err)
		}
		return p
	case 2:
		p, err := conjparse.NewIndexedParser(flag.Arg(0), flag.Arg(1),
			runtime.GOMAXPROCS(0))
		if err != nil {
			log.Fatalf("Error initializing multistream parser: %v", err)
		}
		return p
	default:
		usage()
		return nil
	}
}

func main() {
	flag.Parse()
	if *configFile != "" {
		loadConfig(*configFile)
	}

	opts := conjparse.BuildOptions{Workers: *workers}

	if *exclusions != "" {
		f, err := os.Open(*exclusions)
		if err != nil {
			log.Fatalf("Error opening exclusions: %v", err)
		}
		opts.Exclusions, err = conjparse.LoadExclusions(f)
		f.Close()
		if err != nil {
			log.Fatalf("Error reading exclusions: %v", err)
		}
		log.Printf("Read %s exclusions",
			humanize.Comma(int64(len(opts.Exclusions))))
	}

	if *notes != "" {
		f, err := os.Open(*notes)
		if err != nil {
			log.Fatalf("Error opening notes: %v", err)
		}
		opts.Notes, err = conjparse.LoadNotes(f)
		f.Close()
		if err != nil {
			log.Fatalf("Error reading notes: %v", err)
		}
		log.Printf("Read %s notes", humanize.Comma(int64(len(opts.Notes))))
	}

	p := openParser()
	log.Printf("Got site info:  %+v", p.SiteInfo())

	start := time.Now()
	prev := start
	opts.Progress = func(pages int64) {
		now := time.Now()
		log.Printf("Processed %s pages total (%.2f/s)",
			humanize.Comma(pages), 1000/now.Sub(prev).Seconds())
		prev = now
	}

	res, err := conjparse.Build(p, opts)
	if err != nil {
		log.Fatalf("Pipeline failed, keeping previous tables: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0777); err != nil {
		log.Fatalf("Error creating output dir: %v", err)
	}
	if err := conjparse.WriteTables(*outputDir, res.Forms, res.Definitions); err != nil {
		log.Fatalf("Error writing tables, keeping previous: %v", err)
	}

	log.Printf("Done in %v: %s", time.Since(start), res.Report.String())
	for _, sample := range res.Report.SkipSamples {
		log.Printf("  skipped page: %s", sample)
	}
}
