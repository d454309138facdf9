package conjparse

import (
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type indexChunk struct {
	offset int64
	count  int
}

// multiStreamParser reads a multistream dump: every bzip2 stream in the
// data file holds a batch of pages and can be decompressed independently,
// so batches are handed to parallel workers.
type multiStreamParser struct {
	siteInfo SiteInfo

	workerch chan indexChunk
	entries  chan *Page
	// done closes once every stream worker has exited, releasing the
	// index feeder if nobody is left to drain workerch.
	done chan struct{}

	skipped int64

	errMu    sync.Mutex
	firstErr error

	sampleMu sync.Mutex
	samples  []string
}

func (p *multiStreamParser) fail(err error) {
	p.errMu.Lock()
	if p.firstErr == nil {
		p.firstErr = err
	}
	p.errMu.Unlock()
}

func (p *multiStreamParser) failure() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.firstErr
}

// send hands a chunk to the stream workers, giving up when they have all
// exited so the feeder never blocks on a full channel forever.
func (p *multiStreamParser) send(chunk indexChunk) bool {
	select {
	case p.workerch <- chunk:
		return true
	case <-p.done:
		return false
	}
}

func (p *multiStreamParser) indexWorker(indexfn string) {
	defer close(p.workerch)

	r, err := os.Open(indexfn)
	if err != nil {
		p.fail(fmt.Errorf("opening index %v: %w", indexfn, err))
		return
	}
	defer r.Close()

	isr, err := NewIndexSummaryReader(bzip2.NewReader(r))
	if err != nil {
		p.fail(fmt.Errorf("reading index %v: %w", indexfn, err))
		return
	}
	for {
		offset, count, err := isr.Next()
		if !p.send(indexChunk{offset, count}) {
			return
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			p.fail(fmt.Errorf("reading index %v: %w", indexfn, err))
			return
		}
	}
}

func (p *multiStreamParser) streamWorker(datafn string, wg *sync.WaitGroup) {
	defer wg.Done()

	r, err := os.Open(datafn)
	if err != nil {
		p.fail(fmt.Errorf("opening dump %v: %w", datafn, err))
		return
	}
	defer r.Close()

	for chunk := range p.workerch {
		if _, err := r.Seek(chunk.offset, io.SeekStart); err != nil {
			p.fail(fmt.Errorf("seeking to %v: %w", chunk.offset, err))
			return
		}

		scanner := newPageScanner(bzip2.NewReader(r))
		for i := 0; i < chunk.count; i++ {
			page, err := scanner.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				p.fail(err)
				return
			}
			p.entries <- page
		}

		atomic.AddInt64(&p.skipped, scanner.skipped)
		if len(scanner.samples) > 0 {
			p.sampleMu.Lock()
			for _, s := range scanner.samples {
				if len(p.samples) >= maxSkipSamples {
					break
				}
				p.samples = append(p.samples, s)
			}
			p.sampleMu.Unlock()
		}
	}
}

// NewIndexedParser gets a parallel dump parser reading pages from the
// given multistream index and data files.
func NewIndexedParser(indexfn, datafn string, numWorkers int) (Parser, error) {
	r, err := os.Open(datafn)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	// The header stream carries the site info.
	head, err := NewParser(bzip2.NewReader(r))
	if err != nil {
		return nil, err
	}

	rv := &multiStreamParser{
		siteInfo: head.SiteInfo(),
		workerch: make(chan indexChunk, 1000),
		entries:  make(chan *Page, 1000),
		done:     make(chan struct{}),
	}

	wg := sync.WaitGroup{}
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go rv.streamWorker(datafn, &wg)
	}

	go rv.indexWorker(indexfn)

	go func() {
		wg.Wait()
		close(rv.done)
		close(rv.entries)
	}()

	return rv, nil
}

func (p *multiStreamParser) Next() (*Page, error) {
	page, ok := <-p.entries
	if !ok {
		if err := p.failure(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return page, nil
}

func (p *multiStreamParser) SiteInfo() SiteInfo {
	return p.siteInfo
}

func (p *multiStreamParser) Skipped() int64 {
	return atomic.LoadInt64(&p.skipped)
}

func (p *multiStreamParser) SkipSamples() []string {
	p.sampleMu.Lock()
	defer p.sampleMu.Unlock()
	return append([]string(nil), p.samples...)
}
