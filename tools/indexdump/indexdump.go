// Print the entries of a multistream dump index.
package main

import (
	"compress/bzip2"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/conjugador/go-conjparse"
)

func main() {
	r, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Error opening %v: %v", os.Args[1], err)
	}
	defer r.Close()

	ir := conjparse.NewIndexReader(bzip2.NewReader(r))
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading stream:  %v", err)
		}

		fmt.Println(e.String())
	}
}
