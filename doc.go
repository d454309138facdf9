// Package conjparse extracts Catalan verb conjugations and definitions
// from Viccionari XML dumps and compiles them into lookup tables.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// In particular, this has been built against the cawiktionary dumps:
//    http://dumps.wikimedia.org/cawiktionary/
//
// A pipeline run streams pages out of a dump, recognizes verb entries,
// expands their conjugation tables into every inflected surface form and
// writes two sorted tables: one mapping each form back to its lemma
// candidates, and one mapping each lemma to its cleaned definition text.
//
// See the programs under tools/ for how the tables are built and loaded
// into various stores.
package conjparse
