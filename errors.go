package conjparse

import "errors"

// ErrDumpFormat means the input is not a recognizable MediaWiki XML dump.
var ErrDumpFormat = errors.New("unrecognized dump format")

// ErrEntryTooLarge means a single page exceeded the entry size cap, which
// on a real dump indicates a missing page boundary rather than a big page.
var ErrEntryTooLarge = errors.New("dump entry exceeds size limit")

// ErrTableWrite means a lookup table could not be fully written. The
// previously persisted tables are left untouched.
var ErrTableWrite = errors.New("table write failed")

// ErrNoInfinitive means a conjugation table has no infinitive to build
// forms from.
var ErrNoInfinitive = errors.New("conjugation table has no infinitive")
