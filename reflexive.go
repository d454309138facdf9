package conjparse

import "strings"

// Reflexive pronoun spellings on Catalan headwords: rentar-se, asseure's.
const (
	reflexiveShort = "'s"
	reflexiveLong  = "-se"
)

// ReflexiveLemma attaches the reflexive pronoun to a lemma the way the
// dictionary spells it: 's after a final e, -se otherwise.
func ReflexiveLemma(lemma string) string {
	if lemma == "" {
		return lemma
	}
	if strings.HasSuffix(lemma, "e") {
		return lemma + reflexiveShort
	}
	return lemma + reflexiveLong
}

// StripReflexive removes a trailing reflexive pronoun, returning the input
// unchanged when there is none.
func StripReflexive(lemma string) string {
	if strings.HasSuffix(lemma, reflexiveShort) {
		return lemma[:len(lemma)-len(reflexiveShort)]
	}
	if strings.HasSuffix(lemma, reflexiveLong) {
		return lemma[:len(lemma)-len(reflexiveLong)]
	}
	return lemma
}

// IsReflexive reports whether a lemma carries a reflexive pronoun.
func IsReflexive(lemma string) bool {
	return StripReflexive(lemma) != lemma
}
