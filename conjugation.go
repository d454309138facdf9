package conjparse

import (
	"sort"
	"strings"
)

// ConjClass is a Catalan conjugation class.
type ConjClass int

const (
	// ClassUnknown means no paradigm applies; only explicit forms count.
	ClassUnknown ConjClass = iota
	// ClassFirst covers -ar verbs (parlar).
	ClassFirst
	// ClassSecond covers -er and -re verbs (témer, perdre).
	ClassSecond
	// ClassThirdPure covers plain -ir verbs (dormir).
	ClassThirdPure
	// ClassThirdInc covers incoative -ir verbs (servir, serveixo). This
	// is the default for -ir since most of them inflect this way.
	ClassThirdInc
)

var persons = []string{"1s", "2s", "3s", "1p", "2p", "3p"}

// Personal tenses, in the slot-key prefixes used by conjugation templates.
var tenses = []string{"pres", "impf", "past", "fut", "cond", "subj", "subjimp", "imp"}

// Non-personal slots: gerund and the four participle forms.
var nonPersonal = []string{"ger", "part", "partf", "partpl", "partfpl"}

// slotKeys holds every recognized slot name, e.g. "pres1s" or "ger".
var slotKeys = func() map[string]bool {
	keys := map[string]bool{}
	for _, t := range tenses {
		for _, p := range persons {
			if t == "imp" && p == "1s" {
				continue
			}
			keys[t+p] = true
		}
	}
	for _, k := range nonPersonal {
		keys[k] = true
	}
	return keys
}()

// A ConjugationTable holds what a conjugation template declared for one
// verb: its infinitive, class, stem and any explicit per-slot forms.
type ConjugationTable struct {
	Infinitive string
	Class      ConjClass
	Stem       string
	// Overrides maps slot keys to explicit surface forms, which always
	// win over paradigm synthesis. A value may hold "/"-separated
	// alternatives.
	Overrides map[string]string
}

// Classify derives the conjugation class and stem from an infinitive.
// pure forces plain third-conjugation inflection for -ir verbs.
func Classify(infinitive string, pure bool) (ConjClass, string) {
	switch {
	case len(infinitive) < 3:
		return ClassUnknown, ""
	case strings.HasSuffix(infinitive, "ar"):
		return ClassFirst, infinitive[:len(infinitive)-2]
	case strings.HasSuffix(infinitive, "er"),
		strings.HasSuffix(infinitive, "re"):
		return ClassSecond, infinitive[:len(infinitive)-2]
	case strings.HasSuffix(infinitive, "ir"):
		if pure {
			return ClassThirdPure, infinitive[:len(infinitive)-2]
		}
		return ClassThirdInc, infinitive[:len(infinitive)-2]
	default:
		return ClassUnknown, ""
	}
}

// paradigm holds per-slot suffixes for one class. An empty imperative 2s
// suffix means the bare (adjusted) stem.
type paradigm struct {
	pres    [6]string
	impf    [6]string
	past    [6]string
	subj    [6]string
	subjimp [6]string
	imp     [6]string // 1s unused
	ger     string
	part    [4]string
}

var paradigms = map[ConjClass]*paradigm{
	ClassFirst: {
		pres:    [6]string{"o", "es", "a", "em", "eu", "en"},
		impf:    [6]string{"ava", "aves", "ava", "àvem", "àveu", "aven"},
		past:    [6]string{"í", "ares", "à", "àrem", "àreu", "aren"},
		subj:    [6]string{"i", "is", "i", "em", "eu", "in"},
		subjimp: [6]string{"és", "essis", "és", "éssim", "éssiu", "essin"},
		imp:     [6]string{"", "a", "i", "em", "eu", "in"},
		ger:     "ant",
		part:    [4]string{"at", "ada", "ats", "ades"},
	},
	ClassSecond: {
		pres:    [6]string{"o", "s", "", "em", "eu", "en"},
		impf:    [6]string{"ia", "ies", "ia", "íem", "íeu", "ien"},
		past:    [6]string{"í", "eres", "é", "érem", "éreu", "eren"},
		subj:    [6]string{"i", "is", "i", "em", "eu", "in"},
		subjimp: [6]string{"és", "essis", "és", "éssim", "éssiu", "essin"},
		imp:     [6]string{"", "", "i", "em", "eu", "in"},
		ger:     "ent",
		part:    [4]string{"ut", "uda", "uts", "udes"},
	},
	ClassThirdPure: {
		pres:    [6]string{"o", "s", "", "im", "iu", "en"},
		impf:    [6]string{"ia", "ies", "ia", "íem", "íeu", "ien"},
		past:    [6]string{"í", "ires", "í", "írem", "íreu", "iren"},
		subj:    [6]string{"i", "is", "i", "im", "iu", "in"},
		subjimp: [6]string{"ís", "issis", "ís", "íssim", "íssiu", "issin"},
		imp:     [6]string{"", "", "i", "im", "iu", "in"},
		ger:     "int",
		part:    [4]string{"it", "ida", "its", "ides"},
	},
	ClassThirdInc: {
		pres:    [6]string{"eixo", "eixes", "eix", "im", "iu", "eixen"},
		impf:    [6]string{"ia", "ies", "ia", "íem", "íeu", "ien"},
		past:    [6]string{"í", "ires", "í", "írem", "íreu", "iren"},
		subj:    [6]string{"eixi", "eixis", "eixi", "im", "iu", "eixin"},
		subjimp: [6]string{"ís", "issis", "ís", "íssim", "íssiu", "issin"},
		imp:     [6]string{"", "eix", "eixi", "im", "iu", "eixin"},
		ger:     "int",
		part:    [4]string{"it", "ida", "its", "ides"},
	},
}

// Future and conditional endings attach to the future stem and are shared
// by every class.
var futEndings = [6]string{"é", "às", "à", "em", "eu", "an"}
var condEndings = [6]string{"ia", "ies", "ia", "íem", "íeu", "ien"}

var deaccent = strings.NewReplacer(
	"à", "a", "è", "e", "é", "e", "í", "i",
	"ò", "o", "ó", "o", "ú", "u",
)

// futureStem derives the stem the future and conditional build on: the
// infinitive, unaccented, with a final -re collapsed (perdre → perdr-,
// témer → temer-).
func futureStem(infinitive string) string {
	stem := deaccent.Replace(infinitive)
	if strings.HasSuffix(stem, "re") {
		stem = stem[:len(stem)-1]
	}
	return stem
}

// adjustStem keeps first-conjugation spelling intact across the stem
// boundary: velar and sibilant finals change before suffixes in e/i
// (trencar → trenques, pagar → pagui, caçar → caces, viatjar → viatges).
func adjustStem(stem, suffix string) string {
	if suffix == "" {
		return stem
	}
	r := []rune(suffix)[0]
	if r != 'e' && r != 'è' && r != 'é' && r != 'i' && r != 'í' {
		return stem
	}
	switch {
	case strings.HasSuffix(stem, "qu"):
		return stem[:len(stem)-2] + "qü"
	case strings.HasSuffix(stem, "gu"):
		return stem[:len(stem)-2] + "gü"
	case strings.HasSuffix(stem, "ç"):
		return stem[:len(stem)-len("ç")] + "c"
	case strings.HasSuffix(stem, "c"):
		return stem[:len(stem)-1] + "qu"
	case strings.HasSuffix(stem, "g"):
		return stem[:len(stem)-1] + "gu"
	case strings.HasSuffix(stem, "j"):
		return stem[:len(stem)-1] + "g"
	default:
		return stem
	}
}

// softenStem is the reverse adjustment for second- and third-conjugation
// stems, whose c sounds soft before the back vowels of -o endings
// (vèncer → venço).
func softenStem(stem, suffix string) string {
	if suffix == "" {
		return stem
	}
	r := []rune(suffix)[0]
	if r != 'a' && r != 'o' && r != 'u' {
		return stem
	}
	if strings.HasSuffix(stem, "c") {
		return stem[:len(stem)-1] + "ç"
	}
	return stem
}

func (ct *ConjugationTable) join(suffix string) string {
	switch ct.Class {
	case ClassFirst:
		return adjustStem(ct.Stem, suffix) + suffix
	case ClassSecond, ClassThirdPure, ClassThirdInc:
		return softenStem(ct.Stem, suffix) + suffix
	default:
		return ct.Stem + suffix
	}
}

// synthesize produces the regular form for one slot key, or "" when the
// paradigm has nothing to offer (a synthesis gap, not an error).
func (ct *ConjugationTable) synthesize(key string) string {
	par := paradigms[ct.Class]
	if par == nil || ct.Stem == "" {
		return ""
	}

	for _, k := range nonPersonal {
		if key != k {
			continue
		}
		if key == "ger" {
			return ct.join(par.ger)
		}
		idx := map[string]int{"part": 0, "partf": 1, "partpl": 2, "partfpl": 3}[key]
		return ct.join(par.part[idx])
	}

	for pi, p := range persons {
		if !strings.HasSuffix(key, p) {
			continue
		}
		switch key[:len(key)-2] {
		case "pres":
			return ct.join(par.pres[pi])
		case "impf":
			return ct.join(par.impf[pi])
		case "past":
			return ct.join(par.past[pi])
		case "subj":
			return ct.join(par.subj[pi])
		case "subjimp":
			return ct.join(par.subjimp[pi])
		case "fut":
			return futureStem(ct.Infinitive) + futEndings[pi]
		case "cond":
			return futureStem(ct.Infinitive) + condEndings[pi]
		case "imp":
			if p == "1s" {
				return ""
			}
			return ct.join(par.imp[pi])
		}
	}
	return ""
}

// slotForms resolves one slot: explicit override first, then the regular
// paradigm. A value may carry "/"-separated alternatives.
func (ct *ConjugationTable) slotForms(key string) []string {
	if v, ok := ct.Overrides[key]; ok {
		var forms []string
		for _, alt := range strings.Split(v, "/") {
			if alt = strings.TrimSpace(alt); alt != "" {
				forms = append(forms, alt)
			}
		}
		return forms
	}
	if form := ct.synthesize(key); form != "" {
		return []string{form}
	}
	return nil
}

// Expand produces every distinct surface form of the verb, infinitive
// included, as a sorted set. Slots that neither the template nor the
// paradigm can fill are omitted.
func (ct *ConjugationTable) Expand() []string {
	seen := map[string]bool{}
	if ct.Infinitive != "" {
		seen[ct.Infinitive] = true
	}
	for key := range slotKeys {
		for _, form := range ct.slotForms(key) {
			seen[form] = true
		}
	}

	forms := make([]string, 0, len(seen))
	for form := range seen {
		forms = append(forms, form)
	}
	sort.Strings(forms)
	return forms
}

// ParseConjugation builds a conjugation table from a {{ca-conj}} template
// invocation. Unknown named arguments are ignored for forward
// compatibility; a missing infinitive is an error so the entry can degrade
// to definitions-only.
func ParseConjugation(t *Template) (*ConjugationTable, error) {
	infinitive := t.Arg(1)
	if infinitive == "" {
		infinitive = t.Named["inf"]
	}
	if infinitive == "" {
		return nil, ErrNoInfinitive
	}

	class, stem := Classify(infinitive, t.Named["pur"] != "")
	if v := t.Named["stem"]; v != "" {
		stem = v
	}

	ct := &ConjugationTable{
		Infinitive: infinitive,
		Class:      class,
		Stem:       stem,
		Overrides:  map[string]string{},
	}
	for key, value := range t.Named {
		if slotKeys[key] && value != "" {
			ct.Overrides[key] = value
		}
	}
	return ct, nil
}
