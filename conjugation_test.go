package conjparse

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		infinitive string
		pure       bool
		class      ConjClass
		stem       string
	}{
		{"parlar", false, ClassFirst, "parl"},
		{"témer", false, ClassSecond, "tém"},
		{"perdre", false, ClassSecond, "perd"},
		{"servir", false, ClassThirdInc, "serv"},
		{"dormir", true, ClassThirdPure, "dorm"},
		{"ir", false, ClassUnknown, ""},
		{"anar-hi", false, ClassUnknown, ""},
	}
	for _, test := range tests {
		class, stem := Classify(test.infinitive, test.pure)
		assert.Equal(t, test.class, class, test.infinitive)
		assert.Equal(t, test.stem, stem, test.infinitive)
	}
}

func mustParseConj(t *testing.T, raw string) *ConjugationTable {
	t.Helper()
	tmpl := ParseTemplate(raw)
	ct, err := ParseConjugation(tmpl)
	require.NoError(t, err)
	return ct
}

// Every distinct surface form of a fully regular first-conjugation verb.
var parlarForms = []string{
	"parlar",
	"parlo", "parles", "parla", "parlem", "parleu", "parlen",
	"parlava", "parlaves", "parlàvem", "parlàveu", "parlaven",
	"parlí", "parlares", "parlà", "parlàrem", "parlàreu", "parlaren",
	"parlaré", "parlaràs", "parlarà", "parlarem", "parlareu", "parlaran",
	"parlaria", "parlaries", "parlaríem", "parlaríeu", "parlarien",
	"parli", "parlis", "parlin",
	"parlés", "parlessis", "parléssim", "parléssiu", "parlessin",
	"parlant", "parlat", "parlada", "parlats", "parlades",
}

func TestExpandFirstConjugation(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|parlar}}")

	expected := append([]string{}, parlarForms...)
	sort.Strings(expected)
	assert.Equal(t, expected, ct.Expand())
}

func TestExpandSpellingAdjustments(t *testing.T) {
	tests := []struct {
		template string
		want     []string
		absent   []string
	}{
		// c → qu before e/i keeps the hard sound.
		{"{{ca-conj|trencar}}",
			[]string{"trenco", "trenques", "trenca", "trenqui", "trenquin"},
			[]string{"trences", "trenci"}},
		// g → gu likewise.
		{"{{ca-conj|pagar}}",
			[]string{"pago", "pagues", "pagui"},
			[]string{"pages", "pagi"}},
		// ç → c before front vowels.
		{"{{ca-conj|caçar}}",
			[]string{"caço", "caces", "caci"},
			[]string{"caçes", "caçi"}},
		// j → g.
		{"{{ca-conj|viatjar}}",
			[]string{"viatjo", "viatges", "viatgi"},
			[]string{"viatjes", "viatji"}},
		// Second conjugation softens c before -o (stem given explicitly).
		{"{{ca-conj|vèncer|stem=venc}}",
			[]string{"venço", "vençut", "venci"},
			[]string{"venco", "vencut"}},
	}

	for _, test := range tests {
		ct := mustParseConj(t, test.template)
		forms := ct.Expand()
		set := map[string]bool{}
		for _, f := range forms {
			set[f] = true
		}
		for _, f := range test.want {
			assert.True(t, set[f], "%v should produce %v, got %v",
				test.template, f, forms)
		}
		for _, f := range test.absent {
			assert.False(t, set[f], "%v should not produce %v",
				test.template, f)
		}
	}
}

func TestExpandThirdConjugation(t *testing.T) {
	// -ir defaults to the incoative pattern.
	servir := mustParseConj(t, "{{ca-conj|servir}}")
	forms := map[string]bool{}
	for _, f := range servir.Expand() {
		forms[f] = true
	}
	for _, f := range []string{"serveixo", "serveixes", "serveix",
		"servim", "serviu", "serveixen", "servint", "servit"} {
		assert.True(t, forms[f], "servir should produce %v", f)
	}
	assert.False(t, forms["servo"])

	// pur= forces the plain pattern.
	dormir := mustParseConj(t, "{{ca-conj|dormir|pur=s}}")
	forms = map[string]bool{}
	for _, f := range dormir.Expand() {
		forms[f] = true
	}
	for _, f := range []string{"dormo", "dorms", "dorm",
		"dormim", "dormiu", "dormen", "dormí", "dormint"} {
		assert.True(t, forms[f], "dormir should produce %v", f)
	}
	assert.False(t, forms["dormeixo"])
}

func TestFutureStemCollapsesRE(t *testing.T) {
	perdre := mustParseConj(t, "{{ca-conj|perdre}}")
	assert.Equal(t, []string{"perdré"}, perdre.slotForms("fut1s"))
	assert.Equal(t, []string{"perdria"}, perdre.slotForms("cond1s"))

	temer := mustParseConj(t, "{{ca-conj|témer|stem=tem}}")
	assert.Equal(t, []string{"temeré"}, temer.slotForms("fut1s"))
	assert.Equal(t, []string{"temo"}, temer.slotForms("pres1s"))
}

func TestOverridesWin(t *testing.T) {
	ct := mustParseConj(t,
		"{{ca-conj|anar|pres1s=vaig|pres2s=vas|pres3s=va|fut1s=aniré}}")

	assert.Equal(t, []string{"vaig"}, ct.slotForms("pres1s"))
	assert.Equal(t, []string{"aniré"}, ct.slotForms("fut1s"))

	forms := map[string]bool{}
	for _, f := range ct.Expand() {
		forms[f] = true
	}
	assert.True(t, forms["vaig"])
	assert.False(t, forms["ano"], "override must suppress the regular form")
}

func TestOverrideAlternatives(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|anar|imp2s=vés/ves}}")
	assert.Equal(t, []string{"vés", "ves"}, ct.slotForms("imp2s"))
}

func TestUnknownClassOnlyExplicitForms(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|dur-hi|pres1s=hi duc}}")
	require.Equal(t, ClassUnknown, ct.Class)
	assert.Equal(t, []string{"dur-hi", "hi duc"}, ct.Expand())
}

func TestNoImperativeFirstSingular(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|parlar}}")
	assert.Nil(t, ct.slotForms("imp1s"))
}

func TestParseConjugationNoInfinitive(t *testing.T) {
	_, err := ParseConjugation(ParseTemplate("{{ca-conj}}"))
	assert.ErrorIs(t, err, ErrNoInfinitive)
}

func TestParseConjugationNamedInfinitive(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|inf=parlar}}")
	assert.Equal(t, "parlar", ct.Infinitive)
	assert.Equal(t, ClassFirst, ct.Class)
}

func TestParseConjugationIgnoresUnknownArgs(t *testing.T) {
	ct := mustParseConj(t, "{{ca-conj|parlar|nota=coloquial|pres9x=res}}")
	assert.Empty(t, ct.Overrides)
}
