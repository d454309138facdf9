package conjparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Expressar pensaments amb paraules.",
			"Expressar pensaments amb paraules."},
		{"{{marca|ca|col·loquial}} Dir [[mentida|mentides]].",
			"Dir mentides."},
		{"Anar a [[peu]].", "Anar a peu."},
		{"'''Negritud''' i ''cursiva'' fora.", "Negritud i cursiva fora."},
		{"Treure la son.<ref>DIEC2</ref>", "Treure la son."},
		{"Amb {{ex-us|ca|niat {{romanes|II}} dins}} plantilles.",
			"Amb plantilles."},
		{"Comentaris <!-- amagats --> fora.", "Comentaris fora."},
		{"<gallery>fitxer.jpg</gallery>Netejar una imatge.",
			"Netejar una imatge."},
		{"Text <small>petit</small> sense etiquetes.",
			"Text petit sense etiquetes."},
		{"Espais   i\ttabuladors    col·lapsats.",
			"Espais i tabuladors col·lapsats."},
		{"Desbalancejat {{queda tal qual.", "Desbalancejat {{queda tal qual."},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, CleanMarkup(test.in), test.in)
	}
}

func TestExtractSenses(t *testing.T) {
	section := `
{{ca-verb|parlar}}

# Expressar [[pensament|pensaments]] amb paraules.
#: ''En Joan parla massa.''
# {{marca|ca|transitiu}} Tractar un tema.
#* Citació que no compta.
# {{sense-text}}
`
	senses := ExtractSenses(section)
	require.Len(t, senses, 2)
	assert.Equal(t, "Expressar pensaments amb paraules.", senses[0].Text)
	assert.Equal(t, "Tractar un tema.", senses[1].Text)
	assert.Equal(t, PoSVerb, senses[0].PartOfSpeech)
}

func TestExtractSensesStopsAtSeparator(t *testing.T) {
	section := `
# Primera accepció.
# {{-sin-}}
# [[sinònim]] que ja no és definició
`
	senses := ExtractSenses(section)
	require.Len(t, senses, 1)
	assert.Equal(t, "Primera accepció.", senses[0].Text)
}

func TestExtractSensesEmpty(t *testing.T) {
	assert.Nil(t, ExtractSenses("{{ca-verb|parlar}}\nSense línies numerades.\n"))
}
