package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Ana López", "Ana López"},
		{"collapses tabs and spaces", "Ana \t  López", "Ana López"},
		{"trims bullet prefix", "• Ana López", "Ana López"},
		{"trims mixed edges", " -·Jueces:; ", "Jueces"},
		{"drops emoji", "🏆 Open de España 🐕", "Open de España"},
		{"keeps interior newlines", "línea 1\nlínea 2", "línea 1\nlínea 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  •• G1 / M (J12) ;;",
		"Can関西 🎾 open\t\ttournament",
		"- Ana  López -",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean must be idempotent for %q", in)
	}
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Ana Lopez", StripDiacritics("Ana López"))
	assert.Equal(t, "GRADO nino", StripDiacritics("GRADO niño"))
	assert.Equal(t, "plain", StripDiacritics("plain"))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("Ana López"), FoldKey("ANA LOPEZ"))
	assert.Equal(t, FoldKey(" • José Peña"), FoldKey("jose pena"))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "Jueces: Ana López", Flatten("<b>Jueces:</b> Ana L&oacute;pez"))
	assert.Equal(t, "Dorsal 123", Flatten("<div class=\"x\">Dorsal <span>123</span></div>"))
}

func TestLooksLikeName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ana López", true},
		{"Juan Pérez", true},
		{"", false},
		{"ab", false},
		{"123", false},
		{"Por confirmar", false},
		{"TBD", false},
		{"to be confirmed", false},
		{"Nombre", false},
		{"name", false},
		{"Jueces:", false},
		{"juezes", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LooksLikeName(tt.in), "input %q", tt.in)
	}
}
