package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone, elimina marcas diacríticas y recompone.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un término de búsqueda: minúsculas y sin tildes,
// para que "Leche Pasteurizada" coincida con "leche pasteurizada" o "LECHE PASTEURIZADA".
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Matches indica si el texto contiene el término, ambos normalizados.
func Matches(text, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(Fold(text), Fold(term))
}
