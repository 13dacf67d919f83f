package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoverAcentos devolve s sem marcas diacríticas ("ç" -> "c", "ã" -> "a").
func RemoverAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify converte um nome de produto em slug de URL ("iPhone 11 128GB" -> "iphone-11-128gb").
func Slugify(nome string) string {
	s := strings.ToLower(RemoverAcentos(nome))
	var b strings.Builder
	ultimoHifen := true // evita hífen no início
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			ultimoHifen = false
		default:
			if !ultimoHifen {
				b.WriteRune('-')
				ultimoHifen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Truncar corta s em max runas, sem quebrar no meio de um caractere multibyte.
func Truncar(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
