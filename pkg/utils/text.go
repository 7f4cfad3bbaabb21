package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents remove acentos e cedilhas, ex: "João" vira "Joao"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Slugify prepara um nome para uso em nome de arquivo
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(RemoveAccents(s)))
	return strings.Join(strings.Fields(s), "_")
}

// TruncateName coloca o nome em maiúsculas e corta em max caracteres, terminando em "..."
func TruncateName(name string, max int) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	r := []rune(name)
	if len(r) <= max || max <= 3 {
		return name
	}
	return string(r[:max-3]) + "..."
}
