// Package format renders prices, dates and times the way the storefront
// displays them (es-AR conventions). Malformed input yields a fallback
// string instead of an error.
package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	invalidDate = "Fecha inválida"
	invalidTime = "Hora inválida"
)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Price renders cents as "$1.234,56" with dot thousand separators and a
// comma decimal mark. Negative amounts render as zero.
func Price(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	whole := cents / 100
	frac := cents % 100
	return fmt.Sprintf("$%s,%02d", group(whole), frac)
}

// Date renders an ISO date ("2006-01-02" or RFC 3339) as "2 de enero de
// 2006". Anything unparseable renders as "Fecha inválida".
func Date(value string) string {
	t, ok := parseAny(value, []string{"2006-01-02", time.RFC3339})
	if !ok {
		return invalidDate
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// Time renders a clock value ("15:04", "15:04:05" or RFC 3339) as
// "15:04 hs". Anything unparseable renders as "Hora inválida".
func Time(value string) string {
	t, ok := parseAny(value, []string{"15:04", "15:04:05", time.RFC3339})
	if !ok {
		return invalidTime
	}
	return t.Format("15:04") + " hs"
}

func parseAny(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
