package pubchem

import (
	"regexp"
	"strconv"
	"strings"
)

// <n> [-|–|to <m>] <unidad>. Un rango se resume en su punto medio.
var halfLifePattern = regexp.MustCompile(
	`(?i)(\d+(?:\.\d+)?)\s*(?:(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*)?(hours?|hrs?|h|minutes?|mins?|days?|d)\b`,
)

// ParseHalfLifeHours busca la primera mención de vida media en texto libre y la
// devuelve en horas. Prioriza frases que mencionan "half-life".
func ParseHalfLifeHours(texts []string) (float64, bool) {
	ordered := make([]string, 0, len(texts))
	rest := make([]string, 0, len(texts))
	for _, t := range texts {
		l := strings.ToLower(t)
		if strings.Contains(l, "half-life") || strings.Contains(l, "half life") {
			ordered = append(ordered, t)
		} else {
			rest = append(rest, t)
		}
	}
	ordered = append(ordered, rest...)

	for _, t := range ordered {
		if h, ok := parseOne(t); ok {
			return h, true
		}
	}
	return 0, false
}

func parseOne(text string) (float64, bool) {
	for _, m := range halfLifePattern.FindAllStringSubmatch(text, -1) {
		lo, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		v := lo
		if m[2] != "" {
			hi, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			v = (lo + hi) / 2
		}

		h := v * unitToHours(m[3])
		if h > 0 {
			return h, true
		}
	}
	return 0, false
}

func unitToHours(unit string) float64 {
	u := strings.ToLower(unit)
	switch {
	case strings.HasPrefix(u, "min"):
		return 1.0 / 60
	case strings.HasPrefix(u, "d"):
		return 24
	default:
		return 1
	}
}
