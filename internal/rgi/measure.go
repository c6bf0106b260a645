package rgi

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matches a Brazilian-formatted number followed by a meters unit marker
// (m, m2 or m²), e.g. "12,50 m", "1.234,56 m²". Thousands dot, decimal comma.
var measurementRe = regexp.MustCompile(`(?i)(\d+(?:\.\d{3})*(?:,\d+)?)\s*m[²2]?`)

// ParseMeasurements scans free text for linear/area measurements and returns
// the numeric values in order of appearance.
func ParseMeasurements(texts ...string) []float64 {
	var out []float64
	for _, text := range texts {
		for _, loc := range measurementRe.FindAllStringSubmatchIndex(text, -1) {
			// The unit must end the token: "10 metros" or "10 m3" is not a
			// plain meters marker.
			if end := loc[1]; end < len(text) {
				r, _ := utf8.DecodeRuneInString(text[end:])
				if unicode.IsLetter(r) || unicode.IsDigit(r) {
					continue
				}
			}
			v, err := parseBRNumber(text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// InferArea derives a best-effort rectangular area from the measurements
// mentioned across the given texts: the two most frequent distinct values
// (larger first on ties) are multiplied. Boundary text usually states only a
// lot's width and depth, so the product is a defensible low-confidence proxy.
// The second return is false when fewer than two distinct measurements exist
// or the product falls outside (0, 1 000 000), which usually means the unit
// was misread.
func InferArea(texts ...string) (float64, bool) {
	freq := make(map[float64]int)
	for _, v := range ParseMeasurements(texts...) {
		v = math.Round(v*10000) / 10000
		if v <= 0 {
			continue
		}
		freq[v]++
	}
	if len(freq) < 2 {
		return 0, false
	}
	distinct := make([]float64, 0, len(freq))
	for v := range freq {
		distinct = append(distinct, v)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if freq[distinct[i]] != freq[distinct[j]] {
			return freq[distinct[i]] > freq[distinct[j]]
		}
		return distinct[i] > distinct[j]
	})
	area := distinct[0] * distinct[1]
	if area <= 0 || area >= 1_000_000 {
		return 0, false
	}
	return area, true
}

// parseBRNumber converts "1.234,56" into 1234.56.
func parseBRNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
