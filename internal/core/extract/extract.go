// Package extract pulls named numeric tool parameters out of free text.
// Extraction is pure and best-effort: absent parameters stay nil, and a
// value failing its range gate is dropped rather than reported, so a
// false positive never reaches a tool.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Params is the partial set of recognized tool parameters.
type Params struct {
	Load          *float64
	Modulus       *float64
	Width         *float64
	UnitWeight    *float64
	Depth         *float64
	FrictionAngle *float64
}

// HasSettlement reports whether both settlement inputs were found.
func (p Params) HasSettlement() bool {
	return p.Load != nil && p.Modulus != nil
}

// HasBearing reports whether all four bearing inputs were found.
func (p Params) HasBearing() bool {
	return p.Width != nil && p.UnitWeight != nil && p.Depth != nil && p.FrictionAngle != nil
}

const number = `(-?[0-9]+(?:\.[0-9]+)?)`

var (
	loadPatterns = []*regexp.Regexp{
		regexp.MustCompile(`loads?\s*[=:]\s*` + number),
		regexp.MustCompile(`loads?\s+of\s+` + number),
		regexp.MustCompile(number + `\s*(?:kpa|kn/m2|kn/m²)?\s*load\b`),
	}
	modulusPatterns = []*regexp.Regexp{
		regexp.MustCompile(`young['‘’]?s?\s*modulus\s*[=:]?\s*` + number),
		regexp.MustCompile(`modulus\s*[=:]\s*` + number),
		regexp.MustCompile(`modulus\s+of\s+` + number),
		regexp.MustCompile(`\be\s*[=:]\s*` + number),
	}
	widthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bb\s*[=:]\s*` + number),
		regexp.MustCompile(`widths?\s*[=:]?\s*` + number),
		regexp.MustCompile(number + `\s*(?:m|meter|metre)s?[\s-]*wide\b`),
	}
	unitWeightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`gamma\s*[=:]\s*` + number),
		regexp.MustCompile(`unit[\s_]*weights?\s*[=:]?\s*` + number),
	}
	depthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bdf\s*[=:]\s*` + number),
		regexp.MustCompile(`depths?\s*[=:]\s*` + number),
		regexp.MustCompile(`depths?\s+of\s+` + number),
	}
	frictionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`friction[\s_]*angle\s*[=:]?\s*` + number),
		regexp.MustCompile(`\bphi\s*[=:]\s*` + number),
		regexp.MustCompile(`φ\s*[=:]\s*` + number),
	}
)

// Parameters scans question and context for tool parameters. Values
// outside their per-parameter range gate are omitted; friction angles
// above 90 degrees in particular are treated as noise, not input.
func Parameters(question, context string) Params {
	text := strings.ToLower(question + " " + context)

	var p Params
	p.Load = firstMatch(text, loadPatterns, func(v float64) bool { return v >= 0 })
	p.Modulus = firstMatch(text, modulusPatterns, func(v float64) bool { return v > 0 })
	p.Width = firstMatch(text, widthPatterns, func(v float64) bool { return v > 0 })
	p.UnitWeight = firstMatch(text, unitWeightPatterns, func(v float64) bool { return v > 0 && v <= 1000 })
	p.Depth = firstMatch(text, depthPatterns, func(v float64) bool { return v > 0 })
	p.FrictionAngle = firstMatch(text, frictionPatterns, func(v float64) bool { return v >= 0 && v <= 90 })
	return p
}

func firstMatch(text string, patterns []*regexp.Regexp, inRange func(float64) bool) *float64 {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || !inRange(v) {
			continue
		}
		return &v
	}
	return nil
}
