package domain

import (
	"errors"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	FailParam = "fail"
	// NoFailRate is used when the URL carries no fail parameter. Together
	// with ShouldFail it can never trigger a failure.
	NoFailRate = -1.0
)

// FailRate extracts the failure probability from the query string of rawURL.
// The value is read the way a browser converts a string to a number: decimal
// literals, Infinity and unsigned 0x/0o/0b integers. Anything else yields NaN,
// which never fails.
func FailRate(rawURL string) (float64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, err
	}
	query := u.Query()
	if !query.Has(FailParam) {
		return NoFailRate, nil
	}
	return parseRate(query.Get(FailParam)), nil
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseRate(raw string) float64 {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(raw) > 2 && raw[0] == '0' {
		base := 0
		switch raw[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.ContainsRune(raw, '_') {
				return math.NaN()
			}
			n, err := strconv.ParseUint(raw[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(raw) {
		return math.NaN()
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	// Out-of-range literals keep the ±Inf or zero ParseFloat returns.
	return rate
}

// ShouldFail compares a uniform draw from [0, 1) against the rate. The strict
// comparison means rate 0 and NoFailRate never fail and rate 1 fails for every
// draw above zero.
func ShouldFail(draw, rate float64) bool {
	return draw > 1-rate
}
