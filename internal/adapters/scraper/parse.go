package scraper

import (
	"strconv"
	"strings"

	"github.com/Okyu59/astro-seek/internal/domain"
)

var challengeTitles = []string{
	"just a moment",
	"attention required",
	"access denied",
	"checking your browser",
	"verify you are human",
	"ddos-guard",
}

// IsChallengeTitle reports whether a page title belongs to an anti-bot
// interstitial rather than the results page.
func IsChallengeTitle(title string) bool {
	t := strings.ToLower(title)
	for _, c := range challengeTitles {
		if strings.Contains(t, c) {
			return true
		}
	}
	return false
}

var bodyAliases = map[domain.Body][]string{
	domain.Ascendant: {"Ascendant", "ASC"},
}

// ParseRows extracts one placement per body from table row texts. A row
// belongs to the first body whose name occurs in it; its sign is the first
// whitespace-separated token naming a sign and its house the last integer
// token in 1..12. Rows without a sign token are skipped, so the result may
// be empty.
func ParseRows(rows []string) []domain.PlanetPlacement {
	var out []domain.PlanetPlacement
	for _, body := range domain.Bodies {
		for _, row := range rows {
			if !mentions(row, body) {
				continue
			}
			sign, house, ok := parseRow(row)
			if !ok {
				continue
			}
			out = append(out, domain.PlanetPlacement{Name: string(body), Sign: sign, House: house})
			break
		}
	}
	return out
}

func mentions(row string, body domain.Body) bool {
	names := append([]string{string(body)}, bodyAliases[body]...)
	for _, f := range strings.Fields(row) {
		for _, n := range names {
			if strings.EqualFold(strings.Trim(f, ":,."), n) {
				return true
			}
		}
	}
	return false
}

func parseRow(row string) (sign, house string, ok bool) {
	fields := strings.Fields(row)
	at := -1
	for i, f := range fields {
		if s := canonicalSign(f); s != "" {
			sign, at = s, i
			break
		}
	}
	if at < 0 {
		return "", "", false
	}
	house = domain.HouseUnknown
	for _, f := range fields[at+1:] {
		if n, err := strconv.Atoi(strings.Trim(f, ".")); err == nil && n >= 1 && n <= 12 {
			house = strconv.Itoa(n)
		}
	}
	return sign, house, true
}

func canonicalSign(token string) string {
	token = strings.Trim(token, ":,.")
	for _, s := range domain.Signs {
		if strings.EqualFold(token, s) {
			return s
		}
	}
	return ""
}
