package marketplace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	postalPattern = regexp.MustCompile(`〒?\s*(\d{3})-?(\d{4})`)
	// 都道府県 then the municipality up to the first 市/区/町/村
	prefecturePattern = regexp.MustCompile(`(東京都|北海道|(?:京都|大阪)府|[^\s\d]{2,3}県)`)
	cityPattern       = regexp.MustCompile(`^(.+?[市区町村])`)
	digitsPattern     = regexp.MustCompile(`[\d,]+`)
)

// ParsedAddress is a Japanese shipping address split into its parts
type ParsedAddress struct {
	PostalCode string
	Prefecture string
	City       string
	Street     string
	Building   string
}

// ParseAddress splits a single-line Japanese address as shown on the order
// page, e.g. "〒150-0001 東京都渋谷区神宮前1-2-3 コーポ青山201".
func ParseAddress(raw string) (*ParsedAddress, error) {
	raw = strings.Join(strings.Fields(raw), " ")

	postal := postalPattern.FindStringSubmatch(raw)
	if postal == nil {
		return nil, fmt.Errorf("no postal code in address %q", raw)
	}

	prefLoc := prefecturePattern.FindStringIndex(raw)
	if prefLoc == nil {
		return nil, fmt.Errorf("no prefecture in address %q", raw)
	}
	prefecture := raw[prefLoc[0]:prefLoc[1]]

	rest := strings.TrimSpace(raw[prefLoc[1]:])
	city := cityPattern.FindString(rest)
	if city == "" {
		return nil, fmt.Errorf("no city in address %q", raw)
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, city))

	street := rest
	building := ""
	if idx := strings.IndexByte(rest, ' '); idx >= 0 {
		street = rest[:idx]
		building = strings.TrimSpace(rest[idx+1:])
	}
	if street == "" {
		return nil, fmt.Errorf("no street in address %q", raw)
	}

	return &ParsedAddress{
		PostalCode: postal[1] + "-" + postal[2],
		Prefecture: prefecture,
		City:       city,
		Street:     street,
		Building:   building,
	}, nil
}

// ParsePriceYen parses a displayed price such as "¥2,500", "2,500円" or
// "販売価格: ¥12,000 (税込)" into whole yen.
func ParsePriceYen(raw string) (int64, error) {
	digits := digitsPattern.FindString(raw)
	if digits == "" {
		return 0, fmt.Errorf("no price in %q", raw)
	}
	yen, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return yen, nil
}

// orderedAtLayouts are the date formats the two marketplaces display
var orderedAtLayouts = []string{
	"2006年1月2日 15:04",
	"2006年1月2日",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006-01-02 15:04",
}

// jst is the timezone order pages display dates in
var jst = time.FixedZone("JST", 9*60*60)

// ParseOrderedAt parses the displayed order date into a time in JST
func ParseOrderedAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range orderedAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, jst); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized order date %q", raw)
}
