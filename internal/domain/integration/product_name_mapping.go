package integration

import (
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

var (
	// ErrEmptyMappingKey is returned when a mapping row has a blank raw key
	ErrEmptyMappingKey = shared.NewDomainError("INVALID_MAPPING_KEY", "Mapping raw key cannot be empty")
	// ErrEmptyMappingName is returned when a mapping row has a blank mapped name
	ErrEmptyMappingName = shared.NewDomainError("INVALID_MAPPING_NAME", "Mapping display name cannot be empty")
)

// ProductNameMapping maps a raw marketplace product name to the canonical
// display name used in customer messages. Rows come from a spreadsheet the
// shop owner maintains.
type ProductNameMapping struct {
	RawKey     string
	MappedName string
}

// NewProductNameMapping creates a mapping row
func NewProductNameMapping(rawKey, mappedName string) (ProductNameMapping, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return ProductNameMapping{}, ErrEmptyMappingKey
	}
	mappedName = strings.TrimSpace(mappedName)
	if mappedName == "" {
		return ProductNameMapping{}, ErrEmptyMappingName
	}
	return ProductNameMapping{
		RawKey:     rawKey,
		MappedName: mappedName,
	}, nil
}

// MappingTable resolves raw product names against a set of mapping rows
type MappingTable struct {
	rows []ProductNameMapping
}

// NewMappingTable creates a table from mapping rows
func NewMappingTable(rows []ProductNameMapping) *MappingTable {
	return &MappingTable{rows: rows}
}

// Resolve maps a raw product name to its canonical display name.
//
// Resolution order:
//  1. An exact raw-key match wins unconditionally.
//  2. Otherwise rows whose raw key is a prefix of the input are considered,
//     but only when the remaining suffix, after left-trimming whitespace,
//     begins with an option parenthesis "(" or "（" (size/color qualifiers).
//     Among those the longest raw key wins, and the suffix is appended to the
//     mapped name verbatim.
//  3. With no match the input is returned unchanged.
//
// The parenthesis guard keeps arbitrary substring overlaps (e.g. a plain text
// tail) from being treated as product options.
func (t *MappingTable) Resolve(rawName string) string {
	var (
		best    *ProductNameMapping
		bestLen int
		suffix  string
	)

	for i := range t.rows {
		row := &t.rows[i]
		if row.RawKey == rawName {
			return row.MappedName
		}
		if !strings.HasPrefix(rawName, row.RawKey) {
			continue
		}
		rest := rawName[len(row.RawKey):]
		if !isOptionSuffix(rest) {
			continue
		}
		if keyLen := len(row.RawKey); keyLen > bestLen {
			best = row
			bestLen = keyLen
			suffix = rest
		}
	}

	if best == nil {
		return rawName
	}
	return best.MappedName + suffix
}

// isOptionSuffix reports whether the remainder after a prefix match looks like
// a parenthesized option qualifier
func isOptionSuffix(rest string) bool {
	trimmed := strings.TrimLeft(rest, " \t　")
	return strings.HasPrefix(trimmed, "(") || strings.HasPrefix(trimmed, "（")
}
