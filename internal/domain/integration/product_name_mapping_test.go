package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, pairs ...[2]string) *MappingTable {
	t.Helper()
	mappings := make([]ProductNameMapping, 0, len(pairs))
	for _, p := range pairs {
		m, err := NewProductNameMapping(p[0], p[1])
		require.NoError(t, err)
		mappings = append(mappings, m)
	}
	return NewMappingTable(mappings)
}

func TestNewProductNameMapping_RejectsBlank(t *testing.T) {
	_, err := NewProductNameMapping("  ", "name")
	assert.ErrorIs(t, err, ErrEmptyMappingKey)

	_, err = NewProductNameMapping("key", "  ")
	assert.ErrorIs(t, err, ErrEmptyMappingName)
}

func TestMappingTable_ExactMatch(t *testing.T) {
	table := newTable(t, [2]string{"item-a", "つまみ細工かんざし"})
	assert.Equal(t, "つまみ細工かんざし", table.Resolve("item-a"))
}

func TestMappingTable_ExactMatchWinsOverPrefix(t *testing.T) {
	// Exact match takes priority no matter how the entries are ordered.
	table := newTable(t,
		[2]string{"item-a", "プレフィックス名"},
		[2]string{"item-a（赤）", "完全一致名"},
	)
	assert.Equal(t, "完全一致名", table.Resolve("item-a（赤）"))

	reversed := newTable(t,
		[2]string{"item-a（赤）", "完全一致名"},
		[2]string{"item-a", "プレフィックス名"},
	)
	assert.Equal(t, "完全一致名", reversed.Resolve("item-a（赤）"))
}

func TestMappingTable_PrefixMatchKeepsOptionSuffix(t *testing.T) {
	table := newTable(t, [2]string{"item-a", "つまみ細工かんざし"})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fullwidth paren", "item-a（赤）", "つまみ細工かんざし（赤）"},
		{"halfwidth paren", "item-a(青)", "つまみ細工かんざし(青)"},
		{"space before paren", "item-a （赤）", "つまみ細工かんざし （赤）"},
		{"fullwidth space before paren", "item-a　（赤）", "つまみ細工かんざし　（赤）"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Resolve(tt.input))
		})
	}
}

func TestMappingTable_LongestPrefixWins(t *testing.T) {
	table := newTable(t,
		[2]string{"item", "短いキー"},
		[2]string{"item-a", "長いキー"},
	)
	assert.Equal(t, "長いキー（赤）", table.Resolve("item-a（赤）"))
}

func TestMappingTable_NonOptionSuffixFallsThrough(t *testing.T) {
	table := newTable(t, [2]string{"item-a", "つまみ細工かんざし"})

	// The suffix does not start with a parenthesis, so the prefix rule
	// does not apply and the input comes back unchanged.
	assert.Equal(t, "item-abc", table.Resolve("item-abc"))
	assert.Equal(t, "item-a 赤", table.Resolve("item-a 赤"))
}

func TestMappingTable_NoMatchReturnsInput(t *testing.T) {
	table := newTable(t, [2]string{"item-a", "つまみ細工かんざし"})
	assert.Equal(t, "unknown-item", table.Resolve("unknown-item"))
}
