package valueobject

import (
	"strings"

	"github.com/kobo/backend/internal/domain/shared"
)

// ErrInvalidPrefecture is returned when a string is not one of the 47 prefecture names
var ErrInvalidPrefecture = shared.NewDomainError("INVALID_PREFECTURE", "Not a valid Japanese prefecture name")

// prefectureNames is the closed set of the 47 Japanese prefectures
var prefectureNames = []string{
	"北海道",
	"青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県",
	"岐阜県", "静岡県", "愛知県", "三重県",
	"滋賀県", "京都府", "大阪府", "兵庫県", "奈良県", "和歌山県",
	"鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県",
	"福岡県", "佐賀県", "長崎県", "熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

var prefectureSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(prefectureNames))
	for _, name := range prefectureNames {
		set[name] = struct{}{}
	}
	return set
}()

// Prefecture is a value object for a Japanese prefecture name.
// It can only hold one of the 47 official names.
type Prefecture struct {
	name string
}

// NewPrefecture creates a Prefecture from a raw string
func NewPrefecture(name string) (Prefecture, error) {
	name = strings.TrimSpace(name)
	if _, ok := prefectureSet[name]; !ok {
		return Prefecture{}, ErrInvalidPrefecture
	}
	return Prefecture{name: name}, nil
}

// MustNewPrefecture creates a Prefecture, panics on error. For tests and fixtures.
func MustNewPrefecture(name string) Prefecture {
	p, err := NewPrefecture(name)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the prefecture name
func (p Prefecture) String() string {
	return p.name
}

// Equals checks value equality
func (p Prefecture) Equals(other Prefecture) bool {
	return p.name == other.name
}

// IsZero reports whether the prefecture is unset
func (p Prefecture) IsZero() bool {
	return p.name == ""
}

// AllPrefectures returns the 47 prefecture names in the official order
func AllPrefectures() []string {
	names := make([]string, len(prefectureNames))
	copy(names, prefectureNames)
	return names
}
