package domain

import (
	"fmt"
	"time"
)

// NumberKind names one of the six derived numbers.
type NumberKind string

const (
	KindLifePath    NumberKind = "life_path"
	KindDestiny     NumberKind = "destiny"
	KindSoul        NumberKind = "soul"
	KindPersonality NumberKind = "personality"
	KindBirthday    NumberKind = "birthday"
	KindMaturity    NumberKind = "maturity"
)

// Kinds returns the six kinds in display order.
func Kinds() []NumberKind {
	return []NumberKind{KindLifePath, KindDestiny, KindSoul, KindPersonality, KindBirthday, KindMaturity}
}

// ParseKind accepts the snake_case name of a kind.
func ParseKind(s string) (NumberKind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// NumberDomain lists every value the kind can take. Soul and personality
// can also be 0: a name may have no vowels, or nothing but vowels.
func (k NumberKind) NumberDomain() []int {
	switch k {
	case KindSoul, KindPersonality:
		return append([]int{0}, DerivedNumbers()...)
	default:
		return DerivedNumbers()
	}
}

// BirthDate is a validated calendar date.
type BirthDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Time returns the date at midnight in loc.
func (d BirthDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

func (d BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ResultSet holds the six numbers of one calculation.
type ResultSet struct {
	LifePath    int `json:"life_path"`
	Destiny     int `json:"destiny"`
	Soul        int `json:"soul"`
	Personality int `json:"personality"`
	Birthday    int `json:"birthday"`
	Maturity    int `json:"maturity"`
}

// Get returns the number for a kind. Unknown kinds yield 0.
func (r ResultSet) Get(k NumberKind) int {
	switch k {
	case KindLifePath:
		return r.LifePath
	case KindDestiny:
		return r.Destiny
	case KindSoul:
		return r.Soul
	case KindPersonality:
		return r.Personality
	case KindBirthday:
		return r.Birthday
	case KindMaturity:
		return r.Maturity
	}
	return 0
}
