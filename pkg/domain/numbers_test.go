package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLifePath_Scenario(t *testing.T) {
	// 1990 -> 19 -> 1, 7 -> 7, 15 -> 6; 1+7+6 = 14 -> 5
	assert.Equal(t, 5, LifePath(1990, 7, 15))
}

func TestLifePath_ReducesComponentsFirst(t *testing.T) {
	// Each component is 11, so the total is 33. Reducing the raw digits
	// 2+0+0+9+1+1+1+1 = 15 would give 6 instead.
	assert.Equal(t, 33, LifePath(2009, 11, 11))
	assert.Equal(t, 11, LifePath(1990, 1, 9))
}

func TestLifePath_DomainOverValidDates(t *testing.T) {
	start := time.Date(1876, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		lp := LifePath(d.Year(), int(d.Month()), d.Day())
		if !IsDerivedNumber(lp) {
			t.Fatalf("LifePath(%s) = %d, outside the derived domain", d.Format("2006-01-02"), lp)
		}
	}
}

func TestNameNumbers_JohnSmith(t *testing.T) {
	assert.Equal(t, 8, Destiny(Pythagorean, "JOHN SMITH"))
	assert.Equal(t, 6, Soul(Pythagorean, "JOHN SMITH"))
	assert.Equal(t, 11, Personality(Pythagorean, "JOHN SMITH"))

	// Case does not matter.
	assert.Equal(t, 8, Destiny(Pythagorean, "john smith"))
	assert.Equal(t, 11, Personality(Pythagorean, "John Smith"))
}

func TestNameNumbers_DecompositionIdentity(t *testing.T) {
	names := []string{
		"JOHN SMITH", "Anna Lee", "Jo", "Lynn", "Aia", "Maria Del Carmen",
		"Zz", "Quentin Tarantino", "Ada Lovelace", "Alexander Graham Bell",
	}
	for _, name := range names {
		vowels := Pythagorean.NameSum(name, VowelsOnly)
		consonants := Pythagorean.NameSum(name, ConsonantsOnly)
		assert.Equal(t, Reduce(vowels+consonants), Destiny(Pythagorean, name), name)
	}
}

func TestNameNumbers_ZeroContributions(t *testing.T) {
	// No vowels at all: the soul sum is 0 and Reduce leaves it at 0.
	assert.Equal(t, 0, Soul(Pythagorean, "Lynn"))
	// Nothing but vowels: the personality sum is 0.
	assert.Equal(t, 0, Personality(Pythagorean, "Aia"))
	assert.NotZero(t, Destiny(Pythagorean, "Lynn"))
}

func TestBirthdayAndMaturity(t *testing.T) {
	assert.Equal(t, 6, Birthday(15))
	assert.Equal(t, 11, Birthday(29))
	assert.Equal(t, 22, Birthday(22))
	assert.Equal(t, 1, Birthday(10))

	assert.Equal(t, 4, Maturity(5, 8))
	assert.Equal(t, 33, Maturity(11, 22))
	assert.Equal(t, 9, Maturity(9, 9))
}

func TestDerive(t *testing.T) {
	got := Derive(Pythagorean, BirthDate{Year: 1990, Month: 7, Day: 15}, "JOHN SMITH")
	want := ResultSet{
		LifePath:    5,
		Destiny:     8,
		Soul:        6,
		Personality: 11,
		Birthday:    6,
		Maturity:    4,
	}
	assert.Equal(t, want, got)

	for _, k := range Kinds() {
		assert.Contains(t, k.NumberDomain(), got.Get(k), k)
	}
}
