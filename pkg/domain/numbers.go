package domain

// LifePath reduces year, month and day separately, then reduces their sum.
// The two stages differ numerically from reducing the raw sum, and a master
// number may surface at either one.
func LifePath(year, month, day int) int {
	return Reduce(Reduce(year) + Reduce(month) + Reduce(day))
}

// Destiny reduces the value of every letter in the name.
func Destiny(t LetterTable, name string) int {
	return Reduce(t.NameSum(name, AllLetters))
}

// Soul reduces the value of the vowels in the name.
// A name without vowels yields 0.
func Soul(t LetterTable, name string) int {
	return Reduce(t.NameSum(name, VowelsOnly))
}

// Personality reduces the value of the non-vowel letters in the name.
// A name made only of vowels yields 0.
func Personality(t LetterTable, name string) int {
	return Reduce(t.NameSum(name, ConsonantsOnly))
}

// Birthday reduces the day of month.
func Birthday(day int) int {
	return Reduce(day)
}

// Maturity reduces the sum of an already reduced life path and destiny.
func Maturity(lifePath, destiny int) int {
	return Reduce(lifePath + destiny)
}

// Derive computes all six numbers for one validated date and name.
func Derive(t LetterTable, date BirthDate, name string) ResultSet {
	lifePath := LifePath(date.Year, date.Month, date.Day)
	destiny := Destiny(t, name)
	return ResultSet{
		LifePath:    lifePath,
		Destiny:     destiny,
		Soul:        Soul(t, name),
		Personality: Personality(t, name),
		Birthday:    Birthday(date.Day),
		Maturity:    Maturity(lifePath, destiny),
	}
}
