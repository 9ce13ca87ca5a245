package domain

// MasterNumbers are never folded further by Reduce.
var MasterNumbers = []int{11, 22, 33}

// IsMasterNumber reports whether n is 11, 22 or 33.
func IsMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce folds n by summing its decimal digits until it is a single digit or
// a master number. The master check runs before every fold, so 29 → 11 stops
// at 11. Values <= 9 (including 0) are returned unchanged.
func Reduce(n int) int {
	for n > 9 {
		if IsMasterNumber(n) {
			return n
		}
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// IsDerivedNumber reports whether n lies in the domain every derivation
// produces: 1..9, 11, 22 and 33.
func IsDerivedNumber(n int) bool {
	return (n >= 1 && n <= 9) || IsMasterNumber(n)
}

// DerivedNumbers lists the derivation domain in ascending order.
func DerivedNumbers() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22, 33}
}
