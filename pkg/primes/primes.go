package primes

// Predicate decides whether n belongs to the counted set. It must be pure.
type Predicate func(n uint64) bool

// IsPrime reports whether n is prime.
func IsPrime(n uint64) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}

	// i <= n/i is i*i <= n without the multiplication wrapping near 2^64.
	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// CountSequential counts the values in [start, end) matching pred on the
// calling goroutine.
func CountSequential(start, end uint64, pred Predicate) uint64 {
	var count uint64
	for n := start; n < end; n++ {
		if pred(n) {
			count++
		}
	}
	return count
}
