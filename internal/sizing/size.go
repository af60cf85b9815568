// Package sizing provides overflow-checked offset arithmetic.
package sizing

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// AlignUp rounds n up to the next multiple of align, returning false on
// overflow or a zero alignment.
func AlignUp(n, align uint64) (uint64, bool) {
	if align == 0 {
		return 0, false
	}
	rem := n % align
	if rem == 0 {
		return n, true
	}
	return AddUint64(n, align-rem)
}
