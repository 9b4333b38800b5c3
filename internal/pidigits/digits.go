// Package pidigits generates the decimal digits of π and caches them on
// disk so repeated compositions do not recompute long prefixes.
package pidigits

// MaxDigits bounds a single request; melodies upstream use a few hundred
// digits at most, the ceiling just keeps the spigot array small.
const MaxDigits = 10000

// Digits returns the first n decimal digits of π, leading 3 included,
// using the Rabinowitz–Wagon spigot over a fixed int array. n <= 0 yields
// nil; n is clamped to MaxDigits.
func Digits(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > MaxDigits {
		n = MaxDigits
	}

	// One extra produced digit covers the spurious leading predigit, and
	// headroom absorbs digits buffered during runs of nines.
	iterations := n + 12
	size := iterations*10/3 + 2
	a := make([]int, size)
	for i := range a {
		a[i] = 2
	}

	out := make([]int, 0, n+4)
	predigit, nines := 0, 0

	for j := 0; j < iterations && len(out) <= n; j++ {
		q := 0
		for i := size; i > 0; i-- {
			x := 10*a[i-1] + q*i
			a[i-1] = x % (2*i - 1)
			q = x / (2*i - 1)
		}
		a[0] = q % 10
		q /= 10

		switch {
		case q == 9:
			nines++
		case q == 10:
			out = append(out, predigit+1)
			for ; nines > 0; nines-- {
				out = append(out, 0)
			}
			predigit = 0
		default:
			out = append(out, predigit)
			for ; nines > 0; nines-- {
				out = append(out, 9)
			}
			predigit = q
		}
	}
	out = append(out, predigit)

	// The very first predigit is always a spurious zero.
	if len(out) > 0 && out[0] == 0 {
		out = out[1:]
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
