package pidigits

// Source produces π digits, consulting an optional cache first.
type Source struct {
	cache *Cache
}

// NewSource creates a digit source. cache may be nil to always compute.
func NewSource(cache *Cache) *Source {
	return &Source{cache: cache}
}

// Digits returns the first n digits of π, from cache when possible.
// Cache write failures are swallowed: the digits are still correct.
func (s *Source) Digits(n int) []int {
	if s.cache != nil {
		if digits, ok := s.cache.Get(n); ok {
			return digits
		}
	}
	digits := Digits(n)
	if s.cache != nil {
		_ = s.cache.Put(digits)
	}
	return digits
}
