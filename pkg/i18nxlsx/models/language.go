package models

// LanguageSet is an ordered, de-duplicated list of language codes.
// Order is the order in which codes were first added.
type LanguageSet struct {
	codes []string
	seen  map[string]struct{}
}

// NewLanguageSet returns a set holding codes in first-seen order.
func NewLanguageSet(codes ...string) LanguageSet {
	var s LanguageSet
	for _, c := range codes {
		s.Add(c)
	}
	return s
}

// Add appends code unless it is empty or already present.
// It reports whether the code was added.
func (s *LanguageSet) Add(code string) bool {
	if code == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[code]; ok {
		return false
	}
	s.seen[code] = struct{}{}
	s.codes = append(s.codes, code)
	return true
}

// Contains reports whether code is in the set.
func (s LanguageSet) Contains(code string) bool {
	_, ok := s.seen[code]
	return ok
}

// Codes returns a copy of the codes in order.
func (s LanguageSet) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of codes.
func (s LanguageSet) Len() int {
	return len(s.codes)
}
