package models

import (
	"sort"
	"strings"
)

type Symbol struct {
	Name       string
	Start, End uint64
}

// End is exclusive. A zero End means the size is unknown.
func (s Symbol) Contains(addr uint64) bool {
	return s.Start <= addr && (addr < s.End || s.End == 0 && addr == s.Start)
}

func (s Symbol) Size() uint64 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

type Symbols []Symbol

func (s Symbols) Len() int      { return len(s) }
func (s Symbols) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s Symbols) Less(i, j int) bool {
	if s[i].Start == s[j].Start {
		return s[i].Name < s[j].Name
	}
	return s[i].Start < s[j].Start
}

// Find returns the symbol best matching pattern: an exact name, then a decorated name the pattern
// ends at an '@' of, then a name prefix, then a substring. Ties go to the lowest address.
// "?StStart" picks "?StStart@?$ST_STORE@..." over "?StStartCompaction@?$ST_STORE@...".
func (s Symbols) Find(pattern string) (Symbol, bool) {
	if pattern == "" {
		return Symbol{}, false
	}
	matchers := []func(string) bool{
		func(name string) bool { return name == pattern },
		func(name string) bool { return strings.HasPrefix(name, pattern+"@") },
		func(name string) bool { return strings.HasPrefix(name, pattern) },
		func(name string) bool { return strings.Contains(name, pattern) },
	}
	for _, match := range matchers {
		var best *Symbol
		for i := range s {
			sym := &s[i]
			if match(sym.Name) && (best == nil || sym.Start < best.Start) {
				best = sym
			}
		}
		if best != nil {
			return *best, true
		}
	}
	return Symbol{}, false
}

// Match returns every symbol whose name contains pattern.
func (s Symbols) Match(pattern string) Symbols {
	var ret Symbols
	for _, sym := range s {
		if strings.Contains(sym.Name, pattern) {
			ret = append(ret, sym)
		}
	}
	return ret
}

// Lookup returns the symbol starting at addr, or else the closest sized symbol containing it.
func (s Symbols) Lookup(addr uint64) (Symbol, bool) {
	var best *Symbol
	for i := range s {
		sym := &s[i]
		if sym.Start == addr {
			return *sym, true
		}
		if sym.Contains(addr) && (best == nil || sym.Start > best.Start) {
			best = sym
		}
	}
	if best != nil {
		return *best, true
	}
	return Symbol{}, false
}

// Next returns the start of the first symbol after addr, or 0.
func (s Symbols) Next(addr uint64) uint64 {
	var next uint64
	for _, sym := range s {
		if sym.Start > addr && (next == 0 || sym.Start < next) {
			next = sym.Start
		}
	}
	return next
}

func (s Symbols) Sorted() Symbols {
	ret := make(Symbols, len(s))
	copy(ret, s)
	sort.Sort(ret)
	return ret
}
