package api

import (
	"sort"
	"strings"
)

// MockFactory produces a canned response body.
type MockFactory func() any

// MockMap maps "METHOD /path/:param" keys to response factories.
//
// Lookup matches on method and path only; the query string is ignored.
// A ":name" segment matches any single path segment, but the captured value
// is not passed to the factory: every id gets the same canned entity.
type MockMap map[string]MockFactory

type mockPattern struct {
	key      string
	method   string
	segments []string
	literals int
}

// Lookup finds the factory for method and path. An exact key wins over a
// pattern; among patterns the one with more literal segments wins, then the
// one whose first literal comes earlier, then the lexically smaller key.
func (m MockMap) Lookup(method, path string) (MockFactory, string, bool) {
	method = strings.ToUpper(method)
	path = stripQuery(path)

	if f, ok := m[method+" "+path]; ok {
		return f, method + " " + path, true
	}

	reqSegs := splitPath(path)
	var best *mockPattern
	for _, p := range m.patterns() {
		if p.method != method || !p.matches(reqSegs) {
			continue
		}
		if best == nil || p.moreSpecific(*best) {
			cp := p
			best = &cp
		}
	}
	if best == nil {
		return nil, "", false
	}
	return m[best.key], best.key, true
}

// Keys returns every key sorted.
func (m MockMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m MockMap) patterns() []mockPattern {
	out := make([]mockPattern, 0, len(m))
	for key := range m {
		method, path, ok := strings.Cut(key, " ")
		if !ok {
			continue
		}
		segs := splitPath(stripQuery(strings.TrimSpace(path)))
		lit := 0
		for _, s := range segs {
			if !strings.HasPrefix(s, ":") {
				lit++
			}
		}
		out = append(out, mockPattern{
			key:      key,
			method:   strings.ToUpper(method),
			segments: segs,
			literals: lit,
		})
	}
	return out
}

func (p mockPattern) matches(req []string) bool {
	if len(p.segments) != len(req) {
		return false
	}
	for i, s := range p.segments {
		if strings.HasPrefix(s, ":") {
			if req[i] == "" {
				return false
			}
			continue
		}
		if s != req[i] {
			return false
		}
	}
	return true
}

func (p mockPattern) moreSpecific(o mockPattern) bool {
	if p.literals != o.literals {
		return p.literals > o.literals
	}
	for i := range p.segments {
		pl := !strings.HasPrefix(p.segments[i], ":")
		ol := !strings.HasPrefix(o.segments[i], ":")
		if pl != ol {
			return pl
		}
	}
	return p.key < o.key
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func mergeMocks(dst, src MockMap) MockMap {
	if dst == nil {
		dst = MockMap{}
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
