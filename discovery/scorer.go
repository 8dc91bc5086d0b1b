package discovery

import "strings"

// score computes a candidate's match strength against a signature: a
// disqualifier returns 0 immediately, and every remaining rule contributes
// an additive bonus on top of the name score.
func score(c Candidate, s Signature) float64 {
	if !kindMatches(s.Kind, c.Kind) {
		return 0
	}

	total := nameScore(c.Name, s)
	if total == 0 {
		return 0
	}

	if len(s.Methods) > 0 {
		matches := countShared(s.Methods, c.Methods)
		if matches != len(s.Methods) {
			ratio := float64(matches) / float64(len(s.Methods))
			if ratio < 0.5 {
				return 0
			}
			total += 0.2 * ratio
		} else {
			total += 0.3
		}
	}

	if len(s.Decorators) > 0 {
		if countShared(s.Decorators, c.Decorators) != len(s.Decorators) {
			return 0
		}
		total += 0.05
	}

	if len(s.Bases) > 0 {
		if countShared(s.Bases, c.Bases) != len(s.Bases) {
			return 0
		}
		total += 0.1
	}

	if len(s.DocstringContains) > 0 {
		doc := strings.ToLower(c.Docstring)
		matches := 0
		for _, fragment := range s.DocstringContains {
			if strings.Contains(doc, strings.ToLower(fragment)) {
				matches++
			}
		}
		total += 0.02 * float64(matches)
	}

	if s.Module != "" {
		if c.Module != s.Module {
			return 0
		}
		total += 0.1
	} else if s.ModulePattern != "" {
		if s.modRE == nil || !s.modRE.MatchString(c.Module) {
			return 0
		}
		total += 0.05
	}

	if fileStem(c.FilePath) == strings.ToLower(s.Name) {
		total += 0.02
	}

	return total
}

// nameScore is the only path that can produce a nonzero base score; every
// additive bonus above stacks on top of it.
func nameScore(candidateName string, s Signature) float64 {
	if s.Regex {
		if s.nameRE != nil && s.nameRE.MatchString(candidateName) {
			return 0.6
		}
		return 0
	}

	name, target := candidateName, s.Name
	if !s.CaseSensitiveValue() {
		name = strings.ToLower(name)
		target = strings.ToLower(target)
	}

	switch {
	case name == target:
		return 0.7
	case strings.HasPrefix(name, target):
		return 0.5
	case strings.HasSuffix(name, target):
		return 0.4
	case strings.Contains(name, target):
		return 0.3
	default:
		return 0
	}
}

func kindMatches(requested, actual Kind) bool {
	if requested == "" {
		requested = KindClass
	}
	switch requested {
	case KindAny:
		return true
	case KindClass:
		return actual == KindClass
	case KindFunction:
		return actual == KindFunction || actual == KindAsyncFunction
	default:
		return requested == actual
	}
}

// countShared counts how many of want are present in have, both treated as
// sets (duplicates in either do not inflate the count of a single name).
func countShared(want, have []string) int {
	haveSet := make(map[string]struct{}, len(have))
	for _, h := range have {
		haveSet[h] = struct{}{}
	}
	seen := make(map[string]struct{}, len(want))
	count := 0
	for _, w := range want {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := haveSet[w]; ok {
			count++
		}
	}
	return count
}

func fileStem(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.ToLower(base)
}
