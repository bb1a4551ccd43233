// Package rules compiles a PatternRule list into a CompiledRuleSet: parallel
// file/directory dispatch tables that classify a node in O(1) amortized
// time instead of testing ~60 globs linearly per node.
package rules

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/mdemirhan/dux/pkg/diskscan/automaton"
	"github.com/mdemirhan/dux/pkg/diskscan/trie"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

type matcherKind int

const (
	kindContains matcherKind = iota
	kindEndsWith
	kindStartsWith
	kindExact
	kindGlob
)

// classified is the result of turning one expanded pattern into a fast
// matcher. value and alt are already lowercased.
type classified struct {
	kind  matcherKind
	value string
	alt   string // CONTAINS only: the end-only variant without a trailing slash
}

func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// classify turns one expanded pattern (no braces left) into a matcher kind,
// mirroring the pattern shapes the rule format documents: **/NAME,
// **/SEG/**, **/*.EXT, **/PREFIX*, with anything else falling back to GLOB.
func classify(pattern string) classified {
	if !strings.HasPrefix(pattern, "**/") {
		return classified{kind: kindGlob, value: strings.ToLower(pattern)}
	}
	rest := pattern[3:]

	if strings.HasSuffix(rest, "/**") {
		middle := rest[:len(rest)-3]
		if !hasGlobChars(middle) {
			mid := strings.ToLower(middle)
			return classified{kind: kindContains, value: "/" + mid + "/", alt: "/" + mid}
		}
		return classified{kind: kindGlob, value: strings.ToLower(pattern)}
	}

	if strings.HasPrefix(rest, "*") && !hasGlobChars(rest[1:]) {
		return classified{kind: kindEndsWith, value: strings.ToLower(rest[1:])}
	}

	if strings.HasSuffix(rest, "*") && !hasGlobChars(rest[:len(rest)-1]) {
		return classified{kind: kindStartsWith, value: strings.ToLower(rest[:len(rest)-1])}
	}

	if !hasGlobChars(rest) {
		return classified{kind: kindExact, value: strings.ToLower(rest)}
	}

	return classified{kind: kindGlob, value: strings.ToLower(pattern)}
}

// expandBraces recursively rewrites the first {a,b,c} alternative into the
// cross product of patterns, so "**/*.{log,tmp}" becomes two patterns.
func expandBraces(pattern string) []string {
	start := strings.Index(pattern, "{")
	if start == -1 {
		return []string{pattern}
	}
	end := strings.Index(pattern[start+1:], "}")
	if end == -1 {
		return []string{pattern}
	}
	end += start + 1

	choices := strings.Split(pattern[start+1:end], ",")
	prefix, suffix := pattern[:start], pattern[end+1:]

	var expanded []string
	for _, choice := range choices {
		expanded = append(expanded, expandBraces(prefix+choice+suffix)...)
	}
	return expanded
}

// acEntry is the value stored in the automaton for one matched byte key:
// every rule that key can satisfy, and whether the key only counts as a
// match at the very end of the haystack (ENDSWITH patterns).
type acEntry struct {
	rule    *types.PatternRule
	endOnly bool
}

type globEntry struct {
	rule     *types.PatternRule
	basePath glob.Glob // non-nil only for patterns ending in "/**"
	full     glob.Glob
}

type additionalEntry struct {
	base string
	rule *types.PatternRule
}

// byKind holds every compiled matcher for one node kind (file or dir).
type byKind struct {
	exact      map[string][]*types.PatternRule
	automaton  *automaton.Automaton
	prefixTrie *trie.Trie
	glob       []globEntry
	additional []additionalEntry
}

// CompiledRuleSet is the frozen output of Compile: two byKind dispatch
// tables, one per node role, built so the insight generator's hot loop
// never has to branch on ApplyTo.
type CompiledRuleSet struct {
	forFile byKind
	forDir  byKind
}

type builder struct {
	exact      map[string][]*types.PatternRule
	acKeys     map[string][]acEntry
	startsWith map[string][]*types.PatternRule
	glob       []globEntry
	additional []additionalEntry
}

func newBuilder() *builder {
	return &builder{
		exact:      make(map[string][]*types.PatternRule),
		acKeys:     make(map[string][]acEntry),
		startsWith: make(map[string][]*types.PatternRule),
	}
}

func (b *builder) addContains(value, alt string, rule *types.PatternRule) {
	b.acKeys[value] = append(b.acKeys[value], acEntry{rule: rule, endOnly: false})
	b.acKeys[alt] = append(b.acKeys[alt], acEntry{rule: rule, endOnly: true})
}

func (b *builder) addEndsWith(suffix string, rule *types.PatternRule) {
	b.acKeys[suffix] = append(b.acKeys[suffix], acEntry{rule: rule, endOnly: true})
}

func (b *builder) addExact(name string, rule *types.PatternRule) {
	b.exact[name] = append(b.exact[name], rule)
}

func (b *builder) addStartsWith(prefix string, rule *types.PatternRule) {
	b.startsWith[prefix] = append(b.startsWith[prefix], rule)
}

func (b *builder) addGlob(pattern string, rule *types.PatternRule) {
	full := glob.MustCompile(pattern)
	var base glob.Glob
	if strings.HasSuffix(pattern, "/**") {
		base = glob.MustCompile(pattern[:len(pattern)-len("/**")])
	}
	b.glob = append(b.glob, globEntry{rule: rule, basePath: base, full: full})
}

func (b *builder) addAdditional(basePath string, rule *types.PatternRule) {
	b.additional = append(b.additional, additionalEntry{base: basePath, rule: rule})
}

func (b *builder) build() byKind {
	var ac *automaton.Automaton
	if len(b.acKeys) > 0 {
		ac = automaton.New()
		for key, entries := range b.acKeys {
			_ = ac.AddKey([]byte(key), entries)
		}
		ac.Finalize()
	}

	var pt *trie.Trie
	if len(b.startsWith) > 0 {
		pt = trie.New()
		for prefix, rules := range b.startsWith {
			_ = pt.AddKey([]byte(prefix), rules)
		}
		pt.Finalize()
	}

	return byKind{
		exact:      b.exact,
		automaton:  ac,
		prefixTrie: pt,
		glob:       b.glob,
		additional: b.additional,
	}
}

// AdditionalPaths maps a category to extra absolute paths that should be
// treated as matches for that category regardless of pattern rules.
type AdditionalPaths map[types.Category][]string

// Compile expands brace alternatives, classifies every pattern into its
// fastest matcher kind, and builds the frozen automaton/trie dispatch
// tables for both file and directory roles.
func Compile(ruleList []types.PatternRule, additional AdditionalPaths) *CompiledRuleSet {
	fileBuilder := newBuilder()
	dirBuilder := newBuilder()

	for i := range ruleList {
		rule := &ruleList[i]
		for _, expanded := range expandBraces(rule.Pattern) {
			m := classify(expanded)
			addToRole(fileBuilder, dirBuilder, rule, m)
		}
	}

	for category, paths := range additional {
		for _, p := range paths {
			rule := &types.PatternRule{
				Name:     "additional:" + category.String(),
				Pattern:  p,
				Category: category,
				ApplyTo:  types.ApplyBoth,
			}
			fileBuilder.addAdditional(p, rule)
			dirBuilder.addAdditional(p, rule)
		}
	}

	return &CompiledRuleSet{
		forFile: fileBuilder.build(),
		forDir:  dirBuilder.build(),
	}
}

func addToRole(fileBuilder, dirBuilder *builder, rule *types.PatternRule, m classified) {
	applyFile := rule.ApplyTo&types.ApplyFile != 0
	applyDir := rule.ApplyTo&types.ApplyDir != 0

	switch m.kind {
	case kindContains:
		if applyFile {
			fileBuilder.addContains(m.value, m.alt, rule)
		}
		if applyDir {
			dirBuilder.addContains(m.value, m.alt, rule)
		}
	case kindEndsWith:
		if applyFile {
			fileBuilder.addEndsWith(m.value, rule)
		}
		if applyDir {
			dirBuilder.addEndsWith(m.value, rule)
		}
	case kindStartsWith:
		if applyFile {
			fileBuilder.addStartsWith(m.value, rule)
		}
		if applyDir {
			dirBuilder.addStartsWith(m.value, rule)
		}
	case kindExact:
		if applyFile {
			fileBuilder.addExact(m.value, rule)
		}
		if applyDir {
			dirBuilder.addExact(m.value, rule)
		}
	default: // kindGlob
		if applyFile {
			fileBuilder.addGlob(m.value, rule)
		}
		if applyDir {
			dirBuilder.addGlob(m.value, rule)
		}
	}
}

// MatchAll returns every rule matching a node, at most one per category
// (first match wins), evaluating tiers in the fixed order: exact,
// automaton (CONTAINS + ENDSWITH), prefix trie (STARTSWITH), glob fallback,
// then additional paths. lpath and lbase must already be lowercased.
func MatchAll(rs *CompiledRuleSet, lpath, lbase string, isDir bool, rawPath string) []*types.PatternRule {
	bk := &rs.forFile
	if isDir {
		bk = &rs.forDir
	}

	var matched []*types.PatternRule
	seen := make(map[types.Category]bool)
	try := func(rule *types.PatternRule) {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			matched = append(matched, rule)
		}
	}

	if hits, ok := bk.exact[lbase]; ok {
		for _, rule := range hits {
			try(rule)
		}
	}

	if bk.automaton != nil {
		lastIdx := len(lpath) - 1
		matches, _ := bk.automaton.Find([]byte(lpath))
		for _, m := range matches {
			for _, entry := range m.Value.([]acEntry) {
				if entry.endOnly && m.EndIndex != lastIdx {
					continue
				}
				try(entry.rule)
			}
		}
	}

	if bk.prefixTrie != nil {
		values, _ := bk.prefixTrie.Find([]byte(lbase))
		for _, v := range values {
			for _, rule := range v.([]*types.PatternRule) {
				try(rule)
			}
		}
	}

	for _, g := range bk.glob {
		if (g.basePath != nil && g.basePath.Match(lpath)) || g.full.Match(lpath) || g.full.Match(lbase) {
			try(g.rule)
		}
	}

	for _, a := range bk.additional {
		if rawPath == a.base || strings.HasPrefix(rawPath, a.base+"/") {
			try(a.rule)
		}
	}

	return matched
}
