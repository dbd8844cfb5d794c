package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	negationPrefix     = "!"
	commentPrefix      = "#"
	pathSeparator      = "/"
	recursiveSuffix    = "/**"
	globMetacharacters = "*?[{"
)

// NormalizeGitignore turns raw .gitignore lines into glob patterns suitable
// for a matcher rooted at the ignore file's directory. Negated lines pass
// through unchanged; a leading slash is stripped since anchoring is implicit;
// a trailing slash marks a directory-only pattern and gains a recursive
// suffix. Blank lines and comments are dropped. Normalization is best-effort
// and never fails: lines it cannot interpret are passed through as literal
// patterns.
func NormalizeGitignore(rawLines []string) []string {
	var normalizedPatterns []string
	for _, rawLine := range rawLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		if strings.HasPrefix(trimmedLine, negationPrefix) {
			normalizedPatterns = append(normalizedPatterns, trimmedLine)
			continue
		}
		trimmedLine = strings.TrimPrefix(trimmedLine, pathSeparator)
		if strings.HasSuffix(trimmedLine, recursiveSuffix) {
			normalizedPatterns = append(normalizedPatterns, trimmedLine)
			continue
		}
		if strings.HasSuffix(trimmedLine, pathSeparator) {
			normalizedPatterns = append(normalizedPatterns, trimmedLine+"**")
			continue
		}
		normalizedPatterns = append(normalizedPatterns, trimmedLine)
	}
	return normalizedPatterns
}

// ResolveIncludePatterns resolves raw include patterns against the
// filesystem rooted at baseDirectory. A pattern naming an existing file
// becomes an exact-path pattern; one naming an existing directory gains a
// recursive suffix; one containing a glob metacharacter passes through;
// anything else is treated as a directory-style pattern.
func ResolveIncludePatterns(baseDirectory string, rawPatterns []string) []string {
	var resolvedPatterns []string
	for _, rawPattern := range rawPatterns {
		trimmedPattern := filepath.ToSlash(strings.TrimSpace(rawPattern))
		trimmedPattern = strings.TrimSuffix(trimmedPattern, pathSeparator)
		if trimmedPattern == "" {
			continue
		}
		entryInfo, statError := os.Stat(filepath.Join(baseDirectory, filepath.FromSlash(trimmedPattern)))
		if statError == nil {
			if entryInfo.IsDir() {
				resolvedPatterns = append(resolvedPatterns, trimmedPattern+recursiveSuffix)
			} else {
				resolvedPatterns = append(resolvedPatterns, trimmedPattern)
			}
			continue
		}
		if strings.ContainsAny(trimmedPattern, globMetacharacters) {
			resolvedPatterns = append(resolvedPatterns, trimmedPattern)
			continue
		}
		resolvedPatterns = append(resolvedPatterns, trimmedPattern+recursiveSuffix)
	}
	return resolvedPatterns
}

// PatternSet evaluates a layered union of glob patterns against relative
// paths. Negated patterns (leading "!") re-include paths that an earlier
// positive pattern excluded.
type PatternSet struct {
	positivePatterns []string
	negatedPatterns  []string
}

// NewPatternSet partitions patterns into positive and negated groups.
func NewPatternSet(patterns []string) *PatternSet {
	patternSet := &PatternSet{}
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, negationPrefix) {
			patternSet.negatedPatterns = append(patternSet.negatedPatterns, strings.TrimPrefix(pattern, negationPrefix))
			continue
		}
		patternSet.positivePatterns = append(patternSet.positivePatterns, pattern)
	}
	return patternSet
}

// Matches reports whether relativePath is covered by the set: it must match
// at least one positive pattern and no negated pattern.
func (patternSet *PatternSet) Matches(relativePath string) bool {
	if !matchesAnyPattern(patternSet.positivePatterns, relativePath) {
		return false
	}
	return !matchesAnyPattern(patternSet.negatedPatterns, relativePath)
}

// MatchesDirectory reports whether the directory at relativePath is covered
// by the set, either directly or through a pattern that matches everything
// beneath it. The probe character cannot occur in real file names, so a
// match means descent into the directory is pointless.
func (patternSet *PatternSet) MatchesDirectory(relativePath string) bool {
	if patternSet.Matches(relativePath) {
		return true
	}
	return patternSet.Matches(relativePath + pathSeparator + directoryProbeName)
}

// directoryProbeName is a synthetic child name used to test whether a
// pattern swallows a directory's entire subtree.
const directoryProbeName = "\x00"

// MatchesAnyAnchoredGlob reports whether relativePath matches any of the
// patterns evaluated verbatim, rooted at the scan directory. Resolved
// include patterns use these stricter semantics.
func MatchesAnyAnchoredGlob(patterns []string, relativePath string) bool {
	for _, pattern := range patterns {
		matched, matchError := doublestar.Match(pattern, relativePath)
		if matchError == nil && matched {
			return true
		}
	}
	return false
}

// matchesAnyPattern reports whether any pattern in the list covers relativePath.
func matchesAnyPattern(patterns []string, relativePath string) bool {
	for _, pattern := range patterns {
		if globMatches(pattern, relativePath) {
			return true
		}
	}
	return false
}

// globMatches evaluates a single glob pattern against a slash-separated
// relative path. Patterns containing a slash are anchored at the root and
// also cover the subtree below a matched directory. Patterns without a
// slash match an entry at any depth, and the subtree below it.
func globMatches(pattern, relativePath string) bool {
	candidates := []string{pattern}
	if !strings.HasSuffix(pattern, recursiveSuffix) {
		candidates = append(candidates, pattern+recursiveSuffix)
	}
	if !strings.Contains(pattern, pathSeparator) {
		candidates = append(candidates, "**/"+pattern, "**/"+pattern+recursiveSuffix)
	}
	for _, candidate := range candidates {
		matched, matchError := doublestar.Match(candidate, relativePath)
		if matchError == nil && matched {
			return true
		}
	}
	return false
}
