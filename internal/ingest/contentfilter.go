package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentContentChecks bounds the fan-out of content matching.
const maxConcurrentContentChecks = 16

// FilterByContent returns the subset of files whose basename matches any OR
// term, whose content matches any OR term, or whose content contains every
// AND term. Matching is case-insensitive. Content checks run concurrently;
// a file that cannot be read is treated as non-matching rather than an
// error. The result preserves input order and is de-duplicated, though
// callers must not rely on ordering.
func FilterByContent(filePaths []string, orTerms []string, andTerms []string) []string {
	if len(orTerms) == 0 && len(andTerms) == 0 {
		return filePaths
	}

	lowercaseOrTerms := lowercaseAll(orTerms)
	lowercaseAndTerms := lowercaseAll(andTerms)

	matchedFlags := make([]bool, len(filePaths))
	var group errgroup.Group
	group.SetLimit(maxConcurrentContentChecks)
	for index, filePath := range filePaths {
		group.Go(func() error {
			matchedFlags[index] = fileMatchesTerms(filePath, lowercaseOrTerms, lowercaseAndTerms)
			return nil
		})
	}
	// Workers never return errors; per-file failures mean non-matching.
	_ = group.Wait()

	seenPaths := make(map[string]struct{}, len(filePaths))
	var matchedPaths []string
	for index, filePath := range filePaths {
		if !matchedFlags[index] {
			continue
		}
		if _, seen := seenPaths[filePath]; seen {
			continue
		}
		seenPaths[filePath] = struct{}{}
		matchedPaths = append(matchedPaths, filePath)
	}
	return matchedPaths
}

// fileMatchesTerms evaluates one file against lowercase OR and AND terms.
func fileMatchesTerms(filePath string, lowercaseOrTerms []string, lowercaseAndTerms []string) bool {
	lowercaseBaseName := strings.ToLower(filepath.Base(filePath))
	for _, orTerm := range lowercaseOrTerms {
		if strings.Contains(lowercaseBaseName, orTerm) {
			return true
		}
	}

	if len(lowercaseOrTerms) == 0 && len(lowercaseAndTerms) == 0 {
		return false
	}

	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return false
	}
	lowercaseContent := strings.ToLower(string(fileBytes))

	for _, orTerm := range lowercaseOrTerms {
		if strings.Contains(lowercaseContent, orTerm) {
			return true
		}
	}

	if len(lowercaseAndTerms) == 0 {
		return false
	}
	for _, andTerm := range lowercaseAndTerms {
		if !strings.Contains(lowercaseContent, andTerm) {
			return false
		}
	}
	return true
}

// lowercaseAll lowercases every term, dropping empties.
func lowercaseAll(terms []string) []string {
	var lowercaseTerms []string
	for _, term := range terms {
		trimmedTerm := strings.TrimSpace(term)
		if trimmedTerm == "" {
			continue
		}
		lowercaseTerms = append(lowercaseTerms, strings.ToLower(trimmedTerm))
	}
	return lowercaseTerms
}
