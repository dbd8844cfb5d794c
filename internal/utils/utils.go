// Package utils contains general helper functions used across the promptpack tool.
package utils

import (
	"path/filepath"
	"strings"
)

// GitIgnoreFileName is the name of the Git ignore file read at the scan root.
const GitIgnoreFileName = ".gitignore"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash-separated relative path from root
// to fullPath. Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// SplitTerms splits each value on commas and trims whitespace, dropping
// empty entries. Search terms and extension lists arrive comma-separated.
func SplitTerms(values []string) []string {
	var terms []string
	for _, value := range values {
		for _, piece := range strings.Split(value, ",") {
			trimmedPiece := strings.TrimSpace(piece)
			if trimmedPiece != "" {
				terms = append(terms, trimmedPiece)
			}
		}
	}
	return terms
}

// IsSVGName reports whether the file name carries the .svg extension.
func IsSVGName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".svg")
}
