package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/promptpack/promptpack/internal/utils"
)

const (
	patternAlpha = "alpha"
	patternBeta  = "beta"
	patternGamma = "gamma"
)

// TestDeduplicatePatterns verifies removal of duplicate patterns while preserving order.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	testCases := []struct {
		name             string
		patterns         []string
		expectedPatterns []string
	}{
		{
			name:             "NilInput",
			patterns:         nil,
			expectedPatterns: []string{},
		},
		{
			name:             "NoDuplicates",
			patterns:         []string{patternAlpha, patternBeta, patternGamma},
			expectedPatterns: []string{patternAlpha, patternBeta, patternGamma},
		},
		{
			name:             "WithDuplicates",
			patterns:         []string{patternAlpha, patternBeta, patternAlpha, patternGamma, patternBeta},
			expectedPatterns: []string{patternAlpha, patternBeta, patternGamma},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.DeduplicatePatterns(testCase.patterns)
			if !reflect.DeepEqual(result, testCase.expectedPatterns) {
				testingHandle.Fatalf("expected %v, got %v", testCase.expectedPatterns, result)
			}
		})
	}
}

// TestSplitTerms verifies comma splitting, trimming, and empty-entry removal.
func TestSplitTerms(testingHandle *testing.T) {
	testCases := []struct {
		name          string
		values        []string
		expectedTerms []string
	}{
		{
			name:          "NilInput",
			values:        nil,
			expectedTerms: nil,
		},
		{
			name:          "SingleValue",
			values:        []string{patternAlpha},
			expectedTerms: []string{patternAlpha},
		},
		{
			name:          "CommaSeparated",
			values:        []string{"alpha, beta ,gamma"},
			expectedTerms: []string{patternAlpha, patternBeta, patternGamma},
		},
		{
			name:          "MultipleValuesWithEmpties",
			values:        []string{"alpha,,", " ", "beta"},
			expectedTerms: []string{patternAlpha, patternBeta},
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.SplitTerms(testCase.values)
			if !reflect.DeepEqual(result, testCase.expectedTerms) {
				testingHandle.Fatalf("expected %v, got %v", testCase.expectedTerms, result)
			}
		})
	}
}

// TestIsSVGName verifies SVG detection by extension, case-insensitively.
func TestIsSVGName(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		fileName       string
		expectedResult bool
	}{
		{name: "LowercaseExtension", fileName: "logo.svg", expectedResult: true},
		{name: "UppercaseExtension", fileName: "LOGO.SVG", expectedResult: true},
		{name: "OtherExtension", fileName: "logo.png", expectedResult: false},
		{name: "NoExtension", fileName: "svg", expectedResult: false},
		{name: "ExtensionInMiddle", fileName: "logo.svg.bak", expectedResult: false},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.IsSVGName(testCase.fileName)
			if result != testCase.expectedResult {
				testingHandle.Fatalf("expected %v for %s, got %v", testCase.expectedResult, testCase.fileName, result)
			}
		})
	}
}

// TestRelativePathOrSelf verifies relative path calculation against a root.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	nestedPath := filepath.Join(temporaryDirectory, "src", "main.go")

	testCases := []struct {
		name         string
		fullPath     string
		root         string
		expectedPath string
	}{
		{
			name:         "NestedFile",
			fullPath:     nestedPath,
			root:         temporaryDirectory,
			expectedPath: "src/main.go",
		},
		{
			name:         "SamePath",
			fullPath:     temporaryDirectory,
			root:         temporaryDirectory,
			expectedPath: ".",
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.RelativePathOrSelf(testCase.fullPath, testCase.root)
			if result != testCase.expectedPath {
				testingHandle.Fatalf("expected %s, got %s", testCase.expectedPath, result)
			}
		})
	}
}

// TestGetApplicationVersion verifies that version resolution always yields
// a non-empty value, whatever the build environment provides.
func TestGetApplicationVersion(testingHandle *testing.T) {
	version := utils.GetApplicationVersion()
	if version == "" {
		testingHandle.Fatal("expected a non-empty version string")
	}
}

// TestFormatFileSize verifies human-readable size formatting.
func TestFormatFileSize(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		bytes          int64
		expectedResult string
	}{
		{name: "Zero", bytes: 0, expectedResult: "0b"},
		{name: "Bytes", bytes: 512, expectedResult: "512b"},
		{name: "Kilobytes", bytes: 2048, expectedResult: "2kb"},
		{name: "KilobytesFraction", bytes: 1536, expectedResult: "1.5kb"},
		{name: "LargeKilobytes", bytes: 100 * 1024, expectedResult: "100kb"},
		{name: "Megabytes", bytes: 3 * 1024 * 1024, expectedResult: "3mb"},
		{name: "Negative", bytes: -1, expectedResult: "0b"},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expectedResult {
				testingHandle.Fatalf("expected %s for %d, got %s", testCase.expectedResult, testCase.bytes, result)
			}
		})
	}
}

// TestFormatSizeMB verifies the fixed two-decimal megabyte rendering.
func TestFormatSizeMB(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		bytes          int64
		expectedResult string
	}{
		{name: "Small", bytes: 20, expectedResult: "0.00 MB"},
		{name: "HalfMegabyte", bytes: 512 * 1024, expectedResult: "0.50 MB"},
		{name: "TwoMegabytes", bytes: 2 * 1024 * 1024, expectedResult: "2.00 MB"},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			result := utils.FormatSizeMB(testCase.bytes)
			if result != testCase.expectedResult {
				testingHandle.Fatalf("expected %s for %d, got %s", testCase.expectedResult, testCase.bytes, result)
			}
		})
	}
}
