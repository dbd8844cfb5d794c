package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/types"
)

// TestRootCommandRegistersFlags verifies that every documented flag is bound.
func TestRootCommandRegistersFlags(testingHandle *testing.T) {
	rootCommand := createRootCommand()
	expectedFlagNames := []string{
		includeFlagName, excludeFlagName, extensionFlagName, findFlagName,
		requireFlagName, noGitignoreFlagName, skipArtifactsFlagName,
		includeSVGFlagName, maxSizeFlagName, maxTokensFlagName,
		allowLargeFlagName, formatFlagName, outputFlagName,
		clipboardFlagName, branchFlagName, tokensFlagName, modelFlagName,
		debugFlagName, configFlagName,
	}
	for _, flagName := range expectedFlagNames {
		if rootCommand.Flags().Lookup(flagName) == nil {
			testingHandle.Fatalf("expected flag --%s to be registered", flagName)
		}
	}
	if rootCommand.PersistentFlags().Lookup(versionFlagName) == nil {
		testingHandle.Fatalf("expected persistent flag --%s to be registered", versionFlagName)
	}
}

// TestRootCommandRejectsInvalidFormat verifies format validation before any scanning.
func TestRootCommandRejectsInvalidFormat(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	rootCommand := createRootCommand()
	rootCommand.SetArgs([]string{"--format", "txt", testingHandle.TempDir()})
	rootCommand.SilenceErrors = true

	executionError := rootCommand.Execute()
	if executionError == nil {
		testingHandle.Fatal("expected an error for an invalid format")
	}
	if !strings.Contains(executionError.Error(), "invalid format") {
		testingHandle.Fatalf("unexpected error: %v", executionError)
	}
}

// TestBuildCoreOptions verifies the flag-to-option mapping, including the
// comma splitting of term lists and the gitignore polarity inversion.
func TestBuildCoreOptions(testingHandle *testing.T) {
	flags := &rootFlags{
		includePatterns:  []string{"src/**"},
		excludePatterns:  []string{"*.gen.go"},
		extensions:       []string{".go,.md"},
		findTerms:        []string{"alpha, beta"},
		disableGitignore: true,
		skipArtifacts:    true,
		maxFileSize:      types.DefaultMaxFileSize,
		maxTokens:        types.DefaultMaxTokens,
	}

	options := buildCoreOptions(flags)
	if options.RespectGitignore {
		testingHandle.Fatal("expected gitignore respect to be disabled")
	}
	if !reflect.DeepEqual(options.Extensions, []string{".go", ".md"}) {
		testingHandle.Fatalf("unexpected extensions: %v", options.Extensions)
	}
	if !reflect.DeepEqual(options.FindTerms, []string{"alpha", "beta"}) {
		testingHandle.Fatalf("unexpected find terms: %v", options.FindTerms)
	}
	if !reflect.DeepEqual(options.Include, []string{"src/**"}) || !reflect.DeepEqual(options.Exclude, []string{"*.gen.go"}) {
		testingHandle.Fatalf("unexpected patterns: include=%v exclude=%v", options.Include, options.Exclude)
	}
}
