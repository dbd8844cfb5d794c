// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	rootUse              = "promptpack [path | repository-url]"
	rootShortDescription = "promptpack flattens a codebase into a single prompt-ready document"
	rootLongDescription  = `promptpack walks a local directory or a cloned Git repository, applies
layered include/exclude/gitignore filters, and produces one Markdown or XML
document containing the project tree and the content of every matched file.`
	rootUsageExample = `  # Flatten the current directory to Markdown on stdout
  promptpack

  # Flatten a repository clone, only TypeScript sources, to a file
  promptpack https://github.com/user/repo --extension .ts,.tsx -o repo.md

  # XML output, custom excludes, copied to the clipboard
  promptpack ./service --format xml -e "*.generated.go" --clipboard`

	includeFlagName       = "include"
	excludeFlagName       = "exclude"
	extensionFlagName     = "extension"
	findFlagName          = "find"
	requireFlagName       = "require"
	noGitignoreFlagName   = "no-gitignore"
	skipArtifactsFlagName = "skip-artifacts"
	includeSVGFlagName    = "include-svg"
	maxSizeFlagName       = "max-size"
	maxTokensFlagName     = "max-tokens"
	allowLargeFlagName    = "allow-large"
	formatFlagName        = "format"
	outputFlagName        = "output"
	clipboardFlagName     = "clipboard"
	branchFlagName        = "branch"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	debugFlagName         = "debug"
	configFlagName        = "config"
	versionFlagName       = "version"

	includeFlagDescription       = "glob pattern to include (repeatable)"
	excludeFlagDescription       = "glob pattern to exclude (repeatable)"
	extensionFlagDescription     = "extension allow-list, comma-separated (e.g. .go,.md)"
	findFlagDescription          = "keep files whose name or content matches any term (comma-separated)"
	requireFlagDescription       = "keep files whose content contains every term (comma-separated)"
	noGitignoreFlagDescription   = "do not respect .gitignore or the default artifact filters"
	skipArtifactsFlagDescription = "skip build artifacts, lockfiles, and binary media"
	includeSVGFlagDescription    = "include SVG file content instead of only listing them"
	maxSizeFlagDescription       = "maximum file size in bytes before content is replaced by a placeholder"
	maxTokensFlagDescription     = "estimated token budget for the whole document"
	allowLargeFlagDescription    = "ignore the token budget"
	formatFlagDescription        = "output format: md or xml"
	outputFlagDescription        = "write the document to a file instead of stdout"
	clipboardFlagDescription     = "copy the document to the clipboard instead of stdout"
	branchFlagDescription        = "branch to check out when cloning a repository"
	tokensFlagDescription        = "count the document's tokens for the summary"
	modelFlagDescription         = "tokenizer model used for token counting"
	debugFlagDescription         = "enable debug logging"
	configFlagDescription        = "path to a configuration file"
	versionFlagDescription       = "display application version"

	versionTemplate        = "promptpack version: %s\n"
	defaultTokenizerModel  = "gpt-4o"
	invalidFormatMessage   = "invalid format value '%s'"
	defaultScanPath        = "."
	tokenLimitHintTemplate = "estimated %d tokens exceeds the %d token limit; re-run with --%s to proceed anyway"
)

// rootFlags holds every flag value bound on the root command.
type rootFlags struct {
	includePatterns  []string
	excludePatterns  []string
	extensions       []string
	findTerms        []string
	requireTerms     []string
	disableGitignore bool
	skipArtifacts    bool
	includeSVG       bool
	maxFileSize      int64
	maxTokens        int
	allowLarge       bool
	outputFormat     string
	outputFile       string
	copyToClipboard  bool
	branchName       string
	tokensEnabled    bool
	tokenizerModel   string
	debugEnabled     bool
	configFilePath   string
	showVersion      bool
}

// Execute runs the promptpack application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if flags.showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			targetPath := defaultScanPath
			if len(arguments) == 1 {
				targetPath = arguments[0]
			}
			if mergeError := applyConfigurationDefaults(command, flags); mergeError != nil {
				return mergeError
			}
			normalizedFormat := strings.ToLower(flags.outputFormat)
			if normalizedFormat != types.FormatMarkdown && normalizedFormat != types.FormatXML {
				return fmt.Errorf(invalidFormatMessage, flags.outputFormat)
			}
			flags.outputFormat = normalizedFormat
			return runFlatten(command.Context(), targetPath, flags)
		},
	}

	commandFlags := rootCommand.Flags()
	commandFlags.StringArrayVarP(&flags.includePatterns, includeFlagName, "i", nil, includeFlagDescription)
	commandFlags.StringArrayVarP(&flags.excludePatterns, excludeFlagName, "e", nil, excludeFlagDescription)
	commandFlags.StringArrayVarP(&flags.extensions, extensionFlagName, "x", nil, extensionFlagDescription)
	commandFlags.StringArrayVar(&flags.findTerms, findFlagName, nil, findFlagDescription)
	commandFlags.StringArrayVar(&flags.requireTerms, requireFlagName, nil, requireFlagDescription)
	commandFlags.BoolVar(&flags.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	commandFlags.BoolVar(&flags.skipArtifacts, skipArtifactsFlagName, true, skipArtifactsFlagDescription)
	commandFlags.BoolVar(&flags.includeSVG, includeSVGFlagName, false, includeSVGFlagDescription)
	commandFlags.Int64Var(&flags.maxFileSize, maxSizeFlagName, types.DefaultMaxFileSize, maxSizeFlagDescription)
	commandFlags.IntVar(&flags.maxTokens, maxTokensFlagName, types.DefaultMaxTokens, maxTokensFlagDescription)
	commandFlags.BoolVar(&flags.allowLarge, allowLargeFlagName, false, allowLargeFlagDescription)
	commandFlags.StringVar(&flags.outputFormat, formatFlagName, types.FormatMarkdown, formatFlagDescription)
	commandFlags.StringVarP(&flags.outputFile, outputFlagName, "o", "", outputFlagDescription)
	commandFlags.BoolVarP(&flags.copyToClipboard, clipboardFlagName, "c", false, clipboardFlagDescription)
	commandFlags.StringVar(&flags.branchName, branchFlagName, "", branchFlagDescription)
	commandFlags.BoolVar(&flags.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	commandFlags.StringVar(&flags.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	commandFlags.BoolVar(&flags.debugEnabled, debugFlagName, false, debugFlagDescription)
	commandFlags.StringVar(&flags.configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&flags.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// applyConfigurationDefaults overlays configuration-file values onto flags
// the user did not set explicitly.
func applyConfigurationDefaults(command *cobra.Command, flags *rootFlags) error {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: flags.configFilePath,
	})
	if loadError != nil {
		return loadError
	}

	commandFlags := command.Flags()
	if !commandFlags.Changed(formatFlagName) && applicationConfiguration.Format != "" {
		flags.outputFormat = applicationConfiguration.Format
	}
	if !commandFlags.Changed(excludeFlagName) && len(applicationConfiguration.Exclude) > 0 {
		flags.excludePatterns = applicationConfiguration.Exclude
	}
	if !commandFlags.Changed(extensionFlagName) && len(applicationConfiguration.Extensions) > 0 {
		flags.extensions = applicationConfiguration.Extensions
	}
	if !commandFlags.Changed(skipArtifactsFlagName) && applicationConfiguration.SkipArtifacts != nil {
		flags.skipArtifacts = *applicationConfiguration.SkipArtifacts
	}
	if !commandFlags.Changed(noGitignoreFlagName) && applicationConfiguration.UseGitignore != nil {
		flags.disableGitignore = !*applicationConfiguration.UseGitignore
	}
	if !commandFlags.Changed(includeSVGFlagName) && applicationConfiguration.IncludeSVG != nil {
		flags.includeSVG = *applicationConfiguration.IncludeSVG
	}
	if !commandFlags.Changed(maxSizeFlagName) && applicationConfiguration.MaxFileSize != nil {
		flags.maxFileSize = *applicationConfiguration.MaxFileSize
	}
	if !commandFlags.Changed(maxTokensFlagName) && applicationConfiguration.MaxTokens != nil {
		flags.maxTokens = *applicationConfiguration.MaxTokens
	}
	if !commandFlags.Changed(allowLargeFlagName) && applicationConfiguration.AllowLarge != nil {
		flags.allowLarge = *applicationConfiguration.AllowLarge
	}
	if !commandFlags.Changed(clipboardFlagName) && applicationConfiguration.Clipboard != nil {
		flags.copyToClipboard = *applicationConfiguration.Clipboard
	}
	if !commandFlags.Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		flags.tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	if !commandFlags.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		flags.tokenizerModel = applicationConfiguration.Tokens.Model
	}
	if !commandFlags.Changed(outputFlagName) && applicationConfiguration.Output.File != "" {
		flags.outputFile = applicationConfiguration.Output.File
	}
	return nil
}
