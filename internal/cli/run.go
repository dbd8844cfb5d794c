package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/promptpack/promptpack/internal/gitrepo"
	"github.com/promptpack/promptpack/internal/ingest"
	"github.com/promptpack/promptpack/internal/output"
	"github.com/promptpack/promptpack/internal/services/clipboard"
	"github.com/promptpack/promptpack/internal/tokenizer"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	cloningRepositoryMessage    = "cloning repository"
	noMatchingFilesMessage      = "no files matched the configured filters"
	clipboardUnavailableMessage = "clipboard is not available on this system"
	tokenCountFailedFormat      = "token counting failed: %v"
	writeOutputFileFormat       = "writing output file %s: %w"
	copiedToClipboardMessage    = "document copied to clipboard"
	wroteOutputFileFormat       = "document written to %s"
	outputFilePermissions       = 0o644
)

// runFlatten executes the whole pipeline for a single invocation: resolve
// the target, scan, gather, render, and deliver the document.
func runFlatten(executionContext context.Context, target string, flags *rootFlags) error {
	if executionContext == nil {
		executionContext = context.Background()
	}

	logger, loggerError := utils.NewApplicationLogger(flags.debugEnabled)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() {
		_ = logger.Sync()
	}()

	scanRoot, projectName, cleanup, resolveError := resolveTarget(executionContext, target, flags, logger)
	if resolveError != nil {
		return resolveError
	}
	if cleanup != nil {
		defer cleanup()
	}

	coreOptions := buildCoreOptions(flags)
	warnSink := func(message string) { logger.Warn(message) }

	walker := &ingest.Walker{Options: coreOptions, Warn: warnSink}
	rootNode, _, scanError := walker.Scan(scanRoot)
	if scanError != nil {
		return scanError
	}
	if rootNode == nil {
		logger.Warn(noMatchingFilesMessage)
		return nil
	}

	absoluteScanRoot, absolutePathError := filepath.Abs(scanRoot)
	if absolutePathError != nil {
		absoluteScanRoot = scanRoot
	}
	gatherer := &ingest.Gatherer{Options: coreOptions, Root: absoluteScanRoot, Warn: warnSink}
	gatheredFiles, gatherError := gatherer.Gather(rootNode)
	if gatherError != nil {
		var tokenLimitError *ingest.TokenLimitExceededError
		if errors.As(gatherError, &tokenLimitError) {
			return fmt.Errorf(tokenLimitHintTemplate, tokenLimitError.Estimated, tokenLimitError.Limit, allowLargeFlagName)
		}
		return gatherError
	}

	renderedTree := output.RenderTree(rootNode)
	summary := output.BuildSummary(projectName, rootNode)
	if flags.tokensEnabled {
		countTokens(renderedTree, gatheredFiles, flags.tokenizerModel, &summary, logger)
	}

	document, renderError := renderDocument(flags.outputFormat, summary, renderedTree, gatheredFiles)
	if renderError != nil {
		return renderError
	}

	if deliverError := deliverDocument(document, flags, logger); deliverError != nil {
		return deliverError
	}

	fmt.Fprintln(os.Stderr, output.FormatSummaryLine(summary))
	return nil
}

// resolveTarget turns the positional argument into a scannable directory,
// cloning remote repositories into a temporary directory first. The returned
// cleanup function is nil for local paths.
func resolveTarget(executionContext context.Context, target string, flags *rootFlags, logger *zap.Logger) (string, string, func(), error) {
	if gitrepo.IsGitURL(target) {
		logger.Info(cloningRepositoryMessage, zap.String("url", target))
		cloneDirectory, cleanup, cloneError := gitrepo.CloneToTemporaryDirectory(executionContext, target, flags.branchName)
		if cloneError != nil {
			return "", "", nil, cloneError
		}
		return cloneDirectory, gitrepo.RepositoryName(target), cleanup, nil
	}

	absoluteTarget, absolutePathError := filepath.Abs(target)
	if absolutePathError != nil {
		return "", "", nil, fmt.Errorf("resolving path %s: %w", target, absolutePathError)
	}
	return target, filepath.Base(absoluteTarget), nil, nil
}

// buildCoreOptions maps the flag values onto the scanning options.
func buildCoreOptions(flags *rootFlags) types.Options {
	return types.Options{
		Include:          flags.includePatterns,
		Exclude:          flags.excludePatterns,
		Extensions:       utils.SplitTerms(flags.extensions),
		FindTerms:        utils.SplitTerms(flags.findTerms),
		RequireTerms:     utils.SplitTerms(flags.requireTerms),
		RespectGitignore: !flags.disableGitignore,
		SkipArtifacts:    flags.skipArtifacts,
		IncludeSVG:       flags.includeSVG,
		MaxFileSize:      flags.maxFileSize,
		MaxTokens:        flags.maxTokens,
		AllowLarge:       flags.allowLarge,
		Debug:            flags.debugEnabled,
	}
}

// countTokens runs the exact tokenizer over the document body and records
// the result on the summary. Counting failures only cost the summary figure.
func countTokens(renderedTree string, gatheredFiles []types.FileContent, model string, summary *output.Summary, logger *zap.Logger) {
	counter, effectiveModel, counterError := tokenizer.NewCounter(model)
	if counterError != nil {
		logger.Warn(fmt.Sprintf(tokenCountFailedFormat, counterError))
		return
	}

	var bodyBuilder strings.Builder
	bodyBuilder.WriteString(renderedTree)
	for _, gatheredFile := range gatheredFiles {
		bodyBuilder.WriteString(gatheredFile.Path)
		bodyBuilder.WriteString("\n")
		bodyBuilder.WriteString(gatheredFile.Content)
	}

	tokenCount, countError := counter.CountString(bodyBuilder.String())
	if countError != nil {
		logger.Warn(fmt.Sprintf(tokenCountFailedFormat, countError))
		return
	}
	summary.Tokens = tokenCount
	summary.TokenModel = effectiveModel
}

// renderDocument produces the artifact in the requested format.
func renderDocument(format string, summary output.Summary, renderedTree string, gatheredFiles []types.FileContent) (string, error) {
	if format == types.FormatXML {
		return output.RenderXML(summary, renderedTree, gatheredFiles)
	}
	return output.RenderMarkdown(renderedTree, gatheredFiles), nil
}

// deliverDocument sends the artifact to its destination: an output file, the
// clipboard, or stdout.
func deliverDocument(document string, flags *rootFlags, logger *zap.Logger) error {
	if flags.outputFile != "" {
		if writeError := os.WriteFile(flags.outputFile, []byte(document), outputFilePermissions); writeError != nil {
			return fmt.Errorf(writeOutputFileFormat, flags.outputFile, writeError)
		}
		logger.Info(fmt.Sprintf(wroteOutputFileFormat, flags.outputFile))
		return nil
	}
	if flags.copyToClipboard {
		clipboardService := clipboard.NewService()
		if !clipboardService.Available() {
			return errors.New(clipboardUnavailableMessage)
		}
		if copyError := clipboardService.Copy(document); copyError != nil {
			return copyError
		}
		logger.Info(copiedToClipboardMessage)
		return nil
	}
	fmt.Print(document)
	return nil
}
