package ingest

import (
	"fmt"
	"os"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// ApproxCharsPerToken converts content length into the token estimate used
// for budget enforcement. Exact tokenization is a display concern handled
// outside the gathering path.
const ApproxCharsPerToken = 4

const (
	tooLargePlaceholderFormat = "%s - too large"
	warningReadFileFormat     = "skipping unreadable file %s: %v"
)

// TokenLimitExceededError reports that the estimated token total crossed
// the configured ceiling. It aborts the whole gather operation: no partial
// file list is returned alongside it.
type TokenLimitExceededError struct {
	Estimated int
	Limit     int
}

// Error describes the exceeded budget.
func (tokenLimitError *TokenLimitExceededError) Error() string {
	return fmt.Sprintf("estimated token count %d exceeds the configured limit of %d", tokenLimitError.Estimated, tokenLimitError.Limit)
}

// Gatherer reads the content of files in an assembled tree, classifies each
// node, and accumulates an estimated token count against a global ceiling.
type Gatherer struct {
	Options types.Options
	Root    string
	Warn    func(string)
}

// warn forwards a message to the configured warning sink, if any.
func (gatherer *Gatherer) warn(message string) {
	if gatherer.Warn != nil {
		gatherer.Warn(message)
	}
}

// Gather visits the sorted tree depth-first, producing the ordered file
// content list and mutating classification flags on visited nodes for the
// renderer to read. Exceeding the token ceiling without the allow-large
// escape hatch aborts the whole operation with *TokenLimitExceededError and
// no file list; every per-file failure is recovered locally by omitting the
// file.
func (gatherer *Gatherer) Gather(rootNode *types.TreeNode) ([]types.FileContent, error) {
	if rootNode == nil {
		return nil, nil
	}
	var gatheredFiles []types.FileContent
	tokenEstimate := 0
	if visitError := gatherer.visit(rootNode, &gatheredFiles, &tokenEstimate); visitError != nil {
		return nil, visitError
	}
	return gatheredFiles, nil
}

// visit processes one node and, for directories, its children in their
// already-sorted order.
func (gatherer *Gatherer) visit(node *types.TreeNode, gatheredFiles *[]types.FileContent, tokenEstimate *int) error {
	if node.Type == types.NodeTypeDirectory {
		for _, childNode := range node.Children {
			if visitError := gatherer.visit(childNode, gatheredFiles, tokenEstimate); visitError != nil {
				return visitError
			}
		}
		return nil
	}

	leadingBytes, sniffError := utils.ReadLeadingBytes(node.Path)
	if sniffError != nil {
		gatherer.warn(fmt.Sprintf(warningReadFileFormat, node.Path, sniffError))
		return nil
	}

	if utils.IsBinary(leadingBytes) {
		node.Binary = types.BinaryDetected
		// Binary-ness and size exclusion are reported independently; a
		// binary file within the size limit must not carry the oversize
		// annotation.
		node.TooLarge = node.Size > gatherer.Options.MaxFileSize
		return nil
	}
	node.Binary = types.BinaryText

	if node.Size > gatherer.Options.MaxFileSize {
		node.TooLarge = true
		*gatheredFiles = append(*gatheredFiles, types.FileContent{
			Path:    gatherer.relativePath(node),
			Content: fmt.Sprintf(tooLargePlaceholderFormat, utils.FormatSizeMB(node.Size)),
			Size:    node.Size,
		})
		return nil
	}

	if utils.IsSVGName(node.Name) {
		if !gatherer.Options.IncludeSVG {
			return nil
		}
		node.SVGIncluded = true
	}

	fileBytes, readError := os.ReadFile(node.Path)
	if readError != nil {
		gatherer.warn(fmt.Sprintf(warningReadFileFormat, node.Path, readError))
		return nil
	}

	fileTokens := (len(fileBytes) + ApproxCharsPerToken - 1) / ApproxCharsPerToken
	*tokenEstimate += fileTokens
	if *tokenEstimate > gatherer.Options.MaxTokens && !gatherer.Options.AllowLarge {
		return &TokenLimitExceededError{Estimated: *tokenEstimate, Limit: gatherer.Options.MaxTokens}
	}

	*gatheredFiles = append(*gatheredFiles, types.FileContent{
		Path:    gatherer.relativePath(node),
		Content: string(fileBytes),
		Size:    node.Size,
	})
	return nil
}

// relativePath renders a node path relative to the gather root for output.
func (gatherer *Gatherer) relativePath(node *types.TreeNode) string {
	if gatherer.Root == "" {
		return node.Path
	}
	return utils.RelativePathOrSelf(node.Path, gatherer.Root)
}
