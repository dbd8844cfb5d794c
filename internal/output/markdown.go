package output

import (
	"fmt"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	markdownStructureHeader = "# Project Structure"
	markdownFilesHeader     = "# Files"
	markdownFileHeaderFmt   = "## %s\n"
	codeFence               = "```"
)

// Summary captures aggregate information about the rendered artifact.
type Summary struct {
	ProjectName string
	TotalFiles  int
	TotalSize   int64
	Tokens      int
	TokenModel  string
}

// BuildSummary derives a summary from the tree root's aggregates.
func BuildSummary(projectName string, rootNode *types.TreeNode) Summary {
	summary := Summary{ProjectName: projectName}
	if rootNode != nil {
		summary.TotalFiles = rootNode.FileCount
		summary.TotalSize = rootNode.Size
	}
	return summary
}

// FormatSummaryLine renders the summary as a single human-readable line.
func FormatSummaryLine(summary Summary) string {
	line := fmt.Sprintf("%s: %d files, %s", summary.ProjectName, summary.TotalFiles, utils.FormatFileSize(summary.TotalSize))
	if summary.Tokens > 0 {
		line += fmt.Sprintf(", %d tokens (%s)", summary.Tokens, summary.TokenModel)
	}
	return line
}

// RenderMarkdown assembles the final Markdown artifact: the project tree in
// a fenced block followed by each gathered file in its own fenced block.
func RenderMarkdown(renderedTree string, gatheredFiles []types.FileContent) string {
	var builder strings.Builder

	builder.WriteString(markdownStructureHeader + "\n\n")
	builder.WriteString(codeFence + "\n")
	builder.WriteString(renderedTree)
	builder.WriteString(codeFence + "\n\n")

	builder.WriteString(markdownFilesHeader + "\n\n")
	for _, gatheredFile := range gatheredFiles {
		builder.WriteString(fmt.Sprintf(markdownFileHeaderFmt, gatheredFile.Path))
		builder.WriteString(codeFence + "\n")
		builder.WriteString(gatheredFile.Content)
		if !strings.HasSuffix(gatheredFile.Content, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString(codeFence + "\n\n")
	}

	return strings.TrimRight(builder.String(), "\n") + "\n"
}
