package output_test

import (
	"strings"
	"testing"

	"github.com/promptpack/promptpack/internal/output"
	"github.com/promptpack/promptpack/internal/types"
)

const expectedMarkdownDocument = `# Project Structure

` + "```" + `
project/
└── main.go
` + "```" + `

# Files

## main.go
` + "```" + `
package main
` + "```" + `

## notes.txt
` + "```" + `
no trailing newline
` + "```" + `
`

// TestRenderMarkdown verifies the full Markdown document layout, including
// the newline normalization of the final fenced block.
func TestRenderMarkdown(testingHandle *testing.T) {
	renderedTree := "project/\n└── main.go\n"
	gatheredFiles := []types.FileContent{
		{Path: "main.go", Content: "package main\n"},
		{Path: "notes.txt", Content: "no trailing newline"},
	}

	document := output.RenderMarkdown(renderedTree, gatheredFiles)
	if document != expectedMarkdownDocument {
		testingHandle.Fatalf("expected:\n%s\ngot:\n%s", expectedMarkdownDocument, document)
	}
}

// TestBuildSummary verifies aggregate extraction from the tree root.
func TestBuildSummary(testingHandle *testing.T) {
	rootNode := &types.TreeNode{
		Name:      "project",
		Type:      types.NodeTypeDirectory,
		FileCount: 4,
		Size:      2048,
	}
	summary := output.BuildSummary("project", rootNode)
	if summary.TotalFiles != 4 || summary.TotalSize != 2048 {
		testingHandle.Fatalf("unexpected summary: %+v", summary)
	}

	emptySummary := output.BuildSummary("project", nil)
	if emptySummary.TotalFiles != 0 || emptySummary.TotalSize != 0 {
		testingHandle.Fatalf("unexpected empty summary: %+v", emptySummary)
	}
}

// TestFormatSummaryLine verifies the human-readable summary rendering with
// and without token information.
func TestFormatSummaryLine(testingHandle *testing.T) {
	summary := output.Summary{ProjectName: "project", TotalFiles: 4, TotalSize: 2048}
	line := output.FormatSummaryLine(summary)
	expectedLine := "project: 4 files, 2kb"
	if line != expectedLine {
		testingHandle.Fatalf("expected %q, got %q", expectedLine, line)
	}

	summary.Tokens = 1234
	summary.TokenModel = "gpt-4o"
	tokenLine := output.FormatSummaryLine(summary)
	if !strings.Contains(tokenLine, "1234 tokens (gpt-4o)") {
		testingHandle.Fatalf("expected token information in %q", tokenLine)
	}
}
