// Package types defines every cross-package data structure used by the promptpack CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatMarkdown = "md"
	FormatXML      = "xml"
)

// BinaryState records the outcome of binary sniffing for a file node.
// Nodes that were never visited by the gatherer keep BinaryUnknown.
type BinaryState int

const (
	BinaryUnknown BinaryState = iota
	BinaryText
	BinaryDetected
)

// TreeNode represents one filesystem entry discovered during a walk.
// Children are owned by the node; Parent is a non-owning navigation link
// used only for upward aggregate propagation.
type TreeNode struct {
	Name        string
	Path        string
	Type        string
	Size        int64
	Children    []*TreeNode
	FileCount   int
	DirCount    int
	Binary      BinaryState
	TooLarge    bool
	SVGIncluded bool
	Parent      *TreeNode
}

// ScanStats holds process-wide counters for one walk. It is created fresh
// per top-level scan, threaded by reference, and monotonically incremented.
type ScanStats struct {
	TotalFiles int
	TotalSize  int64
}

// FileContent is one output record produced by content gathering. The
// Content field is the rendered string, possibly a placeholder. Immutable
// once produced.
type FileContent struct {
	Path    string
	Content string
	Size    int64
}

// Options carries the full set of recognized filter and limit parameters.
// It is assembled by the CLI layer and read-only to the scanning code.
type Options struct {
	Include          []string
	Exclude          []string
	Extensions       []string
	FindTerms        []string
	RequireTerms     []string
	RespectGitignore bool
	SkipArtifacts    bool
	IncludeSVG       bool
	MaxFileSize      int64
	MaxTokens        int
	AllowLarge       bool
	Debug            bool
}

// Default limits applied when the CLI or configuration leaves them unset.
const (
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
	DefaultMaxTokens         = 500000
)
