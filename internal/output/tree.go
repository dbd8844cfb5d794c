// Package output renders assembled trees and gathered file content into the
// final textual artifact.
package output

import (
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix       = "/"
	binaryExcludedSuffix  = " (excluded - binary)"
	svgExcludedSuffix     = " (excluded - svg)"
	tooLargeSuffixPrefix  = " ("
	tooLargeSuffixClosing = " - too large)"
)

// RenderTree pretty-prints the node tree as an ASCII-art listing. The root
// appears on the first line; every descendant is prefixed with branch glyphs.
func RenderTree(rootNode *types.TreeNode) string {
	if rootNode == nil {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(rootNode.Name + directorySuffix + "\n")
	renderChildren(&builder, rootNode, "")
	return builder.String()
}

// renderChildren emits one line per child, extending the prefix for nested levels.
func renderChildren(builder *strings.Builder, node *types.TreeNode, prefix string) {
	for childIndex, childNode := range node.Children {
		isLastChild := childIndex == len(node.Children)-1
		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if isLastChild {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		builder.WriteString(prefix + connector + childNode.Name + nodeSuffix(childNode) + "\n")
		if childNode.Type == types.NodeTypeDirectory {
			renderChildren(builder, childNode, prefix+childPadding)
		}
	}
}

// nodeSuffix builds the trailing annotation for one node. Directories get a
// slash; files concatenate the oversize, binary, and SVG annotations in that
// order, without deduplication between them.
func nodeSuffix(node *types.TreeNode) string {
	if node.Type == types.NodeTypeDirectory {
		return directorySuffix
	}
	var annotation strings.Builder
	if node.TooLarge {
		annotation.WriteString(tooLargeSuffixPrefix + utils.FormatSizeMB(node.Size) + tooLargeSuffixClosing)
	}
	if node.Binary == types.BinaryDetected {
		annotation.WriteString(binaryExcludedSuffix)
	}
	if utils.IsSVGName(node.Name) && !node.SVGIncluded {
		annotation.WriteString(svgExcludedSuffix)
	}
	return annotation.String()
}
