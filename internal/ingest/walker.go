package ingest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

// Hard ceilings applied during every walk. Reaching one silently truncates
// the walk; it is never reported as an error.
const (
	MaxDepth           = 20
	MaxFiles           = 10000
	MaxTotalSize int64 = 500 * 1024 * 1024
)

const (
	errorRootPathFormat     = "root path %s is not an accessible directory: %w"
	errorRootNotDirectory   = "root path %s is not a directory"
	errorReadGitignoreWarn  = "could not read %s: %v"
	warningStatFileFormat   = "unable to stat %s: %v"
	readmeFileNameLowercase = "readme.md"
)

// Walker scans a directory subtree, applies the layered filter set, and
// assembles an ordered tree of surviving entries.
type Walker struct {
	Options types.Options
	Warn    func(string)

	// Zero values fall back to the package ceilings.
	fileLimit      int
	totalSizeLimit int64
}

// maxFiles returns the active file-count ceiling.
func (walker *Walker) maxFiles() int {
	if walker.fileLimit > 0 {
		return walker.fileLimit
	}
	return MaxFiles
}

// maxTotalSize returns the active total-size ceiling.
func (walker *Walker) maxTotalSize() int64 {
	if walker.totalSizeLimit > 0 {
		return walker.totalSizeLimit
	}
	return MaxTotalSize
}

// warn forwards a message to the configured warning sink, if any.
func (walker *Walker) warn(message string) {
	if walker.Warn != nil {
		walker.Warn(message)
	}
}

// Scan walks rootPath and returns the assembled tree together with the
// walk's discovery counters. A nil tree with a nil error means every entry
// was filtered away. An invalid root is the only condition reported as an
// error from this method.
func (walker *Walker) Scan(rootPath string) (*types.TreeNode, *types.ScanStats, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, nil, fmt.Errorf(errorRootPathFormat, rootPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return nil, nil, fmt.Errorf(errorRootPathFormat, rootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, nil, fmt.Errorf(errorRootNotDirectory, rootPath)
	}

	stats := &types.ScanStats{}
	excludeSet, svgRescueSet := walker.buildExclusionSets(absoluteRootPath)
	includePatterns := ResolveIncludePatterns(absoluteRootPath, walker.Options.Include)

	var candidatePaths []string
	walker.collectCandidates(absoluteRootPath, "", 0, excludeSet, svgRescueSet, includePatterns, &candidatePaths)

	candidatePaths = walker.applyExtensionFilter(candidatePaths)
	candidatePaths = walker.applyContentFilter(absoluteRootPath, candidatePaths)

	rootNode := walker.assembleTree(absoluteRootPath, rootInfo.Name(), candidatePaths, stats)
	if rootNode != nil {
		sortChildrenRecursively(rootNode)
	}
	return rootNode, stats, nil
}

// buildExclusionSets layers the active exclusion patterns. The first set is
// the full union; the second omits the SVG artifact entry so SVG files
// excluded solely by it can still be listed in the tree. Disabling
// gitignore respect bypasses everything except the permanent directories
// and user-supplied excludes.
func (walker *Walker) buildExclusionSets(absoluteRootPath string) (*PatternSet, *PatternSet) {
	layeredPatterns := PermanentIgnorePatterns()
	svgRescuePatterns := PermanentIgnorePatterns()

	if walker.Options.RespectGitignore {
		if walker.Options.SkipArtifacts {
			layeredPatterns = append(layeredPatterns, DefaultIgnorePatterns()...)
			layeredPatterns = append(layeredPatterns, ArtifactFilePatterns(walker.Options.IncludeSVG)...)
			svgRescuePatterns = append(svgRescuePatterns, DefaultIgnorePatterns()...)
			svgRescuePatterns = append(svgRescuePatterns, ArtifactFilePatterns(true)...)
		}
		gitignorePatterns := walker.loadGitignorePatterns(absoluteRootPath)
		layeredPatterns = append(layeredPatterns, gitignorePatterns...)
		svgRescuePatterns = append(svgRescuePatterns, gitignorePatterns...)
	}

	layeredPatterns = append(layeredPatterns, walker.Options.Exclude...)
	svgRescuePatterns = append(svgRescuePatterns, walker.Options.Exclude...)

	return NewPatternSet(utils.DeduplicatePatterns(layeredPatterns)),
		NewPatternSet(utils.DeduplicatePatterns(svgRescuePatterns))
}

// loadGitignorePatterns reads and normalizes the .gitignore at the scanned
// directory. A missing or unreadable file yields no patterns.
func (walker *Walker) loadGitignorePatterns(absoluteRootPath string) []string {
	gitignorePath := filepath.Join(absoluteRootPath, utils.GitIgnoreFileName)
	gitignoreContent, readError := os.ReadFile(gitignorePath)
	if readError != nil {
		if !os.IsNotExist(readError) {
			walker.warn(fmt.Sprintf(errorReadGitignoreWarn, gitignorePath, readError))
		}
		return nil
	}
	return NormalizeGitignore(strings.Split(string(gitignoreContent), "\n"))
}

// collectCandidates recursively enumerates the subtree, applying the depth
// ceiling, the exclusion layers, and the include restriction. Surviving
// file paths, relative to the scan root, are appended to candidatePaths in
// enumeration order; presentation order is settled later.
func (walker *Walker) collectCandidates(directoryPath string, relativePrefix string, depth int, excludeSet *PatternSet, svgRescueSet *PatternSet, includePatterns []string, candidatePaths *[]string) {
	if depth > MaxDepth {
		return
	}
	if len(*candidatePaths) >= walker.maxFiles() {
		return
	}
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		walker.warn(fmt.Sprintf("unable to read directory %s: %v", directoryPath, readDirectoryError))
		return
	}

	for _, directoryEntry := range directoryEntries {
		if len(*candidatePaths) >= walker.maxFiles() {
			return
		}
		entryRelativePath := path.Join(relativePrefix, directoryEntry.Name())

		if directoryEntry.IsDir() {
			if excludeSet.MatchesDirectory(entryRelativePath) {
				continue
			}
			walker.collectCandidates(filepath.Join(directoryPath, directoryEntry.Name()), entryRelativePath, depth+1, excludeSet, svgRescueSet, includePatterns, candidatePaths)
			continue
		}

		if utils.IsSVGName(directoryEntry.Name()) {
			// SVG files excluded solely by the artifact list are still
			// listed in the tree, so they pass the relaxed set instead.
			if svgRescueSet.Matches(entryRelativePath) {
				continue
			}
		} else if excludeSet.Matches(entryRelativePath) {
			continue
		}

		if len(includePatterns) > 0 && !MatchesAnyAnchoredGlob(includePatterns, entryRelativePath) {
			continue
		}

		*candidatePaths = append(*candidatePaths, entryRelativePath)
	}
}

// applyExtensionFilter keeps only files whose extension is in the
// allow-list, when one was supplied. Extensions are compared
// case-sensitively with a normalized leading dot.
func (walker *Walker) applyExtensionFilter(candidatePaths []string) []string {
	extensionTerms := utils.SplitTerms(walker.Options.Extensions)
	if len(extensionTerms) == 0 {
		return candidatePaths
	}
	allowedExtensions := make(map[string]struct{}, len(extensionTerms))
	for _, extensionTerm := range extensionTerms {
		if !strings.HasPrefix(extensionTerm, ".") {
			extensionTerm = "." + extensionTerm
		}
		allowedExtensions[extensionTerm] = struct{}{}
	}
	filteredPaths := candidatePaths[:0]
	for _, candidatePath := range candidatePaths {
		if _, allowed := allowedExtensions[path.Ext(candidatePath)]; allowed {
			filteredPaths = append(filteredPaths, candidatePath)
		}
	}
	return filteredPaths
}

// applyContentFilter narrows the candidate list by name and content search
// terms, when any were supplied.
func (walker *Walker) applyContentFilter(absoluteRootPath string, candidatePaths []string) []string {
	orTerms := utils.SplitTerms(walker.Options.FindTerms)
	andTerms := utils.SplitTerms(walker.Options.RequireTerms)
	if len(orTerms) == 0 && len(andTerms) == 0 {
		return candidatePaths
	}
	absolutePaths := make([]string, len(candidatePaths))
	for index, candidatePath := range candidatePaths {
		absolutePaths[index] = filepath.Join(absoluteRootPath, filepath.FromSlash(candidatePath))
	}
	matchedAbsolute := FilterByContent(absolutePaths, orTerms, andTerms)
	matchedSet := make(map[string]struct{}, len(matchedAbsolute))
	for _, matchedPath := range matchedAbsolute {
		matchedSet[matchedPath] = struct{}{}
	}
	filteredPaths := candidatePaths[:0]
	for index, candidatePath := range candidatePaths {
		if _, matched := matchedSet[absolutePaths[index]]; matched {
			filteredPaths = append(filteredPaths, candidatePath)
		}
	}
	return filteredPaths
}

// assembleTree builds the node tree from surviving relative file paths,
// creating intermediate directory nodes on demand and propagating size and
// count aggregates to every ancestor through the parent chain. The global
// file-count and total-size ceilings stop assembly once reached. A root
// that ends up with no children is pruned to nil; intermediate directories
// only exist when a surviving file sits beneath them, so empty directories
// never appear.
func (walker *Walker) assembleTree(absoluteRootPath string, rootName string, candidatePaths []string, stats *types.ScanStats) *types.TreeNode {
	rootNode := &types.TreeNode{
		Name: rootName,
		Path: absoluteRootPath,
		Type: types.NodeTypeDirectory,
	}
	directoryIndex := map[string]*types.TreeNode{"": rootNode}

	for _, candidatePath := range candidatePaths {
		if stats.TotalFiles >= walker.maxFiles() || stats.TotalSize >= walker.maxTotalSize() {
			break
		}
		absoluteFilePath := filepath.Join(absoluteRootPath, filepath.FromSlash(candidatePath))
		fileInfo, statError := os.Stat(absoluteFilePath)
		if statError != nil {
			walker.warn(fmt.Sprintf(warningStatFileFormat, absoluteFilePath, statError))
			continue
		}

		segments := strings.Split(candidatePath, pathSeparator)
		parentNode := rootNode
		directoryKey := ""
		for _, segment := range segments[:len(segments)-1] {
			directoryKey = path.Join(directoryKey, segment)
			directoryNode, exists := directoryIndex[directoryKey]
			if !exists {
				directoryNode = &types.TreeNode{
					Name:   segment,
					Path:   filepath.Join(absoluteRootPath, filepath.FromSlash(directoryKey)),
					Type:   types.NodeTypeDirectory,
					Parent: parentNode,
				}
				parentNode.Children = append(parentNode.Children, directoryNode)
				directoryIndex[directoryKey] = directoryNode
				for ancestorNode := parentNode; ancestorNode != nil; ancestorNode = ancestorNode.Parent {
					ancestorNode.DirCount++
				}
			}
			parentNode = directoryNode
		}

		fileNode := &types.TreeNode{
			Name:   segments[len(segments)-1],
			Path:   absoluteFilePath,
			Type:   types.NodeTypeFile,
			Size:   fileInfo.Size(),
			Parent: parentNode,
		}
		parentNode.Children = append(parentNode.Children, fileNode)
		for ancestorNode := parentNode; ancestorNode != nil; ancestorNode = ancestorNode.Parent {
			ancestorNode.FileCount++
			ancestorNode.Size += fileInfo.Size()
		}
		stats.TotalFiles++
		stats.TotalSize += fileInfo.Size()
	}

	if len(rootNode.Children) == 0 {
		return nil
	}
	return rootNode
}

// sortChildrenRecursively applies the presentation order to every directory:
// README.md first, then regular files, dotfiles, regular directories, and
// dot-directories, each group in case-insensitive lexicographic order.
func sortChildrenRecursively(node *types.TreeNode) {
	if node.Type != types.NodeTypeDirectory {
		return
	}
	sort.SliceStable(node.Children, func(firstIndex, secondIndex int) bool {
		firstChild, secondChild := node.Children[firstIndex], node.Children[secondIndex]
		firstGroup, secondGroup := sortGroup(firstChild), sortGroup(secondChild)
		if firstGroup != secondGroup {
			return firstGroup < secondGroup
		}
		firstName, secondName := strings.ToLower(firstChild.Name), strings.ToLower(secondChild.Name)
		if firstName != secondName {
			return firstName < secondName
		}
		return firstChild.Name < secondChild.Name
	})
	for _, childNode := range node.Children {
		sortChildrenRecursively(childNode)
	}
}

// sortGroup assigns a node to one of the five presentation groups.
func sortGroup(node *types.TreeNode) int {
	isDotName := strings.HasPrefix(node.Name, ".")
	switch {
	case node.Type == types.NodeTypeFile && strings.ToLower(node.Name) == readmeFileNameLowercase:
		return 0
	case node.Type == types.NodeTypeFile && !isDotName:
		return 1
	case node.Type == types.NodeTypeFile:
		return 2
	case !isDotName:
		return 3
	default:
		return 4
	}
}
