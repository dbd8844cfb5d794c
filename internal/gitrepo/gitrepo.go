// Package gitrepo clones remote repositories into temporary directories so
// they can be scanned like local paths. Scanning itself never clones.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	giturls "github.com/whilp/git-urls"
)

const (
	temporaryDirectoryPattern = "promptpack-clone-"
	gitURLSuffix              = ".git"
	gitSSHPrefix              = "git@"
)

// knownGitHosts are HTTPS hosts accepted as repository URLs without a .git suffix.
var knownGitHosts = map[string]struct{}{
	"github.com":    {},
	"gitlab.com":    {},
	"bitbucket.org": {},
}

// IsGitURL reports whether input names a remote Git repository rather than
// a local path.
func IsGitURL(input string) bool {
	if strings.HasSuffix(input, gitURLSuffix) || strings.HasPrefix(input, gitSSHPrefix) {
		return true
	}
	parsedURL, parseError := giturls.Parse(input)
	if parseError != nil {
		return false
	}
	switch parsedURL.Scheme {
	case "git", "ssh":
		return true
	case "http", "https":
		_, known := knownGitHosts[parsedURL.Hostname()]
		return known
	default:
		return false
	}
}

// RepositoryName extracts the bare repository name from repositoryURL,
// falling back to the URL itself when it cannot be parsed.
func RepositoryName(repositoryURL string) string {
	parsedURL, parseError := giturls.Parse(repositoryURL)
	candidate := repositoryURL
	if parseError == nil && parsedURL.Path != "" {
		candidate = parsedURL.Path
	}
	candidate = strings.TrimSuffix(strings.TrimRight(candidate, "/"), gitURLSuffix)
	if slashIndex := strings.LastIndex(candidate, "/"); slashIndex >= 0 {
		candidate = candidate[slashIndex+1:]
	}
	if candidate == "" {
		return repositoryURL
	}
	return candidate
}

// CloneToTemporaryDirectory clones repositoryURL into a fresh temporary
// directory, optionally checking out branchName, and returns the directory
// path together with a cleanup function that removes it.
func CloneToTemporaryDirectory(executionContext context.Context, repositoryURL string, branchName string) (string, func(), error) {
	temporaryDirectory, temporaryDirectoryError := os.MkdirTemp("", temporaryDirectoryPattern)
	if temporaryDirectoryError != nil {
		return "", nil, fmt.Errorf("creating temporary clone directory: %w", temporaryDirectoryError)
	}
	cleanup := func() {
		_ = os.RemoveAll(temporaryDirectory)
	}

	cloneOptions := &git.CloneOptions{
		URL:          repositoryURL,
		Depth:        1,
		SingleBranch: true,
	}
	if branchName != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(branchName)
	}

	_, cloneError := git.PlainCloneContext(executionContext, temporaryDirectory, false, cloneOptions)
	if cloneError != nil {
		cleanup()
		return "", nil, fmt.Errorf("cloning %s: %w", repositoryURL, cloneError)
	}
	return temporaryDirectory, cleanup, nil
}
