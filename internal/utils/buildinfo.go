package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "application execution failed"

// gitDescribeArgumentSets are tried in order; the first successful describe
// wins. The exact-match form yields a clean tag on tagged commits.
var gitDescribeArgumentSets = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion resolves the application version from Go build info,
// falling back to git describe when running from a source checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	if repositoryRoot := locateRepositoryRoot("."); repositoryRoot != "" {
		for _, describeArguments := range gitDescribeArgumentSets {
			if version := gitDescribe(repositoryRoot, describeArguments); version != "" {
				return version
			}
		}
	}
	return unknownVersion
}

// gitDescribe runs one git describe invocation in repositoryRoot and returns
// the trimmed output, or an empty string on any failure.
func gitDescribe(repositoryRoot string, describeArguments []string) string {
	// #nosec G204
	describeCommand := exec.Command("git", describeArguments...)
	describeCommand.Dir = repositoryRoot
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil {
		return ""
	}
	return strings.TrimSpace(string(describeOutput))
}

// locateRepositoryRoot walks upward from startDirectory to the first
// directory containing a .git folder, returning an empty string when the
// search exhausts the filesystem root.
func locateRepositoryRoot(startDirectory string) string {
	currentDirectory, absolutePathError := filepath.Abs(startDirectory)
	if absolutePathError != nil {
		return ""
	}
	for {
		gitInfo, gitStatError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if gitStatError == nil && gitInfo.IsDir() {
			return currentDirectory
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return ""
		}
		currentDirectory = parentDirectory
	}
}
