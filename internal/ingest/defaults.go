package ingest

// permanentIgnoreDirectories are directory names excluded from every scan
// regardless of other flags. Each is matched as **/<name>/**.
var permanentIgnoreDirectories = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"__pycache__",
	".cache",
	"coverage",
	".next",
	".nuxt",
	"bower_components",
}

// defaultIgnoreDirectories lists language caches, VCS metadata, and common
// build output directories skipped when artifact skipping is enabled.
var defaultIgnoreDirectories = []string{
	".svn",
	".hg",
	".idea",
	".vscode",
	".venv",
	"venv",
	".tox",
	".mypy_cache",
	".pytest_cache",
	".gradle",
	".terraform",
	"target",
	"out",
	"vendor",
	"tmp",
}

// artifactFilePatterns lists lockfiles, minified or bundled sources, and
// binary or media extensions skipped when artifact skipping is enabled.
var artifactFilePatterns = []string{
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/bun.lockb",
	"**/Cargo.lock",
	"**/poetry.lock",
	"**/Pipfile.lock",
	"**/composer.lock",
	"**/Gemfile.lock",
	"**/go.sum",
	"**/*.min.js",
	"**/*.bundle.js",
	"**/*.map",
	"**/*.jpg",
	"**/*.jpeg",
	"**/*.png",
	"**/*.gif",
	"**/*.bmp",
	"**/*.ico",
	"**/*.webp",
	svgArtifactPattern,
	"**/*.mp3",
	"**/*.wav",
	"**/*.mp4",
	"**/*.avi",
	"**/*.mov",
	"**/*.pdf",
	"**/*.zip",
	"**/*.tar",
	"**/*.gz",
	"**/*.7z",
	"**/*.rar",
	"**/*.exe",
	"**/*.dll",
	"**/*.so",
	"**/*.dylib",
	"**/*.bin",
	"**/*.dat",
	"**/*.db",
	"**/*.sqlite",
	"**/*.woff",
	"**/*.woff2",
	"**/*.ttf",
	"**/*.eot",
	"**/*.class",
	"**/*.jar",
	"**/*.pyc",
	"**/*.o",
	"**/*.a",
}

// svgArtifactPattern is the artifact entry removed when SVG inclusion is requested.
const svgArtifactPattern = "**/*.svg"

// PermanentIgnorePatterns returns the always-active exclusion patterns.
func PermanentIgnorePatterns() []string {
	patterns := make([]string, 0, len(permanentIgnoreDirectories))
	for _, directoryName := range permanentIgnoreDirectories {
		patterns = append(patterns, "**/"+directoryName+"/**")
	}
	return patterns
}

// DefaultIgnorePatterns returns the directory exclusions applied when
// artifact skipping is enabled.
func DefaultIgnorePatterns() []string {
	patterns := make([]string, 0, len(defaultIgnoreDirectories))
	for _, directoryName := range defaultIgnoreDirectories {
		patterns = append(patterns, "**/"+directoryName+"/**")
	}
	return patterns
}

// ArtifactFilePatterns returns the artifact file exclusions applied when
// artifact skipping is enabled. The SVG entry is dropped when the caller
// has requested SVG inclusion.
func ArtifactFilePatterns(includeSVG bool) []string {
	patterns := make([]string, 0, len(artifactFilePatterns))
	for _, pattern := range artifactFilePatterns {
		if includeSVG && pattern == svgArtifactPattern {
			continue
		}
		patterns = append(patterns, pattern)
	}
	return patterns
}
