// Package config loads application configuration files that supply flag defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/promptpack/promptpack/internal/utils"
)

const (
	// ConfigFileName is the per-project configuration file name.
	ConfigFileName = ".promptpack.yaml"
	// GlobalConfigDirectoryName holds the user-wide configuration under the home directory.
	GlobalConfigDirectoryName = ".config/promptpack"
	// environmentPrefix namespaces environment variable overrides.
	environmentPrefix = "PROMPTPACK"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults that flags override.
type ApplicationConfiguration struct {
	Format        string              `mapstructure:"format"`
	Exclude       []string            `mapstructure:"exclude"`
	Extensions    []string            `mapstructure:"extensions"`
	SkipArtifacts *bool               `mapstructure:"skip_artifacts"`
	UseGitignore  *bool               `mapstructure:"use_gitignore"`
	IncludeSVG    *bool               `mapstructure:"include_svg"`
	MaxFileSize   *int64              `mapstructure:"max_size"`
	MaxTokens     *int                `mapstructure:"max_tokens"`
	AllowLarge    *bool               `mapstructure:"allow_large"`
	Clipboard     *bool               `mapstructure:"clipboard"`
	Tokens        TokenConfiguration  `mapstructure:"tokens"`
	Output        OutputConfiguration `mapstructure:"output"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// OutputConfiguration controls artifact destination defaults.
type OutputConfiguration struct {
	File string `mapstructure:"file"`
}

// LoadApplicationConfiguration loads and merges the user-wide and local
// configuration files, then environment overrides. Missing files are not
// errors.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, filepath.FromSlash(GlobalConfigDirectoryName), ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Exclude = utils.DeduplicatePatterns(merged.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetEnvPrefix(environmentPrefix)
	reader.AutomaticEnv()
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Format != "" {
		result.Format = override.Format
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, override.Extensions...)
	}
	if override.SkipArtifacts != nil {
		result.SkipArtifacts = cloneBool(override.SkipArtifacts)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.IncludeSVG != nil {
		result.IncludeSVG = cloneBool(override.IncludeSVG)
	}
	if override.MaxFileSize != nil {
		result.MaxFileSize = cloneInt64(override.MaxFileSize)
	}
	if override.MaxTokens != nil {
		result.MaxTokens = cloneInt(override.MaxTokens)
	}
	if override.AllowLarge != nil {
		result.AllowLarge = cloneBool(override.AllowLarge)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Output.File != "" {
		result.Output.File = override.Output.File
	}
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
