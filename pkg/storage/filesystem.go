// Package storage persists storycast artifacts on the local filesystem.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
	"github.com/felixgeelhaar/storycast/pkg/domain/schedule"
	"gopkg.in/yaml.v3"
)

const StorycastDir = ".storycast"
const BacklogFile = "backlog.json"
const SprintsFile = "sprints.json"
const ConfigFile = "forecast.yaml"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .storycast directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, StorycastDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Check for traversal and ensure it's a direct child
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, StorycastDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .storycast directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, StorycastDir))
	return err == nil
}

func (r *FilesystemRepository) SaveBacklog(stories []backlog.Story) error {
	path, err := r.ResolvePath(BacklogFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backlog: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

// LoadBacklog reads the stored stories. A missing file is an empty backlog,
// not an error.
func (r *FilesystemRepository) LoadBacklog() ([]backlog.Story, error) {
	retryer := retry.New[[]backlog.Story](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]backlog.Story, error) {
		path, err := r.ResolvePath(BacklogFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read backlog file: %w", err)
		}

		var stories []backlog.Story
		if err := json.Unmarshal(data, &stories); err != nil {
			return nil, fmt.Errorf("failed to unmarshal backlog: %w", err)
		}

		return stories, nil
	})
}

func (r *FilesystemRepository) SaveSprints(sprints []backlog.Sprint) error {
	path, err := r.ResolvePath(SprintsFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sprints, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sprints: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadSprints reads the stored sprints. A missing file means no sprints yet.
func (r *FilesystemRepository) LoadSprints() ([]backlog.Sprint, error) {
	retryer := retry.New[[]backlog.Sprint](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) ([]backlog.Sprint, error) {
		path, err := r.ResolvePath(SprintsFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sprints file: %w", err)
		}

		var sprints []backlog.Sprint
		if err := json.Unmarshal(data, &sprints); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sprints: %w", err)
		}

		return sprints, nil
	})
}

func (r *FilesystemRepository) SaveConfig(cfg schedule.Config) error {
	path, err := r.ResolvePath(ConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// LoadConfig reads the forecast configuration. A missing file yields the
// default configuration.
func (r *FilesystemRepository) LoadConfig() (schedule.Config, error) {
	retryer := retry.New[schedule.Config](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (schedule.Config, error) {
		path, err := r.ResolvePath(ConfigFile)
		if err != nil {
			return schedule.Config{}, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return schedule.DefaultConfig(), nil
		}
		if err != nil {
			return schedule.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}

		var cfg schedule.Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return schedule.Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}

		return cfg, nil
	})
}
