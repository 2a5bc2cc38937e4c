package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/tunegridgo/internal/ctxlog"
	"github.com/vk/tunegridgo/internal/fsutil"
	"github.com/vk/tunegridgo/internal/model"
)

// manifestExtension is the file suffix manifests are discovered by when a
// directory path is given.
const manifestExtension = ".hcl"

// manifestFile mirrors the top-level structure of a single manifest file.
type manifestFile struct {
	Runs []*model.Run `hcl:"run,block"`
}

// Loader implements config.Loader for HCL manifests.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every manifest reachable from the given paths, merges their run
// blocks into a single Manifest, and normalizes and validates each record.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := resolveManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s manifests found under %v", manifestExtension, paths)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var runs []*model.Run
	for _, file := range files {
		parsed, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var mf manifestFile
		if diags := gohcl.DecodeBody(parsed.Body, nil, &mf); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}
		logger.Debug("Decoded manifest file.", "file", file, "runs", len(mf.Runs))
		runs = append(runs, mf.Runs...)
	}

	manifest, err := model.NewManifest(runs)
	if err != nil {
		return nil, err
	}

	for _, run := range manifest.Runs {
		run.Normalize()
		if err := run.Validate(); err != nil {
			return nil, err
		}
	}
	logger.Debug("Manifest loaded and validated.", "runs", len(manifest.Runs))

	return manifest, nil
}

// resolveManifestFiles expands each path into manifest files: a directory is
// searched recursively, a file is taken as-is. The result is sorted so the
// merge order is stable across platforms.
func resolveManifestFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read manifest path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, manifestExtension)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", path, err)
			}
			files = append(files, found...)
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
