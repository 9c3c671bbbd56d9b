package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// recursiveSuffix marks a path argument that should be scanned recursively (./dir/...).
const recursiveSuffix = "/..."

// NormalizedInfix is inserted before the extension of files written by a normalize run.
const NormalizedInfix = ".normalized"

// DefaultIncludePatterns matches every doclet file format the store can read.
var DefaultIncludePatterns = []string{"**.json", "**.yaml", "**.yml", "**.msgpack", "**.mp"}

// SourceFSAdapter abstracts filesystem-specific operations the workflow relies on when
// discovering doclet files and writing normalized output. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Sources expands path arguments into doclet files. Directories ending in /... are scanned
	// recursively. Files must match one include glob and no exclude regex.
	Sources(ctx context.Context, paths []m.Path, include, exclude []string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	ReadFile(path m.Path) ([]byte, error)
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
	MkdirAll(path m.Path) error
	FileInfo(path m.Path) (os.FileInfo, error)
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk without leaking the
// standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter backs SourceFSAdapter with the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

type sourceFilter struct {
	include []glob.Glob
	exclude []*regexp.Regexp
}

func newSourceFilter(include, exclude []string) (*sourceFilter, error) {
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}

	f := &sourceFilter{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}

		f.include = append(f.include, g)
	}

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		f.exclude = append(f.exclude, re)
	}

	return f, nil
}

func (f *sourceFilter) matches(rel string) bool {
	rel = filepath.ToSlash(rel)

	for _, re := range f.exclude {
		if re.MatchString(rel) {
			return false
		}
	}

	for _, g := range f.include {
		if g.Match(rel) {
			return true
		}
	}

	return false
}

// Sources expands path arguments into the doclet files to normalize, in walk order.
func (a *LocalSourceFSAdapter) Sources(ctx context.Context, paths []m.Path, include, exclude []string) ([]m.Source, error) {
	filter, err := newSourceFilter(include, exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"." + recursiveSuffix}
	}

	var sources []m.Source

	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}

		format, err := FormatFromPath(m.Path(path))
		if err != nil {
			return
		}

		seen[path] = struct{}{}
		sources = append(sources, m.Source{Path: m.Path(path), Format: format})
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitRecursive(string(p))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if filter.matches(root) && !IsNormalizedOutput(root) {
				add(root)
			}

			continue
		}

		err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || IsNormalizedOutput(path) {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}

			if filter.matches(rel) {
				add(path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return sources, nil
}

func splitRecursive(path string) (string, bool) {
	if path == "..." {
		return ".", true
	}

	if strings.HasSuffix(path, recursiveSuffix) {
		root := strings.TrimSuffix(path, recursiveSuffix)
		if root == "" {
			root = "."
		}

		return root, true
	}

	return path, false
}

// IsNormalizedOutput reports whether path was written by a previous normalize run.
func IsNormalizedOutput(path string) bool {
	base := filepath.Base(path)
	return strings.Contains(strings.TrimSuffix(base, filepath.Ext(base)), NormalizedInfix)
}

// NormalizedPath returns where the normalized form of source is written: next to the source
// with the normalized infix, or under outputDir when it is set.
func NormalizedPath(source m.Path, outputDir m.Path, format m.Format) m.Path {
	base := filepath.Base(string(source))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + NormalizedInfix + Extension(format)

	if outputDir != "" {
		return m.Path(filepath.Join(string(outputDir), name))
	}

	return m.Path(filepath.Join(filepath.Dir(string(source)), name))
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || skippedDir(info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

func skippedDir(name string) bool {
	return name == ".git" || name == "node_modules" || name == "vendor"
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// MkdirAll creates path and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
