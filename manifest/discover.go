package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/sectrean/autowire/config"
	"github.com/sectrean/autowire/internal/errors"
)

// ErrPathNotFound is returned when a search path does not exist.
var ErrPathNotFound = errors.New("path not found")

// Matcher matches file names against a filename pattern.
type Matcher func(name string) bool

// ParsePattern compiles a filename pattern. "/.../" is a regular expression,
// anything else a glob. An empty pattern matches everything.
func ParsePattern(pattern string) (Matcher, error) {
	if pattern == "" {
		return func(string) bool { return true }, nil
	}

	if len(pattern) > 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		re, err := regexp.Compile(pattern[1 : len(pattern)-1])
		if err != nil {
			return nil, errors.Wrapf(err, "filename pattern %q", pattern)
		}
		return re.MatchString, nil
	}

	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.Wrapf(err, "filename pattern %q", pattern)
	}
	return func(name string) bool {
		ok, _ := filepath.Match(pattern, name)
		return ok
	}, nil
}

// Discover returns the manifest files under the search paths.
//
// Files are taken as they are. Directories are searched for file names matching
// the filename pattern, recursively unless disabled. Files of one search path are
// sorted, search paths keep their order, and a file is only returned once.
func Discover(paths config.Paths) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]struct{})
	)

	for _, p := range paths {
		found, err := discoverPath(p)
		if err != nil {
			return nil, errors.Wrap(err, "manifest.Discover")
		}

		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}

	return files, nil
}

func discoverPath(p config.Path) ([]string, error) {
	info, err := os.Stat(p.Pathname)
	if err != nil {
		return nil, errors.Wrapf(ErrPathNotFound, "%q", p.Pathname)
	}
	if !info.IsDir() {
		return []string{filepath.Clean(p.Pathname)}, nil
	}

	match, err := ParsePattern(p.FilenamePattern)
	if err != nil {
		return nil, err
	}

	root := filepath.Clean(p.Pathname)
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !p.IsRecursive() {
				return filepath.SkipDir
			}
			return nil
		}
		if match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %q", root)
	}

	slices.Sort(files)
	return files, nil
}
