// Package staging assembles the directory that is uploaded as the job's code snapshot.
package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/otiai10/copy"

	"amlsubmit/models"
)

type Opts struct {
	// Dir is the staging directory. Relative paths are resolved against the source root.
	Dir string
	// Globs select top-level regular files of the source root
	Globs []string
	// Subdirs are copied whole and must exist
	Subdirs []string
}

// Assemble wipes the staging directory and repopulates it from root
func Assemble(root string, opts *Opts) (*models.StagingResult, error) {
	dir := opts.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	err := checkDir(root, dir, opts.Subdirs)
	if err != nil {
		return nil, err
	}

	err = os.RemoveAll(dir)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}

	for _, pattern := range opts.Globs {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad staging glob %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.Mode().IsRegular() {
				continue
			}

			err = copy.Copy(match, filepath.Join(dir, filepath.Base(match)))
			if err != nil {
				return nil, err
			}
		}
	}

	for _, sub := range opts.Subdirs {
		src := filepath.Join(root, sub)
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("staging subdirectory %s: %w", sub, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("staging subdirectory %s is not a directory", sub)
		}

		err = copy.Copy(src, filepath.Join(dir, sub))
		if err != nil {
			return nil, err
		}
	}

	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	digest, err := Digest(dir, files)
	if err != nil {
		return nil, err
	}

	return &models.StagingResult{
		Dir:    dir,
		Files:  files,
		Digest: digest,
	}, nil
}

// checkDir rejects staging directories whose removal would delete sources:
// the root itself, any ancestor of it, and any copied subdirectory or path below one.
func checkDir(root, dir string, subdirs []string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if within(absRoot, absDir) {
		return fmt.Errorf("staging dir %s contains the source root %s", dir, root)
	}

	for _, sub := range subdirs {
		absSub, err := filepath.Abs(filepath.Join(root, sub))
		if err != nil {
			return err
		}
		if within(absDir, absSub) {
			return fmt.Errorf("staging dir %s is inside staged subdirectory %s", dir, sub)
		}
	}

	return nil
}

// within reports whether path equals base or lies below it
func within(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Digest hashes the relative paths and contents of files under dir
func Digest(dir string, files []string) (string, error) {
	h := sha256.New()

	for _, rel := range files {
		io.WriteString(h, rel)
		h.Write([]byte{0})

		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", err
		}
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
