package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Tree computes the SHA256 hex digest of the file tree
// rooted at dir. Paths are hashed relative to dir in
// sorted order, each followed by the file contents. The
// .git directory is skipped.
func Tree(dir string) (string, error) {
	const errCtx = "digesting tree"

	var files []string

	err := filepath.WalkDir(
		dir,
		func(
			path string,
			de fs.DirEntry,
			walkErr error,
		) error {
			if walkErr != nil {
				return walkErr
			}

			if de.IsDir() {
				if de.Name() == ".git" {
					return filepath.SkipDir
				}

				return nil
			}

			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return relErr
			}

			files = append(files, rel)

			return nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	sort.Strings(files)

	ha := sha256.New()

	for _, rel := range files {
		// Path first, so renames change the digest
		// even when contents do not.
		ha.Write([]byte(rel))
		ha.Write([]byte{0})

		if err := hashFile(
			ha, filepath.Join(dir, rel),
		); err != nil {
			return "", fmt.Errorf(
				"%s: %s: %w", errCtx, rel, err,
			)
		}

		ha.Write([]byte{0})
	}

	return hex.EncodeToString(ha.Sum(nil)), nil
}

func hashFile(dst io.Writer, path string) (retErr error) {
	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = closeErr
		}
	}()

	_, err = io.Copy(dst, fi)

	return err
}
