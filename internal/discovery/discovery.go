package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// MetadataSuffixes are the file name endings the siphon produces for each
// scraped post: the info sidecar plus the per-media metadata files.
var MetadataSuffixes = []string{".info.json", ".mp4.json", ".mp3.json"}

// IsMetadataFile reports whether a file name carries a recognized suffix.
func IsMetadataFile(name string) bool {
	for _, suffix := range MetadataSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Discover walks root and returns the absolute paths of every metadata file
// at any depth. Unreadable directories are logged and skipped without
// stopping the walk; a missing root yields an empty result, not an error.
func Discover(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("Content tree %s does not exist, skipping", root)
			return nil, nil
		}
		logrus.Warnf("Cannot stat content tree %s: %v", root, err)
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.Warnf("Skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsMetadataFile(d.Name()) {
			return nil
		}
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		files = append(files, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
