package util

import (
	"os"
	"path/filepath"
	"strings"
)

// StringListContains returns true if the list of strings contains item.
func StringListContains(list []string, item string) bool {
	if list != nil {
		for i := range list {
			if list[i] == item {
				return true
			}
		}
	}
	return false
}

// FileExists returns true if the file at path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory returns true if path exists and is a directory.
func IsDirectory(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// ExpandTilde expands the tilde in a path to the current user's
// home directory.
func ExpandTilde(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	separatorIndex := strings.Index(filePath, string(os.PathSeparator))
	if separatorIndex < 0 {
		return homeDir, nil
	}
	return filepath.Join(homeDir, filePath[separatorIndex+1:]), nil
}
