package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// collectFiles expands the positional arguments into REST file paths,
// walking directories recursively.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isRestFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			if isRestFile(arg) {
				files = append(files, arg)
			}
		}
	}

	return files, nil
}

func isRestFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".http" || ext == ".rest"
}
