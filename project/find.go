package project

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/tue-robotics/grammar-parser/common"
)

// FindProject searches dir and its parent directories for a project file and
// returns the directory that contains it
func FindProject(dir string) (string, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if checkPath(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}

// checkPath checks to see if a directory holds a project file -- accepts the
// path to the project root not the path to the project file
func checkPath(abspath string) bool {
	pfPath := filepath.Join(abspath, common.ProjectFileName)

	finfo, err := os.Stat(pfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	// only the name is checked here so we don't do the full unmarshal.  A file
	// that fails to load is not a project file the user asked for, so it is
	// skipped rather than reported.
	tree, err := toml.LoadFile(pfPath)
	if err != nil {
		return false
	}

	if nameField, ok := tree.Get("name").(string); ok {
		return nameField != ""
	}

	return false
}
