package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/tue-robotics/grammar-parser/common"
	"github.com/tue-robotics/grammar-parser/logging"
)

// tomlProject represents the project file as it is encoded in TOML
type tomlProject struct {
	Name            string         `toml:"name"`
	GrammarFiles    []string       `toml:"grammar-files"`
	Target          string         `toml:"target"`
	LogLevel        string         `toml:"log-level,omitempty"`
	MaxDepth        int            `toml:"max-depth,omitempty"`
	StrictSemantics bool           `toml:"strict-semantics"`
	Seed            int64          `toml:"seed,omitempty"`
	WordLists       []tomlWordList `toml:"word-lists"`
}

// tomlWordList represents a word list function as it is encoded in TOML
type tomlWordList struct {
	Name            string         `toml:"name"`
	Words []string `toml:"words"`
}

// validLogLevels are the log level names accepted in a project file
var validLogLevels = map[string]struct{}{
	"silent":  {},
	"error":   {},
	"warning": {},
	"warn":    {},
	"verbose": {},
}

// LoadProject loads and validates the project in the directory at path
func LoadProject(path string) (*GrammarProject, error) {
	buff, err := os.ReadFile(filepath.Join(path, common.ProjectFileName))
	if err != nil {
		return nil, err
	}

	tp := &tomlProject{}
	if err := toml.Unmarshal(buff, tp); err != nil {
		return nil, err
	}

	gp := &GrammarProject{
		// project root is the directory enclosing the project file
		ProjectRoot: path,
	}

	if err := validateProject(gp, tp); err != nil {
		return nil, err
	}

	gp.Name = tp.Name
	gp.Target = tp.Target
	gp.LogLevel = tp.LogLevel
	gp.MaxDepth = tp.MaxDepth
	gp.StrictSemantics = tp.StrictSemantics
	gp.Seed = tp.Seed

	for _, grammarFile := range tp.GrammarFiles {
		if !filepath.IsAbs(grammarFile) {
			grammarFile = filepath.Join(path, grammarFile)
		}

		gp.GrammarFiles = append(gp.GrammarFiles, grammarFile)
	}

	gp.WordLists = make(map[string][]string, len(tp.WordLists))
	for _, wl := range tp.WordLists {
		gp.WordLists[wl.Name] = wl.Words
	}

	return gp, nil
}

// validateProject checks that the project file contents are valid
func validateProject(gp *GrammarProject, tp *tomlProject) error {
	if tp.Name == "" {
		return fmt.Errorf("missing project name for project at %s", gp.ProjectRoot)
	}

	if !IsValidIdentifier(tp.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if len(tp.GrammarFiles) == 0 {
		return fmt.Errorf("project %s must provide at least one grammar file", tp.Name)
	}

	if tp.Target == "" {
		return fmt.Errorf("project %s must specify a target rule", tp.Name)
	}

	if tp.MaxDepth < 0 {
		return fmt.Errorf("max-depth of project %s must be positive", tp.Name)
	}

	if tp.LogLevel != "" {
		if _, ok := validLogLevels[tp.LogLevel]; !ok {
			return fmt.Errorf("%s is not a valid log level", tp.LogLevel)
		}
	}

	seen := make(map[string]struct{}, len(tp.WordLists))
	for _, wl := range tp.WordLists {
		if !IsValidIdentifier(wl.Name) {
			return fmt.Errorf("word list name `%s` in project %s must be a valid identifier", wl.Name, tp.Name)
		}

		if _, ok := seen[wl.Name]; ok {
			return fmt.Errorf("word list `%s` is declared multiple times in project %s", wl.Name, tp.Name)
		}
		seen[wl.Name] = struct{}{}

		if len(wl.Words) == 0 {
			logging.LogGrammarWarning(
				"Project",
				fmt.Sprintf("word list `%s` of project `%s` is empty and will never match", wl.Name, tp.Name),
			)
		}
	}

	return nil
}
