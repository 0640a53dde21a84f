package project

import (
	"github.com/tue-robotics/grammar-parser/syntax"
)

// GrammarProject represents a grammar project -- specifically, the project
// configuration read from its project file.
type GrammarProject struct {
	// Name is the name of the project
	Name string

	// ProjectRoot is the path to the directory enclosing the project file
	ProjectRoot string

	// GrammarFiles are the absolute paths of the grammar files making up the
	// project's grammar.  They are loaded in order into a single grammar so
	// later files can add options to rules declared by earlier ones.
	GrammarFiles []string

	// Target is the default rule that sentences are matched against
	Target string

	// LogLevel is the name of the log level to use when none is given on the
	// command line.  Empty if unspecified.
	LogLevel string

	// MaxDepth is the recursion limit of the grammar.  Zero selects the
	// default limit.
	MaxDepth int

	// StrictSemantics enables the strict semantics template mode
	StrictSemantics bool

	// Seed seeds random sentence generation.  Zero means time based.
	Seed int64

	// WordLists maps function names to the entries offered by that function
	WordLists map[string][]string
}

// LoadGrammar builds the project's grammar: word lists are registered as
// functions, the grammar files are loaded in order and the result is
// validated.
func (p *GrammarProject) LoadGrammar() (*syntax.Grammar, error) {
	b := syntax.NewBuilder()
	b.SetMaxDepth(p.MaxDepth)
	b.SetStrictSemantics(p.StrictSemantics)

	for name, words := range p.WordLists {
		b.SetFunction(name, syntax.NewWordListFunction(words))
	}

	for _, path := range p.GrammarFiles {
		if err := b.LoadFile(path); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (project name, function name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
