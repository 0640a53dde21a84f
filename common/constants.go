package common

const (
	ProjectFileName = "grammar.toml"
	ParserVersion   = "0.1.0"

	// FunctionMarker prefixes conjuncts that are expanded by a registered
	// function at parse time.
	FunctionMarker = '$'

	// CommentMarker starts a grammar line that is skipped entirely.
	CommentMarker = '#'

	// Arrow separates the left name of a rule from its alternatives.
	Arrow = " -> "

	DefaultMaxDepth = 10000
)
