package syntax

import (
	"strconv"
	"strings"
)

// NewWordListFunction creates a function offering one option per entry.  An
// entry may span several words; every word becomes a terminal, whatever its
// case, and the option's semantics is the quoted entry.  Only entries starting
// with the next remaining word are returned, or all of them when no words
// remain.
func NewWordListFunction(entries []string) Function {
	var opts []*Option
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}

		opt := &Option{Semantics: strconv.Quote(strings.Join(fields, " "))}
		for _, word := range fields {
			opt.Conjuncts = append(opt.Conjuncts, Conjunct{Name: word, Kind: KindTerminal})
		}

		opts = append(opts, opt)
	}

	return func(words []string) []*Option {
		if len(words) == 0 {
			return opts
		}

		var matching []*Option
		for _, opt := range opts {
			if opt.Conjuncts[0].Name == words[0] {
				matching = append(matching, opt)
			}
		}

		return matching
	}
}
