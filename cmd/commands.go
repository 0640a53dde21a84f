package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ComedicChimera/olive"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/tue-robotics/grammar-parser/logging"
	"github.com/tue-robotics/grammar-parser/syntax"
)

// execParseCommand parses the sentence given on the command line and prints
// its semantics
func execParseCommand(sess *session, result *olive.ArgParseResult) bool {
	sentence, _ := result.PrimaryArg()
	words := syntax.Tokenize(sentence)

	if !result.HasFlag("debug") {
		sem, ok := sess.grammar.Parse(sess.target, words)
		if ok {
			printSemantics(sem)
		}

		return ok
	}

	tree, err := sess.grammar.ParseTree(sess.target, words)
	if err != nil {
		syntax.LogError(err)
		return false
	}

	logging.PrintInfoMessage("Parse Tree", "\n"+tree.String())

	sem, err := sess.grammar.Semantics(tree)
	if err != nil {
		syntax.LogError(err)
		return false
	}

	printSemantics(sem)
	return true
}

// execCompleteCommand prints the words that can follow the given prefix
func execCompleteCommand(sess *session, result *olive.ArgParseResult) bool {
	prefix, _ := result.PrimaryArg()

	next := sess.grammar.NextWords(sess.target, syntax.Tokenize(prefix))
	if len(next) == 0 {
		logging.PrintWarningMessage("Completion", "no words can follow this prefix")
		return true
	}

	sort.Strings(next)
	for _, word := range next {
		fmt.Println(word)
	}

	return true
}

// execRandomCommand prints random sentences for the target rule.  Every
// sentence is parsed back so that grammars the generator cannot represent
// (eg. ones using functions) are reported.
func execRandomCommand(sess *session, result *olive.ArgParseResult) bool {
	count := 1
	if countArg := stringArg(result, "count"); countArg != "" {
		n, err := strconv.Atoi(countArg)
		if err != nil || n < 1 {
			logging.PrintErrorMessage("CLI Usage Error", fmt.Errorf("invalid sentence count `%s`", countArg))
			return false
		}

		count = n
	}

	seed := sess.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < count; i++ {
		sentence, err := sess.grammar.RandomSentence(sess.target, rng)
		if err != nil {
			syntax.LogError(err)
			return false
		}

		fmt.Println(sentence)

		if _, err := sess.grammar.ParseRaw(sess.target, syntax.Tokenize(sentence)); err != nil {
			logging.LogGrammarWarning("Generation", fmt.Sprintf("generated sentence `%s` does not parse: %s", sentence, err))
		}
	}

	return true
}

// execVerifyCommand verifies the target rule or all rules
func execVerifyCommand(sess *session, result *olive.ArgParseResult) bool {
	logging.BeginPhase("Verifying")

	var err error
	if result.HasFlag("all") {
		err = sess.grammar.VerifyAll()
	} else {
		err = sess.grammar.Verify(sess.target)
	}

	if err != nil {
		syntax.LogError(err)
		return false
	}

	logging.EndPhase(true)
	return true
}

// batchResult is the outcome of parsing one line of a batch file
type batchResult struct {
	sentence  string
	semantics interface{}
	ok        bool
}

// execBatchCommand parses every non-empty line of a file concurrently and
// prints the results in file order
func execBatchCommand(sess *session, result *olive.ArgParseResult) bool {
	path, _ := result.PrimaryArg()

	sentences, err := readSentences(path)
	if err != nil {
		logging.PrintErrorMessage("File Error", err)
		return false
	}

	jobs := runtime.NumCPU()
	if jobsArg := stringArg(result, "jobs"); jobsArg != "" {
		n, err := strconv.Atoi(jobsArg)
		if err != nil || n < 1 {
			logging.PrintErrorMessage("CLI Usage Error", fmt.Errorf("invalid job count `%s`", jobsArg))
			return false
		}

		jobs = n
	}

	logging.BeginPhase("Parsing")

	results := make([]batchResult, len(sentences))
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(jobs)

	for i, sentence := range sentences {
		i, sentence := i, sentence
		results[i].sentence = sentence

		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			sem, err := sess.grammar.ParseRaw(sess.target, syntax.Tokenize(sentence))
			if err != nil {
				syntax.LogError(err)

				// a broken grammar fails every remaining sentence the same way
				if !errors.Is(err, syntax.ErrNoMatch) {
					return err
				}

				return nil
			}

			results[i].semantics = sem
			results[i].ok = true
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return false
	}

	logging.EndPhase(true)

	for _, res := range results {
		if res.ok {
			logging.PrintInfoMessage("Parsed", res.sentence)
			printSemantics(res.semantics)
		}
	}

	return true
}

// readSentences reads the non-empty lines of a file
func readSentences(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sentences []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			sentences = append(sentences, line)
		}
	}

	return sentences, sc.Err()
}

// printSemantics prints decoded semantics as YAML
func printSemantics(sem interface{}) {
	buff, err := yaml.Marshal(sem)
	if err != nil {
		logging.PrintErrorMessage("Output Error", err)
		return
	}

	fmt.Print(string(buff))
}
