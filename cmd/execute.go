package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/tue-robotics/grammar-parser/common"
	"github.com/tue-robotics/grammar-parser/logging"
	"github.com/tue-robotics/grammar-parser/project"
	"github.com/tue-robotics/grammar-parser/syntax"
)

// Execute runs the main `cfgparser` application and returns its exit code
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("cfgparser", "cfgparser matches sentences against context free grammars", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})

	parseCmd := cli.AddSubcommand("parse", "parse a sentence and print its semantics", true)
	parseCmd.AddPrimaryArg("sentence", "the sentence to parse", true)
	parseCmd.AddStringArg("grammar", "g", "the path to a grammar file", false)
	parseCmd.AddStringArg("target", "t", "the rule to match the sentence against", false)
	parseCmd.AddStringArg("project", "p", "the path to the project directory", false)
	parseCmd.AddFlag("debug", "d", "print the matched parse tree")

	completeCmd := cli.AddSubcommand("complete", "list the words that can follow a sentence prefix", true)
	completeCmd.AddPrimaryArg("prefix", "the beginning of a sentence", false)
	completeCmd.AddStringArg("grammar", "g", "the path to a grammar file", false)
	completeCmd.AddStringArg("target", "t", "the rule to complete against", false)
	completeCmd.AddStringArg("project", "p", "the path to the project directory", false)

	randomCmd := cli.AddSubcommand("random", "generate random sentences", true)
	randomCmd.AddStringArg("count", "n", "the number of sentences to generate", false)
	randomCmd.AddStringArg("grammar", "g", "the path to a grammar file", false)
	randomCmd.AddStringArg("target", "t", "the rule to generate sentences for", false)
	randomCmd.AddStringArg("project", "p", "the path to the project directory", false)

	verifyCmd := cli.AddSubcommand("verify", "check that every rule reachable from the target resolves", true)
	verifyCmd.AddFlag("all", "a", "verify every rule of the grammar")
	verifyCmd.AddStringArg("grammar", "g", "the path to a grammar file", false)
	verifyCmd.AddStringArg("target", "t", "the rule to verify", false)
	verifyCmd.AddStringArg("project", "p", "the path to the project directory", false)

	batchCmd := cli.AddSubcommand("batch", "parse every line of a file", true)
	batchCmd.AddPrimaryArg("file", "the file containing one sentence per line", true)
	batchCmd.AddStringArg("jobs", "j", "the number of sentences parsed at once", false)
	batchCmd.AddStringArg("grammar", "g", "the path to a grammar file", false)
	batchCmd.AddStringArg("target", "t", "the rule to match the sentences against", false)
	batchCmd.AddStringArg("project", "p", "the path to the project directory", false)

	cli.AddSubcommand("version", "print the parser version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 2
	}

	logLevel := stringArg(result, "loglevel")

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	if subcmdName == "version" {
		logging.PrintInfoMessage("Parser Version", common.ParserVersion)
		return 0
	}

	sess, ok := loadSession(subResult, logLevel)
	if !ok {
		logging.Finish()
		return 1
	}

	switch subcmdName {
	case "parse":
		ok = execParseCommand(sess, subResult)
	case "complete":
		ok = execCompleteCommand(sess, subResult)
	case "random":
		ok = execRandomCommand(sess, subResult)
	case "verify":
		ok = execVerifyCommand(sess, subResult)
	case "batch":
		ok = execBatchCommand(sess, subResult)
	}

	if !logging.Finish() || !ok {
		return 1
	}

	return 0
}

// session is the grammar and settings shared by all grammar commands
type session struct {
	grammar *syntax.Grammar
	target  string
	seed    int64
}

// loadSession loads the grammar selected on the command line: either a single
// grammar file given with --grammar or a project.  It handles all errors.
func loadSession(result *olive.ArgParseResult, logLevel string) (*session, bool) {
	if logLevel == "" {
		logging.Initialize("verbose")
	} else {
		logging.Initialize(logLevel)
	}

	sess := &session{target: stringArg(result, "target")}

	if grammarPath := stringArg(result, "grammar"); grammarPath != "" {
		if sess.target == "" {
			logging.PrintErrorMessage("CLI Usage Error", errors.New("a grammar file requires a target rule (--target)"))
			return nil, false
		}

		logging.BeginPhase("Loading")
		g, err := syntax.LoadGrammarFile(grammarPath)
		if err != nil {
			logging.LogGrammarError("Grammar", fmt.Sprintf("error loading %s: %s", grammarPath, err))
			return nil, false
		}
		logging.EndPhase(true)

		sess.grammar = g
		return sess, true
	}

	projectPath, ok := findProjectPath(stringArg(result, "project"))
	if !ok {
		return nil, false
	}

	proj, err := project.LoadProject(projectPath)
	if err != nil {
		logging.LogConfigError("Project", err.Error())
		return nil, false
	}

	// the command line log level takes precedence over the project's
	if logLevel == "" && proj.LogLevel != "" {
		logging.SetLevel(proj.LogLevel)
	}

	if sess.target == "" {
		sess.target = proj.Target
	}
	sess.seed = proj.Seed

	logging.BeginPhase("Loading")
	g, err := proj.LoadGrammar()
	if err != nil {
		logging.LogGrammarError("Grammar", fmt.Sprintf("error loading project %s: %s", proj.Name, err))
		return nil, false
	}
	logging.EndPhase(true)

	sess.grammar = g
	return sess, true
}

// findProjectPath returns the project directory given on the command line or
// searches for one starting at the working directory
func findProjectPath(projectArg string) (string, bool) {
	if projectArg != "" {
		projectPath, err := filepath.Abs(projectArg)
		if err != nil {
			logging.PrintErrorMessage("Path Error", err)
			return "", false
		}

		return projectPath, true
	}

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return "", false
	}

	projectPath, ok := project.FindProject(workDir)
	if !ok {
		logging.LogConfigError(
			"Project",
			fmt.Sprintf("no %s found in %s or its parents; use --grammar or --project", common.ProjectFileName, workDir),
		)
	}

	return projectPath, ok
}

// stringArg returns the value of a string argument or "" if it was not given
func stringArg(result *olive.ArgParseResult, name string) string {
	if argVal, ok := result.Arguments[name]; ok {
		if s, ok := argVal.(string); ok {
			return s
		}
	}

	return ""
}
