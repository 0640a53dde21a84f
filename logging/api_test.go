package logging

import (
	"sync"
	"testing"
)

func TestLevelFromName(t *testing.T) {
	cases := map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warning": LogLevelWarning,
		"warn":    LogLevelWarning,
		"verbose": LogLevelVerbose,
		"":        LogLevelVerbose,
		"loud":    LogLevelVerbose,
	}

	for name, expected := range cases {
		if got := LevelFromName(name); got != expected {
			t.Errorf("LevelFromName(%q) = %d, expected %d", name, got, expected)
		}
	}
}

func TestSilentLogging(t *testing.T) {
	Initialize("silent")
	defer Initialize("error")

	if !ShouldProceed() {
		t.Fatal("a fresh logger has errors")
	}

	LogGrammarWarning("Project", "word list `x` is empty")
	if !ShouldProceed() {
		t.Error("a warning stopped the run")
	}

	LogGrammarError("Grammar", "rule 'B' does not exist")
	LogSentenceError([]string{"go", "to"}, 2, "word index 2 is missing (sentence has 2 words)")
	LogConfigError("Project", "missing project name")

	if ErrorCount() != 3 {
		t.Errorf("expected 3 errors, got %d", ErrorCount())
	}

	if ShouldProceed() || Finish() {
		t.Error("the run reported success after errors")
	}
}

func TestConcurrentLogging(t *testing.T) {
	Initialize("silent")
	defer Initialize("error")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			LogSentenceError([]string{"q"}, 0, "word 'q' at index 0 failed to match")
		}()
	}
	wg.Wait()

	if ErrorCount() != 50 {
		t.Errorf("expected 50 errors, got %d", ErrorCount())
	}
}

func TestSetLevelKeepsMessages(t *testing.T) {
	Initialize("silent")
	defer Initialize("error")

	LogConfigError("Project", "bad")
	SetLevel("silent")

	if ErrorCount() != 1 {
		t.Errorf("SetLevel dropped collected errors, got %d", ErrorCount())
	}

	if logger.LogLevel != LogLevelSilent {
		t.Errorf("log level = %d, expected silent", logger.LogLevel)
	}
}
