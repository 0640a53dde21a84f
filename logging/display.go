package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------
// This section contains the message kinds that can be logged and the functions
// used to print them to the screen.

// GrammarMessage is an error or warning about a grammar
type GrammarMessage struct {
	Kind    string
	Message string
	IsError bool
}

func (gm *GrammarMessage) isError() bool {
	return gm.IsError
}

func (gm *GrammarMessage) display() {
	if gm.IsError {
		PrintErrorMessage(gm.Kind+" Error", errors.New(gm.Message))
	} else {
		PrintWarningMessage(gm.Kind+" Warning", gm.Message)
	}
}

// ConfigError is an error in the project configuration
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

// SentenceMessage reports a sentence that does not match the grammar
type SentenceMessage struct {
	Words   []string
	Index   int
	Message string
}

func (sm *SentenceMessage) isError() bool {
	return true
}

func (sm *SentenceMessage) display() {
	displayBanner("Parse Error")
	fmt.Println(sm.Message)
	sm.displaySelection()
}

// displaySelection prints the sentence and underlines the word that failed to
// match, or the position just after the last word if words are missing
func (sm *SentenceMessage) displaySelection() {
	fmt.Println()

	offset, width := selectionSpan(sm.Words, sm.Index)

	fmt.Print("  |  ")
	fmt.Println(strings.Join(sm.Words, " "))

	fmt.Print("  |  ", strings.Repeat(" ", offset))
	ErrorColorFG.Println(strings.Repeat("^", width))

	fmt.Println()
}

// selectionSpan returns the column and width, in characters, of word index
// within the space-joined sentence.  A missing word is one column wide.
func selectionSpan(words []string, index int) (int, int) {
	offset := 0
	for i, word := range words {
		if i == index {
			return offset, utf8.RuneCountInString(word)
		}

		offset += utf8.RuneCountInString(word) + 1
	}

	return offset, 1
}

// displayBanner displays the banner on top of sentence messages
func displayBanner(kindStr string) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print(kindStr)
	fmt.Print(" ")

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	if dashCount := bannerLen - len(kindStr) - 4; dashCount > 0 {
		fmt.Print(strings.Repeat("-", dashCount))
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

// phase is the phase of work currently shown with a spinner.  Only one phase
// runs at a time.
var phase struct {
	name    string
	spinner *pterm.SpinnerPrinter
	start   time.Time
}

const phaseColumn = len("Verifying") + 2

// phaseLabel pads a phase name so that phase timings line up
func phaseLabel(name string) string {
	if pad := phaseColumn - len(name); pad > 2 {
		return name + strings.Repeat(" ", pad)
	}

	return name + "  "
}

// phasePrinter creates the prefix printer used to close a phase
func phasePrinter(style *pterm.Style, text string) *pterm.PrefixPrinter {
	return &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: style, Text: text},
	}
}

// displayBeginPhase starts the spinner of a phase
func displayBeginPhase(name string) {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	spinner.SuccessPrinter = phasePrinter(SuccessStyleBG, "Done")
	spinner.FailPrinter = phasePrinter(ErrorStyleBG, "Fail")

	spinner.Start(phaseLabel(name + "..."))

	phase.name = name
	phase.spinner = spinner
	phase.start = time.Now()
}

// displayEndPhase stops the spinner of the current phase, if any
func displayEndPhase(success bool) {
	if phase.spinner == nil {
		return
	}

	if success {
		elapsed := time.Since(phase.start).Seconds()
		phase.spinner.Success(phaseLabel(phase.name), fmt.Sprintf("(%.3fs)", elapsed))
	} else {
		phase.spinner.Fail(phaseLabel(phase.name))
	}

	phase.spinner = nil
}

// countString renders a message count, colored when it is not zero
func countString(n int, noun string, color pterm.Color) string {
	if n != 1 {
		noun += "s"
	}

	if n == 0 {
		return SuccessColorFG.Sprint(0) + " " + noun
	}

	return color.Sprint(n) + " " + noun
}

// displayFinished displays the closing summary of a run
func displayFinished(success bool, errorCount, warningCount int) {
	headline := SuccessColorFG.Sprint("Finished.")
	if !success {
		headline = ErrorColorFG.Sprint("Failed.")
	}

	fmt.Printf(
		"\n%s (%s, %s)\n",
		headline,
		countString(errorCount, "error", ErrorColorFG),
		countString(warningCount, "warning", WarnColorFG),
	)
}
