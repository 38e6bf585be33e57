package segment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/arloliu/malie/errs"
)

// Classifier decides which labels are shown for translation when filtering is on.
type Classifier interface {
	Visible(label string) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(label string) bool

// Visible implements Classifier.
func (f ClassifierFunc) Visible(label string) bool {
	return f(label)
}

// MaxVisibleLabelLength is the longest label, in code points, DefaultClassifier shows.
const MaxVisibleLabelLength = 100

var systemLabelPrefixes = []string{"malie_", "■ [LABEL]", "v_", "wait", "time"}

// DefaultClassifier shows character names, choices and chapter titles and hides
// engine-internal labels.
type DefaultClassifier struct{}

var _ Classifier = DefaultClassifier{}

// Visible implements Classifier.
func (DefaultClassifier) Visible(label string) bool {
	if strings.TrimFunc(label, unicode.IsSpace) == "" {
		return false
	}

	for _, prefix := range systemLabelPrefixes {
		if strings.HasPrefix(label, prefix) {
			return false
		}
	}

	if strings.Contains(label, "<chapter name=") {
		return true
	}
	if strings.HasPrefix(label, "<") {
		return false
	}

	if isTiming(label) {
		return false
	}

	if n := utf8.RuneCountInString(label); n < 1 || n > MaxVisibleLabelLength {
		return false
	}

	return strings.IndexFunc(label, func(r rune) bool { return !IsControl(r) }) >= 0
}

// isTiming matches wait durations such as "0.5" or "0.25s".
func isTiming(label string) bool {
	if !strings.Contains(label, "0.") {
		return false
	}

	rest := strings.ReplaceAll(label, "0.", "")
	rest = strings.ReplaceAll(rest, "s", "")
	rest = strings.ReplaceAll(rest, ".", "")
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// labelEnv is the evaluation environment of ExprClassifier.
type labelEnv struct {
	Label  string `expr:"label"`
	Length int    `expr:"length"`
}

// ExprClassifier evaluates a boolean expr-lang expression per label.
//
// The expression sees `label` (the text) and `length` (its code point count),
// plus the helpers `standard(label)`, which applies DefaultClassifier, and
// `hasControl(label)`. An evaluation error hides the label.
type ExprClassifier struct {
	source  string
	program *vm.Program
}

var _ Classifier = (*ExprClassifier)(nil)

// NewExprClassifier compiles source.
func NewExprClassifier(source string) (*ExprClassifier, error) {
	program, err := expr.Compile(source,
		expr.Env(labelEnv{}),
		expr.AsBool(),
		expr.Function("standard", func(params ...any) (any, error) {
			return DefaultClassifier{}.Visible(params[0].(string)), nil //nolint:forcetypeassert
		}, new(func(string) bool)),
		expr.Function("hasControl", func(params ...any) (any, error) {
			return strings.IndexFunc(params[0].(string), IsControl) >= 0, nil //nolint:forcetypeassert
		}, new(func(string) bool)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidClassifier, err)
	}

	return &ExprClassifier{source: source, program: program}, nil
}

// Source returns the expression text.
func (c *ExprClassifier) Source() string {
	return c.source
}

// Visible implements Classifier.
func (c *ExprClassifier) Visible(label string) bool {
	out, err := expr.Run(c.program, labelEnv{Label: label, Length: utf8.RuneCountInString(label)})
	if err != nil {
		return false
	}

	visible, ok := out.(bool)

	return ok && visible
}
