package mention

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDelay is how long a suggestion computation waits before applying.
const DefaultDelay = time.Second

// Suggestion is one row of the dropdown.
type Suggestion struct {
	ID       string
	Username string
}

// Provider derives suggestions from the text typed after "@".
type Provider interface {
	Suggest(text string) []Suggestion
}

// ProviderFunc adapts a func to Provider.
type ProviderFunc func(text string) []Suggestion

func (f ProviderFunc) Suggest(text string) []Suggestion { return f(text) }

type demoProvider struct{}

// DemoProvider returns the fixed two-entry provider: the typed text suffixed
// with two sample names.
func DemoProvider() Provider { return demoProvider{} }

func (demoProvider) Suggest(text string) []Suggestion {
	return []Suggestion{
		{Username: text + "张三", ID: "fdsafdsafdsa"},
		{Username: text + "李四", ID: "543543"},
	}
}

// StalePolicy decides what happens to results of superseded computations.
type StalePolicy uint8

const (
	// StaleKeepLastFinished applies every result as it completes; the last
	// computation to finish wins even if its input is older.
	StaleKeepLastFinished StalePolicy = iota
	// StaleDropSuperseded cancels the pending computation on new input so
	// only the latest request is applied.
	StaleDropSuperseded
)

func (p StalePolicy) String() string {
	switch p {
	case StaleKeepLastFinished:
		return "last-finished"
	case StaleDropSuperseded:
		return "drop-superseded"
	default:
		return fmt.Sprintf("StalePolicy(%d)", uint8(p))
	}
}

// ParseStalePolicy parses the String form of a policy.
func ParseStalePolicy(s string) (StalePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-finished":
		return StaleKeepLastFinished, nil
	case "drop-superseded":
		return StaleDropSuperseded, nil
	default:
		return 0, fmt.Errorf("mention: unknown stale policy %q", s)
	}
}

// Options configure the mention definition.
type Options struct {
	// Delay defaults to DefaultDelay. A negative delay applies on the next
	// scheduler turn.
	Delay time.Duration

	// Provider defaults to DemoProvider.
	Provider Provider

	StalePolicy StalePolicy
}

func (o Options) normalized() Options {
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.Provider == nil {
		o.Provider = DemoProvider()
	}
	return o
}
