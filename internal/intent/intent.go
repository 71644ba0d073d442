// Package intent routes incoming queries before any I/O happens.
package intent

import "strings"

// Intent is the closed set of routes a query can take.
type Intent int

const (
	// DomainQuery goes through retrieval and generation.
	DomainQuery Intent = iota
	// Greeting short-circuits to a canned answer.
	Greeting
	// ChitChat skips retrieval but still reaches generation.
	ChitChat
)

func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case ChitChat:
		return "chitchat"
	default:
		return "domain_query"
	}
}

// salutations are matched whole against the trimmed query.
var salutations = []string{
	"hi", "hello", "hey", "greetings", "good morning", "good afternoon",
	"good evening", "yo", "how are you", "test", "ping",
}

// prefixes catch short messages that open with a salutation ("hey there!").
var prefixes = []string{"hi", "hello", "hey"}

var chitchatMarkers = []string{
	"thank", "thanks", "who are you", "what are you", "what can you do",
	"bye", "goodbye", "see you",
}

// Classify maps query text to an Intent. It is pure and total: every
// non-empty string gets a route, and anything ambiguous defaults to
// DomainQuery so the agent errs toward answering.
func Classify(text string) Intent {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return DomainQuery
	}

	for _, s := range salutations {
		if q == s || q == s+"!" || q == s+"." || q == s+"?" {
			return Greeting
		}
	}
	if len(strings.Fields(q)) < 4 {
		for _, p := range prefixes {
			if strings.HasPrefix(q, p) {
				return Greeting
			}
		}
	}

	for _, m := range chitchatMarkers {
		if strings.Contains(q, m) {
			return ChitChat
		}
	}

	return DomainQuery
}
