package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"hello", Greeting},
		{"Hello!", Greeting},
		{"GOOD MORNING", Greeting},
		{"hey there", Greeting},
		{"ping", Greeting},
		{"how are you", Greeting},
		{"thanks a lot", ChitChat},
		{"who are you?", ChitChat},
		{"rice price trend", DomainQuery},
		{"wheat", DomainQuery},
		{"hello, what is the current onion price in nashik", DomainQuery},
		{"when should I sow mustard this season", DomainQuery},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.text), "query: %q", tc.text)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Degenerate inputs still route somewhere instead of erroring.
	for _, q := range []string{"", " ", "?", "a", "!!"} {
		_ = Classify(q)
	}
	assert.Equal(t, DomainQuery, Classify(""))
}
