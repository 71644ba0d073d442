// Package prompt builds the instruction payload handed to a generation
// provider. Assembly is pure; every rule is testable without I/O.
package prompt

import (
	"strings"
	"time"

	"agripulse/internal/evidence"
)

// Payload is the assembled instruction blob. Providers treat it as opaque.
type Payload struct {
	SystemInstructions string
	ContextBlock       string
	UserQuery          string
}

// Render flattens the payload into the single text blob sent upstream.
func (p Payload) Render() string {
	var b strings.Builder
	b.WriteString(p.SystemInstructions)
	b.WriteString("\n\nCONTEXT:\n")
	b.WriteString(p.ContextBlock)
	b.WriteString("\n\nUSER QUERY: ")
	b.WriteString(p.UserQuery)
	return b.String()
}

const (
	// maxDocumentLen bounds the attached-document excerpt.
	maxDocumentLen = 6000

	// noDataMarker keeps the context block structurally present when no
	// evidence was retrieved.
	noDataMarker = "No external data needed."
)

const systemHeader = "You are an elite Agricultural Intelligence Consultant."

const scopeClause = `SCOPE:
You only answer questions about agriculture: crops, prices, weather impact,
pests, machinery, and market trends. If the question is outside this scope,
politely refuse and steer the user back to agriculture. Greetings and brief
pleasantries are fine to answer warmly.`

const documentClause = `DOCUMENT RULES:
A document is attached below. Before answering, decide whether it is
relevant to agriculture; if it is not, refuse to answer from it and say so.
Answer strictly from the document content when it is relevant.`

const reportFormat = `STRICT REPORTING FORMAT (mandatory for this query):
1. Data Visualization: include a Markdown table comparing prices
   (Columns: Market/Variety | Wholesale Price | Retail Price).
2. High Contrast: bold every price, percentage, and key location.
3. Structure, in this exact order:
   - **Executive Summary**
   - **Market Pulse** (the table)
   - **Trend Analysis**
   - **Pro Tip**
   - **Outlook**
4. Tone: executive, data-driven, concise.`

// Assemble combines the query, retrieved evidence, and an optional attached
// document into a Payload. An attached document replaces evidence entirely
// so the answer stays grounded in it.
func Assemble(query string, set evidence.Set, document string) Payload {
	var ctx strings.Builder
	ctx.WriteString("Current Date: " + time.Now().Format("Monday, 2 January 2006"))
	ctx.WriteString("\n")

	instructions := []string{systemHeader, scopeClause}

	if document != "" {
		instructions = append(instructions, documentClause)
		ctx.WriteString("\n[ATTACHED DOCUMENT]\n")
		ctx.WriteString(truncateDocument(document))
		ctx.WriteString("\n[END DOCUMENT]\n")
	} else if set.Len() == 0 {
		ctx.WriteString(noDataMarker)
	} else {
		for _, it := range set.Items {
			ctx.WriteString("- ")
			if it.Title != "" {
				ctx.WriteString(it.Title)
				ctx.WriteString(": ")
			}
			ctx.WriteString(it.Snippet)
			ctx.WriteString("\n")
		}
	}

	if WantsMarketReport(query) {
		instructions = append(instructions, reportFormat)
	}

	return Payload{
		SystemInstructions: strings.Join(instructions, "\n\n"),
		ContextBlock:       ctx.String(),
		UserQuery:          query,
	}
}

// WantsMarketReport reports whether the query triggers the fixed tabular
// report contract. Shares the trigger family with the web-search gating.
func WantsMarketReport(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range []string{"price", "market", "rate", "cost", "trend", "mandi", "msp"} {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func truncateDocument(doc string) string {
	if len(doc) <= maxDocumentLen {
		return doc
	}
	r := []rune(doc)
	if len(r) <= maxDocumentLen {
		return doc
	}
	return string(r[:maxDocumentLen]) + "\n[document truncated]"
}
