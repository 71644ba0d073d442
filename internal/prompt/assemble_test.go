package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"agripulse/internal/evidence"
)

func someEvidence() evidence.Set {
	return evidence.Set{Items: []evidence.Item{
		{SourceKind: evidence.SourceCorpus, Title: "reddit post by u/x", Snippet: "rice up 12%"},
		{SourceKind: evidence.SourceWeb, Title: "Market Watch", Snippet: "wholesale rice steady"},
	}}
}

func TestAssembleEvidenceBullets(t *testing.T) {
	p := Assemble("rice price trend", someEvidence(), "")
	assert.Contains(t, p.ContextBlock, "- reddit post by u/x: rice up 12%")
	assert.Contains(t, p.ContextBlock, "- Market Watch: wholesale rice steady")
	assert.NotContains(t, p.ContextBlock, noDataMarker)
	// Corpus bullet precedes the web bullet.
	assert.Less(t,
		strings.Index(p.ContextBlock, "reddit post"),
		strings.Index(p.ContextBlock, "Market Watch"))
}

func TestAssembleNoEvidenceMarker(t *testing.T) {
	p := Assemble("how do I store onions", evidence.Set{}, "")
	assert.Contains(t, p.ContextBlock, noDataMarker)
}

func TestAssembleScopeClauseAlwaysPresent(t *testing.T) {
	for _, q := range []string{"rice price", "tell me a joke", "weather outlook"} {
		p := Assemble(q, evidence.Set{}, "")
		assert.Contains(t, p.SystemInstructions, "only answer questions about agriculture")
	}
}

func TestAssembleDocumentReplacesEvidence(t *testing.T) {
	p := Assemble("what does the report say", someEvidence(), "OFFICIAL CROP REPORT: Purple Wheat at 5000 INR")
	assert.Contains(t, p.ContextBlock, "[ATTACHED DOCUMENT]")
	assert.Contains(t, p.ContextBlock, "Purple Wheat")
	assert.NotContains(t, p.ContextBlock, "reddit post")
	assert.Contains(t, p.SystemInstructions, "decide whether it is\nrelevant")
}

func TestAssembleDocumentTruncated(t *testing.T) {
	doc := strings.Repeat("x", maxDocumentLen+500)
	p := Assemble("summarize", evidence.Set{}, doc)
	assert.Contains(t, p.ContextBlock, "[document truncated]")
	assert.Less(t, len(p.ContextBlock), maxDocumentLen+300)
}

func TestAssembleReportFormatTrigger(t *testing.T) {
	withFormat := Assemble("rice price trend", evidence.Set{}, "")
	assert.Contains(t, withFormat.SystemInstructions, "STRICT REPORTING FORMAT")

	without := Assemble("how to treat leaf blight", evidence.Set{}, "")
	assert.NotContains(t, without.SystemInstructions, "STRICT REPORTING FORMAT")
}

func TestRenderContainsAllSections(t *testing.T) {
	p := Assemble("rice price trend", someEvidence(), "")
	out := p.Render()
	assert.Contains(t, out, systemHeader)
	assert.Contains(t, out, "CONTEXT:")
	assert.Contains(t, out, "USER QUERY: rice price trend")
}

func TestWantsMarketReport(t *testing.T) {
	assert.True(t, WantsMarketReport("Rice PRICE trend"))
	assert.True(t, WantsMarketReport("mandi rates today"))
	assert.False(t, WantsMarketReport("pest control for cotton"))
}
