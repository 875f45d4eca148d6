package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter returns a canned response, or errs when the prompt contains
// the trigger substring.
type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const acmeResponse = `{
	"records": [
		{"Agency": "Acme Staffing", "Person Name": "Jane Smith", "Gross Pay": "320.00"},
		{"Agency": "", "Person Name": "Bob Jones", "Gross Pay": "410.50"}
	],
	"Agency Name": {
		"Acme Staffing": {"Total Gross Pay": "730.50"}
	}
}`

func TestProcessTranscriptEndToEnd(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: acmeResponse}, nil)

	out, err := n.ProcessTranscript(context.Background(), "two people under Acme Staffing")
	require.NoError(t, err)

	summary, ok := out["Acme Staffing"].(map[string]any)
	require.True(t, ok, "summary re-keyed under the real agency name")
	assert.Equal(t, "730.50", summary["Total Gross Pay"])
	assert.InDelta(t, 730.5, summary["Manual Total Gross Pays"], 1e-9)

	recs, ok := out["records"].([]any)
	require.True(t, ok, "filtered records stay in the envelope")
	require.Len(t, recs, 2)

	// model left the second record's agency empty; it gets back-filled
	second := recs[1].(map[string]any)
	assert.Equal(t, "Acme Staffing", second["Agency"])

	_, hasEnvelope := out["Agency Name"]
	assert.False(t, hasEnvelope, "raw envelope key is replaced by the agency name")
}

func TestProcessTranscriptFencedResponse(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: "```json\n" + acmeResponse + "\n```"}, nil)

	out, err := n.ProcessTranscript(context.Background(), "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Staffing")
}

func TestProcessTranscriptFiltersOtherRecords(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: `{
		"records": [
			{"Agency": "Acme Staffing", "Person Name": "Jane Smith", "Gross Pay": "100.00"},
			{"Agency": "Acme Staffing", "Person Name": "Other", "Gross Pay": "999.00"},
			{"Agency": "Acme Staffing", "Person Name": "  OTHERS ", "Gross Pay": "999.00"}
		],
		"Agency Name": {"Acme Staffing": {}}
	}`}, nil)

	out, err := n.ProcessTranscript(context.Background(), "text")
	require.NoError(t, err)

	recs := out["records"].([]any)
	require.Len(t, recs, 1)
	assert.Equal(t, "Jane Smith", recs[0].(map[string]any)["Person Name"])

	// the fabricated rows' amounts never reach the manual total
	summary := out["Acme Staffing"].(map[string]any)
	assert.InDelta(t, 100.0, summary["Manual Total Gross Pays"], 1e-9)
}

func TestProcessTranscriptRejectsOthersAgency(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: `{
		"records": [{"Agency": "", "Person Name": "Jane Smith"}],
		"Agency Name": {"Others": {}}
	}`}, nil)

	_, err := n.ProcessTranscript(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	// punctuation and case don't dodge the check
	n = NewNormalizer(&stubCompleter{response: `{
		"records": [{"Agency": "", "Person Name": "Jane Smith"}],
		"Agency Name": {"O.T.H.E.R.S": {}}
	}`}, nil)
	_, err = n.ProcessTranscript(context.Background(), "text")
	assert.Error(t, err)
}

func TestProcessTranscriptInvalidStructure(t *testing.T) {
	cases := map[string]string{
		"not json":       `the model rambled instead`,
		"missing agency": `{"records": []}`,
		"missing record": `{"Agency Name": {"Acme": {}}}`,
		"two agencies":   `{"records": [{"Person Name": "J"}], "Agency Name": {"A": {}, "B": {}}}`,
	}
	for name, resp := range cases {
		n := NewNormalizer(&stubCompleter{response: resp}, nil)
		_, err := n.ProcessTranscript(context.Background(), "text")
		assert.Error(t, err, name)
	}
}

func TestProcessTranscriptNoSurvivingRecords(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: `{
		"records": [{"Agency": "Acme", "Person Name": "Others"}],
		"Agency Name": {"Acme": {}}
	}`}, nil)

	_, err := n.ProcessTranscript(context.Background(), "text")
	assert.Error(t, err)
}

func TestProcessTranscriptAgencySummaryNotObject(t *testing.T) {
	// the outer envelope validates, but the summary under the agency key must
	// itself be an object before the manual total can be attached
	for name, resp := range map[string]string{
		"string": `{
			"records": [{"Agency": "Acme", "Person Name": "Jane Smith", "Gross Pay": "50"}],
			"Agency Name": {"Acme": "totals pending"}
		}`,
		"number": `{
			"records": [{"Agency": "Acme", "Person Name": "Jane Smith", "Gross Pay": "50"}],
			"Agency Name": {"Acme": 730.5}
		}`,
		"null": `{
			"records": [{"Agency": "Acme", "Person Name": "Jane Smith", "Gross Pay": "50"}],
			"Agency Name": {"Acme": null}
		}`,
	} {
		n := NewNormalizer(&stubCompleter{response: resp}, nil)
		_, err := n.ProcessTranscript(context.Background(), "text")
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "not an object", name)
	}
}

func TestProcessTranscriptCompleterError(t *testing.T) {
	n := NewNormalizer(&stubCompleter{err: errors.New("rate limited")}, nil)
	_, err := n.ProcessTranscript(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestProcessTranscriptNonEmptyAgencyKept(t *testing.T) {
	n := NewNormalizer(&stubCompleter{response: `{
		"records": [{"Agency": "Acme Staffing Ltd", "Person Name": "Jane Smith", "Gross Pay": "50"}],
		"Agency Name": {"Acme Staffing": {}}
	}`}, nil)

	out, err := n.ProcessTranscript(context.Background(), "text")
	require.NoError(t, err)

	// the record's own agency string wins as the display key
	assert.Contains(t, out, "Acme Staffing Ltd")
	rec := out["records"].([]any)[0].(map[string]any)
	assert.Equal(t, "Acme Staffing Ltd", rec["Agency"])
}
