package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/wire"
)

// TraceSnapshot is the golden form of a run: the scenario name and its
// trace, serialized as canonical JSON.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
}

// canonical lowers the event to the plain values wire.MarshalCanonical
// accepts. Empty optional fields are left out.
func (e TraceEvent) canonical() map[string]any {
	m := map[string]any{
		"seq":     e.Seq,
		"op":      e.Op,
		"outcome": e.Outcome,
	}
	optional := map[string]string{
		"call_id": e.CallID,
		"caller":  e.Caller,
		"refund":  e.Refund,
	}
	for k, v := range optional {
		if v != "" {
			m[k] = v
		}
	}
	if e.Result != nil {
		m["result"] = e.Result
	}
	return m
}

func (s TraceSnapshot) canonical() map[string]any {
	events := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		events[i] = ev.canonical()
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         events,
	}
}

// MarshalTrace renders a trace as canonical JSON: sorted keys, no
// insignificant whitespace, no trailing newline.
func MarshalTrace(scenarioName string, trace []TraceEvent) ([]byte, error) {
	return wire.MarshalCanonical(TraceSnapshot{ScenarioName: scenarioName, Trace: trace}.canonical())
}

// RunWithGolden runs scenario and compares its trace with
// testdata/golden/<name>.golden. Run the tests with -update to rewrite
// the file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace with its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalTrace(scenarioName, result.Trace)
	if err != nil {
		return err
	}
	goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	).Assert(t, scenarioName, data)
	return nil
}
