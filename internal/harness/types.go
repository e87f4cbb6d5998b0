package harness

// TraceEvent records one ledger call and how it ended.
type TraceEvent struct {
	// Seq numbers steps from 1.
	Seq int64 `json:"seq"`

	Op     string `json:"op"`
	CallID string `json:"call_id,omitempty"`
	Caller string `json:"caller,omitempty"`

	// Outcome is OK or the error code the call failed with.
	Outcome string `json:"outcome"`

	// Result summarizes what the call returned. Only plain values are
	// used so the trace serializes canonically.
	Result map[string]any `json:"result,omitempty"`

	// Refund is the amount returned to the caller, if any.
	Refund string `json:"refund,omitempty"`
}

// Result is what a scenario run produced. Pass is false as soon as any
// step or assertion error is recorded.
type Result struct {
	Pass   bool         `json:"pass"`
	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`
}

// NewResult returns an empty passing result.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}, Errors: []string{}}
}

// AddError records a failure.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
