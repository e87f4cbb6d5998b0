package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeConfig() map[string]interface{} {
	return map[string]interface{}{"storage_byte_cost": "0"}
}

func TestRun_MinimalScenario(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 1)

	ev := result.Trace[0]
	assert.Equal(t, int64(1), ev.Seq)
	assert.Equal(t, OpMintManual, ev.Op)
	assert.Equal(t, "call-0001", ev.CallID)
	assert.Equal(t, ExpectOK, ev.Outcome)
	assert.Equal(t, "poster", ev.Result["token_id"])
	assert.Empty(t, ev.Refund)
}

func TestRun_UnexpectedOutcomeFails(t *testing.T) {
	s := &Scenario{
		Name:        "unexpected",
		Description: "A step that fails without expecting to",
		Config:      freeConfig(),
		Steps: []Step{
			{Op: OpRemoveGroup, Caller: "admin.near", Args: map[string]interface{}{"group": "missing"}},
		},
		Assertions: []Assertion{{Type: AssertTransferCount}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected OK, got NOT_FOUND")
	assert.Equal(t, "NOT_FOUND", result.Trace[0].Outcome)
}

func TestRun_ExpectedFailurePasses(t *testing.T) {
	s := &Scenario{
		Name:        "expected_failure",
		Description: "A step that is expected to fail",
		Config:      freeConfig(),
		Steps: []Step{
			{Op: OpRemoveGroup, Caller: "admin.near", Args: map[string]interface{}{"group": "missing"}, Expect: "NOT_FOUND"},
		},
		Assertions: []Assertion{{Type: AssertTransferCount}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExpectedFailureThatSucceeds(t *testing.T) {
	s := &Scenario{
		Name:        "unexpected_success",
		Description: "A step expected to fail that succeeds",
		Config:      freeConfig(),
		Steps: []Step{
			{Op: OpAddOwner, Caller: "admin.near", Args: map[string]interface{}{"account": "admin.near"}, Expect: "UNAUTHORIZED"},
		},
		Assertions: []Assertion{{Type: AssertIsOwner, Account: "admin.near", Owner: true}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected UNAUTHORIZED, got OK")
}

func TestRun_BadArgs(t *testing.T) {
	s := &Scenario{
		Name:        "bad_args",
		Description: "Arguments that do not decode",
		Config:      freeConfig(),
		Steps: []Step{
			{Op: OpMintUnits, Caller: "admin.near", Args: map[string]interface{}{"group": "vip", "colour": "red"}},
			{Op: OpPayout, Args: map[string]interface{}{"token": "x", "amount": 5}},
		},
		Assertions: []Assertion{{Type: AssertTransferCount}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, "ERROR", result.Trace[0].Outcome)
	assert.Empty(t, result.Trace[0].CallID, "no call is made when args do not decode")
	assert.Equal(t, "PARSE_ERROR", result.Trace[1].Outcome)
}

func TestRun_SeededOwnersGateCalls(t *testing.T) {
	s := &Scenario{
		Name:        "gate",
		Description: "Only seeded owners may offer",
		Config:      freeConfig(),
		Owners:      []string{"admin.near"},
		Steps: []Step{
			{Op: OpOfferGroup, Caller: "mallory.near", Args: map[string]interface{}{"group": "vip"}, Expect: "UNAUTHORIZED"},
			{Op: OpOfferGroup, Caller: "admin.near", Args: map[string]interface{}{"group": "vip"}},
		},
		Assertions: []Assertion{
			{Type: AssertGroupUnits, Group: "vip", Count: 0},
			{Type: AssertIsOwner, Account: "mallory.near", Owner: false},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "call-0001", result.Trace[0].CallID)
	assert.Equal(t, "call-0002", result.Trace[1].CallID)
}

func TestRun_RefundRecorded(t *testing.T) {
	s := &Scenario{
		Name:        "refund",
		Description: "Free storage returns the whole deposit",
		Config:      freeConfig(),
		Steps: []Step{
			{Op: OpAddOwner, Caller: "admin.near", Attached: "7", Args: map[string]interface{}{"account": "admin.near"}},
			{Op: OpAddOwner, Caller: "admin.near", Attached: "1", Args: map[string]interface{}{"account": "ops.near"}},
		},
		Assertions: []Assertion{{Type: AssertTransferCount, Count: 1}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "7", result.Trace[0].Refund)
	assert.Empty(t, result.Trace[1].Refund, "dust is not refunded")
}

func TestRun_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/offer_and_mint.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
}

func TestRun_InvalidConfig(t *testing.T) {
	s := &Scenario{
		Name:        "bad_config",
		Description: "Config that fails validation",
		Config:      map[string]interface{}{"usn_decimals": 99},
		Steps:       []Step{{Op: OpPayout, Args: map[string]interface{}{}}},
		Assertions:  []Assertion{{Type: AssertTransferCount}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}

func TestResult_AddTrace(t *testing.T) {
	r := NewResult()
	r.AddTrace(TraceEvent{Seq: 1, Op: OpPayout, Outcome: ExpectOK})
	r.AddTrace(TraceEvent{Seq: 2, Op: OpPayout, Outcome: "NOT_FOUND"})

	require.Len(t, r.Trace, 2)
	assert.Equal(t, int64(2), r.Trace[1].Seq)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, ExpectOK, outcomeOf(nil))
	assert.Equal(t, "ERROR", outcomeOf(assert.AnError))
}
