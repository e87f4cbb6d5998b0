// Package harness runs ledger scenarios as executable contract tests.
//
// A scenario seeds the owner set, performs a sequence of ledger calls
// against a fresh in-memory store, and checks the outcome of every call
// and the final state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	config:
//	  storage_byte_cost: "0"
//	owners:
//	  - admin.near
//	steps:
//	  - op: offer_group
//	    caller: admin.near
//	    attached: "1000"
//	    args: { group: vip, metadata: { title: VIP }, royalty: { artist.near: 1000 } }
//	  - op: mint_units
//	    caller: admin.near
//	    args: { group: vip, count: 2, receiver: fan.near }
//	  - op: payout
//	    args: { token: "vip:1", amount: "1000" }
//	    expect: OK
//	assertions:
//	  - type: group_units
//	    group: vip
//	    count: 2
//	  - type: token_owner
//	    token: "vip:1"
//	    account: fan.near
//
// The config block is decoded over config.Default, so omitted settings
// keep their defaults. A step's expect names the error code the call must
// fail with; it defaults to OK.
//
// # Assertion Types
//
//   - group_units: a group has exactly count units created
//   - token_owner: a token exists and is owned by account
//   - tokens_owned: account owns exactly count tokens
//   - transfer_count: exactly count refunds were issued
//   - is_owner: account is (owner: true) or is not (owner: false) an owner
//
// # Deterministic Testing
//
// Call ids come from testutil.SequentialCallIDs, the transfer clock starts
// at zero, and every scenario gets its own in-memory SQLite database, so
// traces are identical across runs and can be compared against golden
// files.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/offer_and_mint.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
