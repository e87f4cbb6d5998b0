package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/config"
)

// Scenario defines a conformance test scenario: a sequence of ledger
// calls and the state they must leave behind.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are keyed by it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides settings of config.Default, in config file syntax.
	Config map[string]interface{} `yaml:"config,omitempty"`

	// Owners are added to the owner set before the first step, in order.
	// Setup calls are not traced.
	Owners []string `yaml:"owners,omitempty"`

	// Steps are the ledger calls to perform.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one ledger call.
type Step struct {
	// Op names the ledger operation (see the Op constants).
	Op string `yaml:"op"`

	// Caller is the predecessor account. Required for mutating ops.
	Caller string `yaml:"caller,omitempty"`

	// Attached is the deposit in yoctoNEAR, as a decimal string.
	// Defaults to "0".
	Attached string `yaml:"attached,omitempty"`

	// Args are the operation arguments. Their shape depends on Op.
	Args map[string]interface{} `yaml:"args"`

	// Expect is the error code the call must fail with, or OK.
	// Defaults to OK.
	Expect string `yaml:"expect,omitempty"`
}

// ExpectOK marks a step that must succeed.
const ExpectOK = "OK"

// Operation names accepted in Step.Op.
const (
	OpOfferGroup        = "offer_group"
	OpMintUnits         = "mint_units"
	OpMintManual        = "mint_manual"
	OpRemoveGroup       = "remove_group"
	OpUpdateCollectible = "update_collectible"
	OpAddOwner          = "add_owner"
	OpRemoveOwner       = "remove_owner"
	OpPayout            = "payout"
)

var mutatingOps = map[string]bool{
	OpOfferGroup:        true,
	OpMintUnits:         true,
	OpMintManual:        true,
	OpRemoveGroup:       true,
	OpUpdateCollectible: true,
	OpAddOwner:          true,
	OpRemoveOwner:       true,
}

// Assertion validates the final state.
type Assertion struct {
	// Type specifies the assertion type (see the Assert constants).
	Type string `yaml:"type"`

	// Group is the group name (used by group_units).
	Group string `yaml:"group,omitempty"`

	// Token is the token id (used by token_owner).
	Token string `yaml:"token,omitempty"`

	// Account is the account id (used by token_owner, tokens_owned, is_owner).
	Account string `yaml:"account,omitempty"`

	// Count is the expected number (used by group_units, tokens_owned,
	// transfer_count).
	Count int `yaml:"count,omitempty"`

	// Owner is the expected membership (used by is_owner).
	Owner bool `yaml:"owner,omitempty"`
}

// Assertion type constants.
const (
	AssertGroupUnits    = "group_units"
	AssertTokenOwner    = "token_owner"
	AssertTokensOwned   = "tokens_owned"
	AssertTransferCount = "transfer_count"
	AssertIsOwner       = "is_owner"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Configuration returns config.Default with the scenario's overrides
// applied.
func (s *Scenario) Configuration() (config.Config, error) {
	if len(s.Config) == 0 {
		return config.Default(), nil
	}
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return config.Config{}, fmt.Errorf("encode config overrides: %w", err)
	}
	return config.Parse(data)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := s.Configuration(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	for i, owner := range s.Owners {
		if _, err := account.Parse(owner); err != nil {
			return fmt.Errorf("owners[%d]: %w", i, err)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step. Argument shapes are checked when
// the step runs.
func validateStep(index int, st *Step) error {
	switch st.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpPayout:
	default:
		if !mutatingOps[st.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
		}
		if st.Caller == "" {
			return fmt.Errorf("steps[%d]: caller is required for %s", index, st.Op)
		}
	}

	if st.Caller != "" {
		if _, err := account.Parse(st.Caller); err != nil {
			return fmt.Errorf("steps[%d]: caller: %w", index, err)
		}
	}
	if st.Attached != "" {
		if _, err := balance.Parse(st.Attached); err != nil {
			return fmt.Errorf("steps[%d]: attached: %w", index, err)
		}
	}
	if st.Args == nil {
		return fmt.Errorf("steps[%d]: args is required (use empty map if no args)", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertGroupUnits:
		if a.Group == "" {
			return fmt.Errorf("assertions[%d]: group is required for group_units", index)
		}
	case AssertTokenOwner:
		if a.Token == "" || a.Account == "" {
			return fmt.Errorf("assertions[%d]: token and account are required for token_owner", index)
		}
	case AssertTokensOwned, AssertIsOwner:
		if a.Account == "" {
			return fmt.Errorf("assertions[%d]: account is required for %s", index, a.Type)
		}
	case AssertTransferCount:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Count < 0 {
		return fmt.Errorf("assertions[%d]: count must be non-negative", index)
	}
	return nil
}
