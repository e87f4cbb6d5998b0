// Package config holds the immutable settings the accounting core is
// started with: contract standard names, resale price bounds, storage
// pricing, and the keys of well-known settings.
//
// A Config is built once at startup (Default or Load) and passed down by
// value; nothing reads settings from package state.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

const (
	NFTStandard            = "nep171"
	NFTMetadataSpec        = "nft-1.0.0"
	MaxPayoutBeneficiaries = 10
	MinUSNResalePrice      = 1.0
	MaxUSNResalePrice      = 100_000_000.0

	// DefaultStorageByteCost is 10^19 yoctoNEAR (0.00001 NEAR) per byte.
	DefaultStorageByteCost = "10000000000000000000"

	// DefaultIcon is the contract icon as a data URL.
	DefaultIcon = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 32 32'%3E%3Ccircle cx='16' cy='16' r='16' fill='%23000'/%3E%3Cpath d='M10 22V10l12 12V10' stroke='%23fff' stroke-width='2' fill='none'/%3E%3C/svg%3E"
)

// Keys names the well-known settings stored alongside contract state.
type Keys struct {
	ResalePrice      string `yaml:"resale_price"`
	MaxResalePrice   string `yaml:"max_resale_price"`
	TransfersEnabled string `yaml:"transfers_enabled"`
	ResalesEnabled   string `yaml:"resales_enabled"`
}

// Config is the startup configuration.
type Config struct {
	NFTStandard            string       `yaml:"nft_standard"`
	NFTMetadataSpec        string       `yaml:"nft_metadata_spec"`
	MaxPayoutBeneficiaries int          `yaml:"max_payout_beneficiaries"`
	MinUSNResalePrice      float64      `yaml:"min_usn_resale_price"`
	MaxUSNResalePrice      float64      `yaml:"max_usn_resale_price"`
	USNDecimals            uint8        `yaml:"usn_decimals"`
	StorageByteCost        balance.U128 `yaml:"storage_byte_cost"`
	Icon                   string       `yaml:"icon"`
	Keys                   Keys         `yaml:"keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		NFTStandard:            NFTStandard,
		NFTMetadataSpec:        NFTMetadataSpec,
		MaxPayoutBeneficiaries: MaxPayoutBeneficiaries,
		MinUSNResalePrice:      MinUSNResalePrice,
		MaxUSNResalePrice:      MaxUSNResalePrice,
		USNDecimals:            usn.DefaultDecimals,
		StorageByteCost:        balance.MustParse(DefaultStorageByteCost),
		Icon:                   DefaultIcon,
		Keys: Keys{
			ResalePrice:      "resale_price",
			MaxResalePrice:   "max_resale_price",
			TransfersEnabled: "transfers_enabled",
			ResalesEnabled:   "resales_enabled",
		},
	}
}

// Load reads a YAML configuration file. Omitted fields keep their
// defaults; unknown fields are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if c.MaxPayoutBeneficiaries < 1 {
		return fmt.Errorf("max_payout_beneficiaries must be at least 1, got %d", c.MaxPayoutBeneficiaries)
	}
	if c.MinUSNResalePrice < 0 {
		return fmt.Errorf("min_usn_resale_price must not be negative, got %v", c.MinUSNResalePrice)
	}
	if c.MinUSNResalePrice > c.MaxUSNResalePrice {
		return fmt.Errorf("min_usn_resale_price %v exceeds max_usn_resale_price %v", c.MinUSNResalePrice, c.MaxUSNResalePrice)
	}
	if c.USNDecimals > usn.MaxDecimals {
		return fmt.Errorf("usn_decimals must be at most %d, got %d", usn.MaxDecimals, c.USNDecimals)
	}
	if c.NFTStandard == "" {
		return fmt.Errorf("nft_standard is required")
	}
	return nil
}

// ResalePriceBounds returns the configured bounds as amounts at the USN
// precision.
func (c Config) ResalePriceBounds() (lo, hi usn.Amount, err error) {
	lo, err = usn.NewWithDecimals(c.MinUSNResalePrice, c.USNDecimals)
	if err != nil {
		return usn.Amount{}, usn.Amount{}, fmt.Errorf("min resale price: %w", err)
	}
	hi, err = usn.NewWithDecimals(c.MaxUSNResalePrice, c.USNDecimals)
	if err != nil {
		return usn.Amount{}, usn.Amount{}, fmt.Errorf("max resale price: %w", err)
	}
	return lo, hi, nil
}
