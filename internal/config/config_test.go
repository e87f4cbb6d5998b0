package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "nep171", cfg.NFTStandard)
	assert.Equal(t, 10, cfg.MaxPayoutBeneficiaries)
	assert.Equal(t, 1.0, cfg.MinUSNResalePrice)
	assert.Equal(t, 100000000.0, cfg.MaxUSNResalePrice)
	assert.Equal(t, uint8(18), cfg.USNDecimals)
	assert.Equal(t, "resale_price", cfg.Keys.ResalePrice)
	assert.Equal(t, "resales_enabled", cfg.Keys.ResalesEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestParse_OverridesAndDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
max_payout_beneficiaries: 5
storage_byte_cost: 340282366920938463463374607431768211455
keys:
  resale_price: price
`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxPayoutBeneficiaries)
	assert.Equal(t, balance.Max, cfg.StorageByteCost)
	assert.Equal(t, "price", cfg.Keys.ResalePrice)
	assert.Equal(t, "transfers_enabled", cfg.Keys.TransfersEnabled, "unset keys keep their defaults")
	assert.Equal(t, "nep171", cfg.NFTStandard)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "max_beneficiaries: 3\n"},
		{"inverted bounds", "min_usn_resale_price: 10\nmax_usn_resale_price: 1\n"},
		{"zero beneficiaries", "max_payout_beneficiaries: 0\n"},
		{"negative min", "min_usn_resale_price: -1\n"},
		{"too many decimals", "usn_decimals: 39\n"},
		{"bad byte cost", "storage_byte_cost: lots\n"},
		{"empty standard", "nft_standard: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collectibles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("usn_decimals: 6\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), cfg.USNDecimals)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResalePriceBounds(t *testing.T) {
	lo, hi, err := Default().ResalePriceBounds()
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", lo.ToFixedPoint().String())
	assert.Equal(t, 100000000.0, hi.Float64())

	// 1e26 is not representable as a float64; the fixed point carries the
	// nearest double, not the exact decimal.
	assert.Equal(t, "100000000000000004764729344", hi.ToFixedPoint().String())
	exact, err := usn.ParseFixed("100000000", 18)
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000000000", exact.String())
	assert.Equal(t, 1, hi.ToFixedPoint().Cmp(exact.Uint128))
}
