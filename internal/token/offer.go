package token

import (
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
)

// Offer describes a token group: the metadata and royalties every unit
// inherits, and how many units exist so far.
type Offer struct {
	GroupID      GroupName     `json:"token_group_id"`
	Metadata     Metadata      `json:"metadata"`
	Royalty      royalty.Table `json:"royalty"`
	UnitsCreated jsuint.Uint   `json:"units_created"`
}

// NewOffer assembles a validated offer with no units created.
func NewOffer(group string, md Metadata, roy royalty.Table, maxBeneficiaries int) (Offer, error) {
	name, err := ParseGroupName(group)
	if err != nil {
		return Offer{}, err
	}
	if roy == nil {
		roy = royalty.Table{}
	}
	o := Offer{GroupID: name, Metadata: md, Royalty: roy}
	if err := o.Validate(maxBeneficiaries); err != nil {
		return Offer{}, err
	}
	return o, nil
}

// Validate checks the whole aggregate: group name, royalty table, and
// that no more units exist than metadata.copies allows.
func (o Offer) Validate(maxBeneficiaries int) error {
	if _, err := ParseGroupName(string(o.GroupID)); err != nil {
		return err
	}
	if err := o.Royalty.Validate(maxBeneficiaries); err != nil {
		return err
	}
	if o.Metadata.Copies != nil && o.UnitsCreated.Get() > o.Metadata.Copies.Get() {
		return fault.New(fault.OutOfRange, "group %s has %s units created, more than %s copies",
			o.GroupID, o.UnitsCreated, o.Metadata.Copies)
	}
	return nil
}

// Mint advances UnitsCreated by n and returns the ids of the new units,
// numbered from UnitsCreated+1.
func (o *Offer) Mint(n uint16) (MintedInfo, error) {
	if n == 0 {
		return MintedInfo{}, fault.New(fault.OutOfRange, "mint amount must be positive")
	}
	start, err := o.UnitsCreated.Add(1)
	if err != nil {
		return MintedInfo{}, err
	}
	units, err := o.UnitsCreated.Add(uint64(n))
	if err != nil {
		return MintedInfo{}, err
	}
	if o.Metadata.Copies != nil && units.Get() > o.Metadata.Copies.Get() {
		return MintedInfo{}, fault.New(fault.OutOfRange,
			"minting %d units of %s would exceed %s copies (%s already created)",
			n, o.GroupID, o.Metadata.Copies, o.UnitsCreated).
			With("available", fmt.Sprint(o.Metadata.Copies.Get()-o.UnitsCreated.Get()))
	}

	ids := make([]ID, 0, n)
	for i := start.Get(); i <= units.Get(); i++ {
		ids = append(ids, NewGroupItem(o.GroupID, i).ID())
	}
	o.UnitsCreated = units
	return MintedInfo{StartingIndex: start, MintedAmount: n, TokenIDs: ids}, nil
}

// UnmarshalJSON rejects unknown fields.
func (o *Offer) UnmarshalJSON(data []byte) error {
	type plain Offer
	var p plain
	if err := decodeStrict(data, &p); err != nil {
		return fmt.Errorf("token offer: %w", err)
	}
	if p.Royalty == nil {
		p.Royalty = royalty.Table{}
	}
	*o = Offer(p)
	return nil
}

// MintedInfo reports the result of a group mint. For a group with 10
// units, minting 5 more yields StartingIndex 11 and MintedAmount 5.
type MintedInfo struct {
	StartingIndex jsuint.Uint `json:"starting_index"`
	MintedAmount  uint16      `json:"minted_amount"`
	TokenIDs      []ID        `json:"token_ids"`
}
