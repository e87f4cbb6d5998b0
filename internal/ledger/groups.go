package ledger

import (
	"context"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
)

// OfferGroup creates a token group. The caller pays for the stored offer.
// A name whose earlier offer was removed cannot be offered again while
// tokens minted from it remain; that fails with ALREADY_EXISTS.
func (l *Ledger) OfferGroup(ctx context.Context, call Call, group string, md token.Metadata, roy royalty.Table) (token.Offer, Receipt, error) {
	return mutate(ctx, l, call, "offer_group", func(ctx context.Context, tx *store.Tx) (token.Offer, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return token.Offer{}, err
		}
		offer, err := token.NewOffer(group, md, roy, l.cfg.MaxPayoutBeneficiaries)
		if err != nil {
			return token.Offer{}, err
		}
		minted, err := tx.CountGroupTokens(ctx, offer.GroupID)
		if err != nil {
			return token.Offer{}, err
		}
		if minted > 0 {
			return token.Offer{}, fault.New(fault.AlreadyExists,
				"group %s still has %d tokens from a removed offer", offer.GroupID, minted).
				With("group", string(offer.GroupID))
		}
		if err := tx.InsertGroup(ctx, offer); err != nil {
			return token.Offer{}, err
		}

		l.logger.Info("group offered",
			"group", offer.GroupID,
			"beneficiaries", len(offer.Royalty),
			"royalty_total", offer.Royalty.Total(),
		)
		return offer, nil
	})
}

// MintUnits mints n units of group to receiver. Units are numbered after
// the ones already created, and inherit the group's metadata and royalty.
func (l *Ledger) MintUnits(ctx context.Context, call Call, group string, n uint16, receiver account.ID) (token.MintedInfo, Receipt, error) {
	return mutate(ctx, l, call, "mint_units", func(ctx context.Context, tx *store.Tx) (token.MintedInfo, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return token.MintedInfo{}, err
		}
		name, err := token.ParseGroupName(group)
		if err != nil {
			return token.MintedInfo{}, err
		}
		offer, err := tx.Group(ctx, name)
		if err != nil {
			return token.MintedInfo{}, err
		}

		info, err := offer.Mint(n)
		if err != nil {
			return token.MintedInfo{}, err
		}
		if err := tx.UpdateGroup(ctx, offer); err != nil {
			return token.MintedInfo{}, err
		}
		for _, id := range info.TokenIDs {
			rec := store.TokenRecord{
				ID:       id,
				Group:    offer.GroupID,
				Token:    token.NewToken(receiver, offer.Royalty),
				Metadata: offer.Metadata,
			}
			if err := tx.InsertToken(ctx, rec); err != nil {
				return token.MintedInfo{}, err
			}
		}

		l.logger.Info("units minted",
			"group", offer.GroupID,
			"receiver", receiver,
			"starting_index", info.StartingIndex.Get(),
			"minted", info.MintedAmount,
		)
		return info, nil
	})
}

// RemoveGroup deletes a group offer. Tokens minted from it remain, and
// keep the name from being offered again; the freed bytes are credited
// back to the caller.
func (l *Ledger) RemoveGroup(ctx context.Context, call Call, group string) (Receipt, error) {
	_, receipt, err := mutate(ctx, l, call, "remove_group", func(ctx context.Context, tx *store.Tx) (struct{}, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return struct{}{}, err
		}
		name, err := token.ParseGroupName(group)
		if err != nil {
			return struct{}{}, err
		}
		if err := tx.DeleteGroup(ctx, name); err != nil {
			return struct{}{}, err
		}
		l.logger.Info("group removed", "group", name)
		return struct{}{}, nil
	})
	return receipt, err
}

// Group returns the offer of group.
func (l *Ledger) Group(ctx context.Context, group string) (token.Offer, error) {
	name, err := token.ParseGroupName(group)
	if err != nil {
		return token.Offer{}, err
	}
	return l.store.Group(ctx, name)
}

// GroupAt returns the i-th group in creation order, counting from 0.
func (l *Ledger) GroupAt(ctx context.Context, i int) (token.Offer, error) {
	return l.store.GroupAt(ctx, i)
}

// Groups lists group names in creation order.
func (l *Ledger) Groups(ctx context.Context) ([]token.GroupName, error) {
	return l.store.GroupNames(ctx)
}
