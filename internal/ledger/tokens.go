package ledger

import (
	"context"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/store"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

// MintManual creates a single token outside any group. The id must not
// contain the separator, and the metadata must declare at most one copy
// and no price.
func (l *Ledger) MintManual(ctx context.Context, call Call, id string, md token.Metadata, receiver account.ID) (token.JSONToken, Receipt, error) {
	return mutate(ctx, l, call, "mint_manual", func(ctx context.Context, tx *store.Tx) (token.JSONToken, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return token.JSONToken{}, err
		}
		manual, err := parseManual(id)
		if err != nil {
			return token.JSONToken{}, err
		}
		if err := manual.CheckWith(&md); err != nil {
			return token.JSONToken{}, err
		}

		rec := store.TokenRecord{
			ID:       manual.ID(),
			Token:    token.NewToken(receiver, nil),
			Metadata: md,
		}
		if err := tx.InsertToken(ctx, rec); err != nil {
			return token.JSONToken{}, err
		}

		l.logger.Info("manual token minted", "token", rec.ID, "receiver", receiver)
		return rec.JSON(), nil
	})
}

// parseManual normalizes id and classifies it. Ids that parse as group
// items, or not at all, fail the way a manual name with a separator does.
func parseManual(id string) (token.Manual, error) {
	ident, err := token.Parse(id)
	if err != nil && !fault.Is(err, fault.InvalidTokenID) {
		return "", err
	}
	if err != nil || ident.Kind != token.KindManual {
		return "", token.Manual(id).Check()
	}
	return ident.Manual, nil
}

// UpdateCollectible applies a partial metadata update to exactly one token
// or one group. Manual tokens are re-checked after the update; groups must
// still allow the units already created.
func (l *Ledger) UpdateCollectible(ctx context.Context, call Call, upd token.UpdateCollectibleData) (token.Metadata, Receipt, error) {
	return mutate(ctx, l, call, "update_collectible", func(ctx context.Context, tx *store.Tx) (token.Metadata, error) {
		if err := requireOwner(ctx, tx, call.Caller); err != nil {
			return token.Metadata{}, err
		}

		switch {
		case upd.TokenID != nil && upd.TokenGroupID == nil:
			rec, err := tx.Token(ctx, *upd.TokenID)
			if err != nil {
				return token.Metadata{}, err
			}
			md, err := upd.Apply(rec.Metadata)
			if err != nil {
				return token.Metadata{}, err
			}
			if rec.Group == "" {
				if err := token.Manual(rec.ID).CheckWith(&md); err != nil {
					return token.Metadata{}, err
				}
			}
			rec.Metadata = md
			if err := tx.UpdateToken(ctx, rec); err != nil {
				return token.Metadata{}, err
			}
			l.logger.Info("token metadata updated", "token", rec.ID)
			return md, nil

		case upd.TokenGroupID != nil && upd.TokenID == nil:
			offer, err := tx.Group(ctx, *upd.TokenGroupID)
			if err != nil {
				return token.Metadata{}, err
			}
			md, err := upd.Apply(offer.Metadata)
			if err != nil {
				return token.Metadata{}, err
			}
			offer.Metadata = md
			if err := offer.Validate(l.cfg.MaxPayoutBeneficiaries); err != nil {
				return token.Metadata{}, err
			}
			if err := tx.UpdateGroup(ctx, offer); err != nil {
				return token.Metadata{}, err
			}
			l.logger.Info("group metadata updated", "group", offer.GroupID)
			return md, nil

		default:
			return token.Metadata{}, fault.New(fault.InvalidTokenID,
				"an update must name exactly one of token_id or token_group_id")
		}
	})
}

// Token returns the view of a token.
func (l *Ledger) Token(ctx context.Context, id string) (token.JSONToken, error) {
	rec, err := l.store.Token(ctx, token.ID(id))
	if err != nil {
		return token.JSONToken{}, err
	}
	return rec.JSON(), nil
}

// TokensFor lists the tokens owned by owner, ordered by id.
func (l *Ledger) TokensFor(ctx context.Context, owner account.ID) ([]token.JSONToken, error) {
	recs, err := l.store.TokensByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]token.JSONToken, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.JSON())
	}
	return out, nil
}

// Payout splits amount between a token's royalty beneficiaries and its
// owner. maxBeneficiaries bounds the number of entries, owner included;
// 0 means the configured limit.
func (l *Ledger) Payout(ctx context.Context, id string, amount balance.U128, maxBeneficiaries int) (royalty.Payout, error) {
	if maxBeneficiaries <= 0 {
		maxBeneficiaries = l.cfg.MaxPayoutBeneficiaries
	}
	rec, err := l.store.Token(ctx, token.ID(id))
	if err != nil {
		return royalty.Payout{}, err
	}
	return rec.Token.Royalty.PayoutLimited(amount, rec.Token.OwnerID, maxBeneficiaries)
}

// CheckResalePrice fails with PRICE_OUT_OF_RANGE unless price lies within
// the configured resale bounds, inclusive.
func (l *Ledger) CheckResalePrice(price usn.Amount) error {
	lo, hi, err := l.cfg.ResalePriceBounds()
	if err != nil {
		return err
	}
	if price.Decimals() != lo.Decimals() {
		return fault.New(fault.DecimalsMismatch,
			"price has %d decimals, resale prices use %d", price.Decimals(), lo.Decimals())
	}
	if price.Cmp(lo) < 0 || price.Cmp(hi) > 0 {
		return fault.New(fault.PriceOutOfRange,
			"resale price %v is outside [%v, %v]", price.Float64(), lo.Float64(), hi.Float64()).
			With("min", lo.String()).
			With("max", hi.String())
	}
	return nil
}

// QuoteResale prices a listing of token id at sell, after checking the
// resale bounds. The original price comes from the token's extra.price.
func (l *Ledger) QuoteResale(ctx context.Context, id string, sell usn.Amount, fee royalty.Percentage) (token.TicketForSale, error) {
	if err := l.CheckResalePrice(sell); err != nil {
		return token.TicketForSale{}, err
	}
	rec, err := l.store.Token(ctx, token.ID(id))
	if err != nil {
		return token.TicketForSale{}, err
	}

	original, err := usn.NewWithDecimals(0, l.cfg.USNDecimals)
	if err != nil {
		return token.TicketForSale{}, err
	}
	if rec.Metadata.Extra != nil && rec.Metadata.Extra.Price != nil {
		original, err = usn.FromFixedPoint(*rec.Metadata.Extra.Price, l.cfg.USNDecimals)
		if err != nil {
			return token.TicketForSale{}, err
		}
	}
	return token.NewTicketForSale(rec.ID, rec.Token.OwnerID, rec.Group, original, sell, fee)
}

// Transfers lists every refund issued, in seq order.
func (l *Ledger) Transfers(ctx context.Context) ([]store.Transfer, error) {
	return l.store.Transfers(ctx)
}
