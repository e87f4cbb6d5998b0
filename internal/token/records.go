package token

import (
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

// Token is the per-token ownership record.
type Token struct {
	OwnerID account.ID `json:"owner_id"`

	// ApprovedAccountIDs maps approved accounts to their approval id (NEP-178).
	ApprovedAccountIDs map[account.ID]jsuint.Uint `json:"approved_account_ids"`

	// NextApprovalID is the next approval id to hand out.
	NextApprovalID jsuint.Uint `json:"next_approval_id"`

	// Royalty is inherited from the group, or empty for manual tokens (NEP-199).
	Royalty royalty.Table `json:"royalty"`
}

// NewToken returns an unapproved token owned by owner.
func NewToken(owner account.ID, roy royalty.Table) Token {
	if roy == nil {
		roy = royalty.Table{}
	}
	return Token{
		OwnerID:            owner,
		ApprovedAccountIDs: map[account.ID]jsuint.Uint{},
		Royalty:            roy,
	}
}

// ToJSON combines the token with its id and metadata into the view shape.
func (t Token) ToJSON(id ID, md Metadata) JSONToken {
	return JSONToken{TokenID: id, Metadata: md, Token: t}
}

// JSONToken is what view calls return. Token's fields are flattened.
type JSONToken struct {
	TokenID  ID       `json:"token_id"`
	Metadata Metadata `json:"metadata"`
	Token
}

// ResaleTicket is a token listed for resale at a USN price.
type ResaleTicket struct {
	TokenID      ID         `json:"token_id"`
	OwnerID      account.ID `json:"owner_id"`
	TokenGroupID GroupName  `json:"token_group_id"`
	USNPrice     usn.Amount `json:"usn_price"`
	Extra        *Extra     `json:"extra"`
}

// TicketForSale is a listing with its computed transfer amount.
type TicketForSale struct {
	TokenID      ID         `json:"token_id"`
	Owner        account.ID `json:"owner"`
	TokenGroupID GroupName  `json:"token_group_id"`

	// OriginalPrice and USNSellPrice are unscaled USN prices.
	OriginalPrice usn.Amount `json:"original_price"`
	USNSellPrice  usn.Amount `json:"usn_sell_price"`

	// USNTransferAmount is the sell price in fixed point.
	USNTransferAmount balance.U128 `json:"usn_transfer_amount"`

	// ServiceFee is out of 10000.
	ServiceFee royalty.Percentage `json:"service_fee"`
	ListedAt   *string            `json:"listed_at"`
}

// NewTicketForSale prices a listing: the transfer amount is the fixed
// point form of the sell price.
func NewTicketForSale(id ID, owner account.ID, group GroupName, original, sell usn.Amount, fee royalty.Percentage) (TicketForSale, error) {
	if err := fee.Check(); err != nil {
		return TicketForSale{}, err
	}
	return TicketForSale{
		TokenID:           id,
		Owner:             owner,
		TokenGroupID:      group,
		OriginalPrice:     original,
		USNSellPrice:      sell,
		USNTransferAmount: sell.ToFixedPoint(),
		ServiceFee:        fee,
	}, nil
}

// BuyTicketRequest asks to buy a listed token.
type BuyTicketRequest struct {
	TokenID ID `json:"token_id"`

	// PriceUSN is an unscaled decimal string, e.g. "12.5".
	PriceUSN string `json:"price_usn"`
}

// FixedPrice converts PriceUSN to fixed point without float rounding.
func (r BuyTicketRequest) FixedPrice(decimals uint8) (balance.U128, error) {
	return usn.ParseFixed(r.PriceUSN, decimals)
}

// TransferredTokenPayout reports the outcome of a transfer with payout.
type TransferredTokenPayout struct {
	TokenID            ID            `json:"token_id"`
	SuccessfulTransfer bool          `json:"successful_transfer"`
	RoyaltyPayout      royalty.Table `json:"royalty_payout"`
}

// UpdateCollectibleData carries a partial metadata update for a token or a group.
type UpdateCollectibleData struct {
	TokenID       *ID          `json:"token_id"`
	TokenGroupID  *GroupName   `json:"token_group_id"`
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Media         *string      `json:"media"`
	MediaHash     *string      `json:"media_hash"`
	Reference     *string      `json:"reference"`
	ReferenceHash *string      `json:"reference_hash"`
	Copies        *jsuint.Uint `json:"copies"`
	Extra         *Extra       `json:"extra"`
	ExpiresAt     *string      `json:"expires_at"`
	StartsAt      *string      `json:"starts_at"`
}

// Apply overlays the set fields of u onto md. Hash fields are base64 text.
func (u UpdateCollectibleData) Apply(md Metadata) (Metadata, error) {
	if u.Title != nil {
		md.Title = u.Title
	}
	if u.Description != nil {
		md.Description = u.Description
	}
	if u.Media != nil {
		md.Media = u.Media
	}
	if u.MediaHash != nil {
		h, err := decodeBase64(*u.MediaHash)
		if err != nil {
			return Metadata{}, err
		}
		md.MediaHash = h
	}
	if u.Reference != nil {
		md.Reference = u.Reference
	}
	if u.ReferenceHash != nil {
		h, err := decodeBase64(*u.ReferenceHash)
		if err != nil {
			return Metadata{}, err
		}
		md.ReferenceHash = h
	}
	if u.Copies != nil {
		md.Copies = u.Copies
	}
	if u.Extra != nil {
		md.Extra = u.Extra
	}
	if u.ExpiresAt != nil {
		md.ExpiresAt = u.ExpiresAt
	}
	if u.StartsAt != nil {
		md.StartsAt = u.StartsAt
	}
	return md, nil
}
