// Package ledger is the composition point of the collectibles core: it
// persists groups, tokens and owners in a store and charges every mutating
// call for the storage it consumes.
//
// Each mutating call:
//   - gets a call id from the CallIDGenerator
//   - runs inside one store transaction
//   - is wrapped by refund.Deposit over a host whose storage usage is the
//     transaction's footprint
//   - commits only if the operation and the deposit check both succeed
//
// A call that fails for any reason, including INSUFFICIENT_DEPOSIT, is
// rolled back and leaves no groups, tokens or transfers behind.
//
// Administrative calls (offering, minting, removing groups, managing
// owners) require the caller to be in the owner set once it is non-empty.
package ledger
