package wire

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for an algorithm change.
const (
	DomainTransfer = "collectibles/transfer/v1"
	DomainMetadata = "collectibles/metadata/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TransferID computes the content-addressed id of a refund transfer.
// The same call, receiver, amount and sequence always yield the same id.
func TransferID(callID, receiver, amount string, seq int64) (string, error) {
	obj := Object{
		"call_id":  String(callID),
		"receiver": String(receiver),
		"amount":   String(amount),
		"seq":      Int(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("TransferID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTransfer, canonical), nil
}

// MetadataHash computes the content hash of a metadata document given as
// any JSON-encodable record. The record is decoded back into a Value so
// the hash covers its canonical form, not Go field order.
func MetadataHash(doc []byte) (string, error) {
	v, err := Decode(doc)
	if err != nil {
		return "", fmt.Errorf("MetadataHash: %w", err)
	}
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("MetadataHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainMetadata, canonical), nil
}
