package store

import (
	"context"
	"fmt"
)

// RowOverhead is the fixed number of bytes charged for every stored row on
// top of its content.
const RowOverhead = 40

// StorageUsage returns the persistent footprint in bytes: the byte length
// of every stored column of groups, tokens and owners, plus RowOverhead per
// row.
func (c conn) StorageUsage(ctx context.Context) (uint64, error) {
	var n int64
	err := c.q.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(length(CAST(name AS BLOB)) + length(CAST(offer AS BLOB)) + ?), 0)
			 FROM groups) +
			(SELECT COALESCE(SUM(
				length(CAST(id AS BLOB)) +
				COALESCE(length(CAST(group_name AS BLOB)), 0) +
				length(CAST(owner_id AS BLOB)) +
				length(CAST(record AS BLOB)) +
				length(CAST(metadata AS BLOB)) + ?), 0)
			 FROM tokens) +
			(SELECT COALESCE(SUM(length(CAST(account_id AS BLOB)) + ?), 0)
			 FROM owners)
	`, RowOverhead, RowOverhead, RowOverhead).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage usage: %w", err)
	}
	return uint64(n), nil
}
