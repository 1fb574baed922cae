package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodePostingToken creates a base64 encoded cursor from a posting's
// transaction date and per-account sequence number. The pair matches the
// ledger's canonical ordering, so pages never skip or repeat entries.
func EncodePostingToken(transactionDate time.Time, seq int64) string {
	tokenStr := fmt.Sprintf("%s|%d", transactionDate.Format(timeFormat), seq)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodePostingToken parses a cursor back into transaction date and sequence.
func DecodePostingToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	transactionDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (seq parse): %w", err)
	}

	return transactionDate, seq, nil
}
