package pagination_test

import (
	"testing"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingTokenRoundTrip(t *testing.T) {
	txnDate := time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC)
	token := pagination.EncodePostingToken(txnDate, 42)

	gotDate, gotSeq, err := pagination.DecodePostingToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(txnDate))
	assert.Equal(t, int64(42), gotSeq)
}

func TestDecodePostingToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodePostingToken("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = pagination.DecodePostingToken("aGVsbG8=")
	assert.Error(t, err)
}
