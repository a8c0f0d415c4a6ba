package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

func TestParseTransactionID(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      TransactionID
		wantError bool
	}{
		{
			name: "SDK spelling",
			raw:  "0.0.555@1000.1",
			want: TransactionID{AccountID: "0.0.555", Seconds: 1000, Nanos: 1},
		},
		{
			name: "canonical spelling",
			raw:  "0.0.555-1000-1",
			want: TransactionID{AccountID: "0.0.555", Seconds: 1000, Nanos: 1},
		},
		{
			name: "large nanos",
			raw:  "0.0.4668518@1755100000.999999999",
			want: TransactionID{AccountID: "0.0.4668518", Seconds: 1755100000, Nanos: 999999999},
		},
		{
			name: "surrounding whitespace",
			raw:  "  0.0.555@1000.1  ",
			want: TransactionID{AccountID: "0.0.555", Seconds: 1000, Nanos: 1},
		},
		{
			name:      "empty",
			raw:       "",
			wantError: true,
		},
		{
			name:      "missing time part",
			raw:       "0.0.555",
			wantError: true,
		},
		{
			name:      "bad account id",
			raw:       "555@1000.1",
			wantError: true,
		},
		{
			name:      "negative seconds",
			raw:       "0.0.555@-1000.1",
			wantError: true,
		},
		{
			name:      "nanos out of range",
			raw:       "0.0.555@1000.1000000000",
			wantError: true,
		},
		{
			name:      "garbage",
			raw:       "not-a-transaction",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionID(tt.raw)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransactionID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionIDFormats(t *testing.T) {
	id := TransactionID{AccountID: "0.0.555", Seconds: 1000, Nanos: 1}

	assert.Equal(t, "0.0.555-1000-1", id.Canonical())
	assert.Equal(t, "0.0.555@1000.1", id.String())

	t.Run("both spellings normalize to the same canonical form", func(t *testing.T) {
		fromSDK, err := ParseTransactionID("0.0.555@1000.1")
		require.NoError(t, err)
		fromCanonical, err := ParseTransactionID("0.0.555-1000-1")
		require.NoError(t, err)
		assert.Equal(t, fromSDK.Canonical(), fromCanonical.Canonical())
	})
}

func TestValidateAccountID(t *testing.T) {
	assert.NoError(t, ValidateAccountID("0.0.12345"))
	assert.NoError(t, ValidateAccountID("1.2.3"))

	for _, bad := range []string{"", "0.0", "abc", "0.0.12a", "0-0-12345"} {
		assert.ErrorIs(t, ValidateAccountID(bad), errs.ErrInvalidAccountID, "account id %q", bad)
	}
}
