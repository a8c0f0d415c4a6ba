package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/ManishHQ/shoq-ai-sub000/internal/domain/error"
)

// accountIDPattern matches the shard.realm.number account id form, e.g. "0.0.12345"
var accountIDPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidateAccountID checks an external account id against the shard.realm.number pattern
func ValidateAccountID(accountID string) error {
	if !accountIDPattern.MatchString(accountID) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidAccountID, accountID)
	}
	return nil
}

// TransactionID is a parsed external transaction id. Two spellings appear in
// the wild: "0.0.555@1000.1" (payer@seconds.nanos, the SDK form) and
// "0.0.555-1000-1" (the indexer's canonical form). Both parse to the same
// TransactionID and both queries normalize to Canonical().
type TransactionID struct {
	AccountID string
	Seconds   int64
	Nanos     int64
}

// ParseTransactionID parses either accepted spelling of an external transaction id
func ParseTransactionID(raw string) (TransactionID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TransactionID{}, errs.ErrInvalidTransactionID
	}

	var accountPart, timePart string
	if at := strings.Index(raw, "@"); at >= 0 {
		// SDK spelling: account@seconds.nanos
		accountPart = raw[:at]
		timePart = raw[at+1:]
	} else {
		// Canonical spelling: account-seconds-nanos; the account itself
		// contains dots, so split on the first dash after it.
		dash := strings.Index(raw, "-")
		if dash < 0 {
			return TransactionID{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, raw)
		}
		accountPart = raw[:dash]
		timePart = raw[dash+1:]
	}

	if err := ValidateAccountID(accountPart); err != nil {
		return TransactionID{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, raw)
	}

	var secondsPart, nanosPart string
	switch {
	case strings.Contains(timePart, "."):
		parts := strings.SplitN(timePart, ".", 2)
		secondsPart, nanosPart = parts[0], parts[1]
	case strings.Contains(timePart, "-"):
		parts := strings.SplitN(timePart, "-", 2)
		secondsPart, nanosPart = parts[0], parts[1]
	default:
		return TransactionID{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, raw)
	}

	seconds, err := strconv.ParseInt(secondsPart, 10, 64)
	if err != nil || seconds < 0 {
		return TransactionID{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, raw)
	}
	nanos, err := strconv.ParseInt(nanosPart, 10, 64)
	if err != nil || nanos < 0 || nanos > 999_999_999 {
		return TransactionID{}, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, raw)
	}

	return TransactionID{
		AccountID: accountPart,
		Seconds:   seconds,
		Nanos:     nanos,
	}, nil
}

// Canonical returns the indexer's canonical query form, e.g. "0.0.555-1000-1"
func (t TransactionID) Canonical() string {
	return fmt.Sprintf("%s-%d-%d", t.AccountID, t.Seconds, t.Nanos)
}

// String returns the SDK spelling, e.g. "0.0.555@1000.1"
func (t TransactionID) String() string {
	return fmt.Sprintf("%s@%d.%d", t.AccountID, t.Seconds, t.Nanos)
}
