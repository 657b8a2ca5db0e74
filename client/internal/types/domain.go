package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Document is a decoded API response whose shape is owned by Monzo.
type Document map[string]any

// Decode re-encodes the document into v, typically one of the typed models below.
func (d Document) Decode(v any) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ------------------------------
// Typed models
// ------------------------------

// WhoamiInfo is the /ping/whoami payload.
type WhoamiInfo struct {
	Authenticated bool   `json:"authenticated"`
	ClientID      string `json:"client_id"`
	UserID        string `json:"user_id"`
}

// Owner is an account holder.
type Owner struct {
	UserID             string `json:"user_id"`
	PreferredName      string `json:"preferred_name"`
	PreferredFirstName string `json:"preferred_first_name"`
}

// Account is a current or joint account.
type Account struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Currency    string    `json:"currency"`
	Closed      bool      `json:"closed"`
	Created     time.Time `json:"created"`
	Owners      []Owner   `json:"owners,omitempty"`
}

// Balance is the /balance payload. Amounts are in minor units of Currency.
type Balance struct {
	Balance      int64  `json:"balance"`
	TotalBalance int64  `json:"total_balance"`
	Currency     string `json:"currency"`
	SpendToday   int64  `json:"spend_today"`
}

// Major returns the balance in major units (e.g. pounds rather than pennies).
func (b Balance) Major() decimal.Decimal { return MinorToMajor(b.Balance, b.Currency) }

// TotalMajor returns the total balance, pots included, in major units.
func (b Balance) TotalMajor() decimal.Decimal { return MinorToMajor(b.TotalBalance, b.Currency) }

// Merchant is the expanded merchant attached to a transaction.
type Merchant struct {
	ID       string `json:"id"`
	GroupID  string `json:"group_id,omitempty"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
	Category string `json:"category,omitempty"`
}

// UnmarshalJSON accepts both the expanded object and the bare merchant id
// returned when expansion did not happen.
func (m *Merchant) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*m = Merchant{ID: id}
		return nil
	}
	type plain Merchant
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*m = Merchant(p)
	return nil
}

// Transaction is a single card payment, transfer or top-up.
type Transaction struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Created       time.Time         `json:"created"`
	Settled       string            `json:"settled,omitempty"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Notes         string            `json:"notes,omitempty"`
	IsLoad        bool              `json:"is_load"`
	DeclineReason string            `json:"decline_reason,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Merchant      *Merchant         `json:"merchant,omitempty"`
}

// Major returns the signed amount in major units.
func (t Transaction) Major() decimal.Decimal { return MinorToMajor(t.Amount, t.Currency) }

// Pot is a savings container attached to a current account.
type Pot struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Style    string    `json:"style,omitempty"`
	Balance  int64     `json:"balance"`
	Currency string    `json:"currency"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Deleted  bool      `json:"deleted"`
}

// Major returns the pot balance in major units.
func (p Pot) Major() decimal.Decimal { return MinorToMajor(p.Balance, p.Currency) }

// zeroDecimalCurrencies lists ISO 4217 codes without a minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true, "KRW": true, "ISK": true, "VND": true, "CLP": true, "UGX": true,
}

// MinorToMajor converts an amount in minor units to major units for the currency.
func MinorToMajor(amount int64, currency string) decimal.Decimal {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return decimal.New(amount, 0)
	}
	return decimal.New(amount, -2)
}

// FormatAmount renders a minor-unit amount as "GBP 12.34".
func FormatAmount(amount int64, currency string) string {
	d := MinorToMajor(amount, currency)
	places := int32(2)
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		places = 0
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(currency), d.StringFixed(places))
}
