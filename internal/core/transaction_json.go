package core

import (
	"encoding/json"
	"fmt"
)

// transactionRecord is the flat backup-file representation of a Transaction.
type transactionRecord struct {
	ID         string `json:"id"`
	DateISO    Date   `json:"dateISO"`
	Type       string `json:"type"`
	AmountBani int64  `json:"amountBani"`
	Note       string `json:"note,omitempty"`
	ToBudget   string `json:"toBudget,omitempty"`
	FromBudget string `json:"fromBudget,omitempty"`
	Category   string `json:"category,omitempty"`
	Desc       string `json:"desc,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	to, from, cat, desc := t.Fields()
	return json.Marshal(transactionRecord{
		ID:         t.ID,
		DateISO:    t.Date,
		Type:       string(t.Kind()),
		AmountBani: t.Amount,
		Note:       t.Note,
		ToBudget:   to,
		FromBudget: from,
		Category:   cat,
		Desc:       desc,
	})
}

// UnmarshalJSON rebuilds the tagged payload from the flat record. Fields that
// do not belong to the record's type are ignored.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	var rec transactionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	kind, err := ParseKind(rec.Type)
	if err != nil {
		return err
	}
	payload, err := Draft{
		Kind:       kind,
		ToBudget:   rec.ToBudget,
		FromBudget: rec.FromBudget,
		Category:   rec.Category,
		Desc:       rec.Desc,
	}.Payload()
	if err != nil {
		return err
	}
	tx := Transaction{
		ID:      rec.ID,
		Date:    rec.DateISO,
		Amount:  rec.AmountBani,
		Note:    rec.Note,
		Payload: payload,
	}
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("transaction %q: %w", rec.ID, err)
	}
	*t = tx
	return nil
}

var (
	_ json.Marshaler   = Transaction{}
	_ json.Unmarshaler = (*Transaction)(nil)
)
