package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"buget/internal/core"
)

// BackupFileName is the suggested name of an exported backup.
const BackupFileName = "buget-backup.json"

// snapshot is the JSON document stored locally and exchanged as a backup.
type snapshot struct {
	Budgets       []string           `json:"budgets"`
	Categories    []string           `json:"categories"`
	Transactions  []core.Transaction `json:"transactions"`
	LastBackupISO core.Date          `json:"lastBackupISO"`
}

// rawSnapshot defers decoding of the log so its shape can be checked.
type rawSnapshot struct {
	Budgets       []string        `json:"budgets"`
	Categories    []string        `json:"categories"`
	Transactions  json.RawMessage `json:"transactions"`
	LastBackupISO json.RawMessage `json:"lastBackupISO"`
}

// EncodeState renders st as an indented JSON document.
func EncodeState(st State) ([]byte, error) {
	st = st.Clone()
	return json.MarshalIndent(snapshot{
		Budgets:       st.Budgets,
		Categories:    st.Categories,
		Transactions:  st.Transactions,
		LastBackupISO: st.LastBackup,
	}, "", "  ")
}

// DecodeState reads a locally persisted snapshot. It never fails: an empty or
// unparsable document yields DefaultState, and missing top-level fields are
// taken from DefaultState. Records that do not validate are skipped one by
// one so the rest of the ledger survives. The returned error lists what was
// dropped, for the caller to log.
func DecodeState(raw []byte) (State, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return DefaultState(), nil
	}
	return decode(raw, false)
}

// DecodeImport reads a user supplied backup file. Unlike DecodeState it
// rejects anything whose transactions are not a list of valid records.
func DecodeImport(raw []byte) (State, error) {
	return decode(raw, true)
}

func decode(raw []byte, strict bool) (State, error) {
	var rs rawSnapshot
	if err := json.Unmarshal(raw, &rs); err != nil {
		err = fmt.Errorf("%w: %w", core.ErrInvalidImportShape, err)
		if strict {
			return State{}, err
		}
		return DefaultState(), err
	}
	txRaw := bytes.TrimSpace(rs.Transactions)
	absent := len(txRaw) == 0 || bytes.Equal(txRaw, []byte("null"))
	isList := !absent && txRaw[0] == '['
	if strict && !isList {
		return State{}, fmt.Errorf("%w: transactions must be a list", core.ErrInvalidImportShape)
	}

	var dropped []error
	var lastBackup core.Date
	if len(rs.LastBackupISO) > 0 {
		if err := json.Unmarshal(rs.LastBackupISO, &lastBackup); err != nil {
			if strict {
				return State{}, fmt.Errorf("%w: lastBackupISO: %w", core.ErrInvalidImportShape, err)
			}
			dropped = append(dropped, fmt.Errorf("lastBackupISO: %w", err))
		}
	}

	def := DefaultState()
	st := State{
		Budgets:      rs.Budgets,
		Categories:   rs.Categories,
		Transactions: []core.Transaction{},
		LastBackup:   lastBackup,
	}
	if st.Budgets == nil {
		st.Budgets = def.Budgets
	}
	if st.Categories == nil {
		st.Categories = def.Categories
	}
	if absent {
		return st, droppedErr(dropped)
	}

	if strict {
		if err := json.Unmarshal(txRaw, &st.Transactions); err != nil {
			return State{}, fmt.Errorf("%w: %w", core.ErrInvalidImportShape, err)
		}
		return st, nil
	}

	var records []json.RawMessage
	if !isList || json.Unmarshal(txRaw, &records) != nil {
		dropped = append(dropped, errors.New("transactions is not a list"))
		return st, droppedErr(dropped)
	}
	for i, rec := range records {
		var tx core.Transaction
		if err := json.Unmarshal(rec, &tx); err != nil {
			dropped = append(dropped, fmt.Errorf("transaction %d: %w", i, err))
			continue
		}
		st.Transactions = append(st.Transactions, tx)
	}
	return st, droppedErr(dropped)
}

func droppedErr(dropped []error) error {
	if len(dropped) == 0 {
		return nil
	}
	return fmt.Errorf("%w: dropped %d unreadable fields: %w",
		core.ErrInvalidImportShape, len(dropped), errors.Join(dropped...))
}
