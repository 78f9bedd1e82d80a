// Package command parses the operator's /adm slash command into a draft
// stock transaction.
package command

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prefix is the token every admin command starts with
const Prefix = "/adm"

// ErrNotCommand is returned for input that is not an /adm command
var ErrNotCommand = errors.New("not an /adm command")

// EntryType is the direction of a stock movement
type EntryType string

const (
	EntryIn  EntryType = "IN"
	EntryOut EntryType = "OUT"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Transaction is the draft described by an /adm command. Fields the operator
// left out, or gave an unusable value for, stay empty.
type Transaction struct {
	Qty        *float64  `json:"qty,omitempty" yaml:"qty,omitempty"`
	Region     string    `json:"region,omitempty" yaml:"region,omitempty"`
	Entry      EntryType `json:"type_entry,omitempty" yaml:"type_entry,omitempty"`
	SupplyCode string    `json:"supply_code,omitempty" yaml:"supply_code,omitempty"`
	Date       string    `json:"date,omitempty" yaml:"date,omitempty"`
}

// IsEmpty reports whether the command carried no usable field
func (t Transaction) IsEmpty() bool {
	return t.Qty == nil && t.Region == "" && t.Entry == "" && t.SupplyCode == "" && t.Date == ""
}

// String renders the transaction for a status line
func (t Transaction) String() string {
	if t.IsEmpty() {
		return "empty transaction"
	}
	var parts []string
	if t.Qty != nil {
		parts = append(parts, "qty="+strconv.FormatFloat(*t.Qty, 'f', -1, 64))
	}
	if t.Entry != "" {
		parts = append(parts, "type="+string(t.Entry))
	}
	if t.Region != "" {
		parts = append(parts, "region="+t.Region)
	}
	if t.SupplyCode != "" {
		parts = append(parts, "supply="+t.SupplyCode)
	}
	if t.Date != "" {
		parts = append(parts, "date="+t.Date)
	}
	return strings.Join(parts, " ")
}

// IsCommand reports whether input looks like an /adm command
func IsCommand(input string) bool {
	fields := strings.Fields(input)
	return len(fields) > 0 && strings.EqualFold(fields[0], Prefix)
}

// Parse reads an /adm command such as
//
//	/adm 120 /r GRU /te OUT /ts BTP /d 2025-01-10
//
// Flags are case-insensitive and may repeat; the last usable value wins.
func Parse(input string) (Transaction, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 || !strings.EqualFold(tokens[0], Prefix) {
		return Transaction{}, fmt.Errorf("%q: %w", strings.TrimSpace(input), ErrNotCommand)
	}

	var tx Transaction
	if len(tokens) > 1 && !strings.HasPrefix(tokens[1], "/") {
		if qty, ok := parseQty(tokens[1]); ok {
			tx.Qty = &qty
		}
	}

	for i := 1; i < len(tokens)-1; i++ {
		value := tokens[i+1]
		if strings.HasPrefix(value, "/") {
			continue
		}
		switch strings.ToLower(tokens[i]) {
		case "/r":
			tx.Region = strings.ToUpper(value)
		case "/te":
			switch e := EntryType(strings.ToUpper(value)); e {
			case EntryIn, EntryOut:
				tx.Entry = e
			}
		case "/ts":
			tx.SupplyCode = strings.ToUpper(value)
		case "/d", "/data":
			if validDate(value) {
				tx.Date = value
			}
		}
	}
	return tx, nil
}

func parseQty(s string) (float64, bool) {
	qty, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, false
	}
	return qty, true
}

func validDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
