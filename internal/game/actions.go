package game

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// InvestmentType is the kind of deployment a player makes into a market.
type InvestmentType string

const (
	InvestInvest    InvestmentType = "invest"
	InvestDiversify InvestmentType = "diversify"
	InvestHold      InvestmentType = "hold"
)

// OffensiveType is the kind of operation launched against another player.
type OffensiveType string

const (
	OffensiveAttack     OffensiveType = "attack"
	OffensiveManipulate OffensiveType = "manipulate"
	OffensiveSpy        OffensiveType = "spy"
)

// DefensiveType is the kind of protective posture prepared for the week.
type DefensiveType string

const (
	DefensiveDefense   DefensiveType = "defense"
	DefensiveInsurance DefensiveType = "insurance"
	DefensiveCounter   DefensiveType = "counter"
)

// InvestmentAction commits soldiers to a market for the week.
type InvestmentAction struct {
	Type   InvestmentType `json:"type"`
	Amount int            `json:"amount"`
	Market MarketKey      `json:"market"`
}

// OffensiveAction targets another player. Market is only meaningful for
// manipulate operations.
type OffensiveAction struct {
	Type         OffensiveType `json:"type"`
	TargetPlayer string        `json:"targetPlayer"`
	TargetName   string        `json:"targetName"`
	Market       MarketKey     `json:"market,omitempty"`
}

// DefensiveAction prepares a protective posture for the week.
type DefensiveAction struct {
	Type   DefensiveType `json:"type"`
	Market MarketKey     `json:"market,omitempty"`
}

// ActionBundle is a player's decision record for one game week. A normalized
// bundle has at most one of Investment/Offensive non-nil (the validator nils
// the sibling), so invalid "both branches active" states are unrepresentable
// in what gets persisted. Nil pointers marshal to explicit JSON nulls, which
// is what the browser client expects for the unselected branch.
type ActionBundle struct {
	Investment *InvestmentAction `json:"investment"`
	Offensive  *OffensiveAction  `json:"offensive"`
	Defensive  *DefensiveAction  `json:"defensive"`
}

// Clone returns a deep copy; the validator normalizes into a copy so caller
// input is never mutated and remains intact for retry on failure.
func (b *ActionBundle) Clone() *ActionBundle {
	if b == nil {
		return nil
	}
	out := &ActionBundle{}
	if b.Investment != nil {
		inv := *b.Investment
		out.Investment = &inv
	}
	if b.Offensive != nil {
		off := *b.Offensive
		out.Offensive = &off
	}
	if b.Defensive != nil {
		def := *b.Defensive
		out.Defensive = &def
	}
	return out
}

// Empty reports whether the bundle carries neither an investment nor an
// offensive operation (a defensive posture alone is not a valid submission).
func (b *ActionBundle) Empty() bool {
	return b == nil || (b.Investment == nil && b.Offensive == nil)
}

// Value serializes the bundle to a JSON text column.
func (b ActionBundle) Value() (driver.Value, error) {
	out, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(out), nil
}

// Scan deserializes the bundle from a JSON text column.
func (b *ActionBundle) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*b = ActionBundle{}
		return nil
	case string:
		if v == "" {
			*b = ActionBundle{}
			return nil
		}
		return json.Unmarshal([]byte(v), b)
	case []byte:
		if len(v) == 0 {
			*b = ActionBundle{}
			return nil
		}
		return json.Unmarshal(v, b)
	}
	return errors.New("unsupported action bundle column type")
}

// Allocation maps markets to integer amounts. It backs both the per-player
// investment breakdown and the per-market return shifts on the game row.
type Allocation map[MarketKey]int

// Value serializes the allocation to a JSON text column.
func (a Allocation) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	out, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(out), nil
}

// Scan deserializes the allocation from a JSON text column.
func (a *Allocation) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Allocation{}
		return nil
	case string:
		if v == "" {
			*a = Allocation{}
			return nil
		}
		return json.Unmarshal([]byte(v), a)
	case []byte:
		if len(v) == 0 {
			*a = Allocation{}
			return nil
		}
		return json.Unmarshal(v, a)
	}
	return fmt.Errorf("unsupported allocation column type %T", src)
}
