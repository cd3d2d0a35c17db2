package engine

import (
	"errors"
	"fmt"

	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
)

// Minimum force requirements for offensive operations.
const (
	MinAttackSoldiers = 25
	MinSpySoldiers    = 10

	// UnknownCommander substitutes for a missing target display name.
	UnknownCommander = "Unknown Commander"
)

// Validation failures. All are local and recoverable: the caller renders the
// message and leaves the player's in-progress selections intact for retry.
var (
	ErrMissingAction        = errors.New("submit at least one investment or offensive operation")
	ErrMissingMarket        = errors.New("select a market for your investment")
	ErrMissingOperationType = errors.New("select an operation type")
	ErrMissingTarget        = errors.New("select a target commander")
	ErrInvalidStructure     = errors.New("action bundle is malformed")
)

// InvalidAmountError reports a non-positive investment amount.
type InvalidAmountError struct {
	Amount int
}

func (e *InvalidAmountError) Error() string { return "amount must be positive" }

// InsufficientResourcesError reports an investment exceeding the player's
// soldier pool. The message carries both numbers so the UI can show them.
type InsufficientResourcesError struct {
	Requested int
	Available int
}

func (e *InsufficientResourcesError) Error() string {
	return fmt.Sprintf("cannot commit %d soldiers: only %d available", e.Requested, e.Available)
}

// InsufficientForcesError reports an offensive operation below its minimum
// force requirement.
type InsufficientForcesError struct {
	Operation game.OffensiveType
	Required  int
	Available int
}

func (e *InsufficientForcesError) Error() string {
	switch e.Operation {
	case game.OffensiveSpy:
		return fmt.Sprintf("need at least %d soldiers to deploy a spy", e.Required)
	default:
		return fmt.Sprintf("need at least %d soldiers to launch an attack", e.Required)
	}
}

// ValidateAction checks a submitted bundle against the acting player's
// soldier pool and returns the canonical form: unselected branches are
// explicit nils, the investment type defaults to invest, and at most one of
// investment/offensive is active (the investment branch wins when both were
// sent; the sibling is nilled). The input is never mutated, so a failed
// validation leaves the player's selections intact, and validating the same
// input twice produces identical output. Nothing is debited here; resource
// movement happens only at week resolution.
func ValidateAction(bundle *game.ActionBundle, soldiers int) (*game.ActionBundle, error) {
	if bundle.Empty() {
		return nil, ErrMissingAction
	}

	cleaned := &game.ActionBundle{}
	if bundle.Defensive != nil {
		def, err := normalizeDefensive(bundle.Defensive)
		if err != nil {
			return nil, err
		}
		cleaned.Defensive = def
	}

	if inv := bundle.Investment; inv != nil {
		if inv.Amount <= 0 {
			return nil, &InvalidAmountError{Amount: inv.Amount}
		}
		if inv.Amount > soldiers {
			return nil, &InsufficientResourcesError{Requested: inv.Amount, Available: soldiers}
		}
		if inv.Market == "" {
			return nil, ErrMissingMarket
		}
		if !inv.Market.Valid() {
			return nil, ErrMissingMarket
		}
		typ := inv.Type
		if typ == "" {
			typ = game.InvestInvest
		}
		cleaned.Investment = &game.InvestmentAction{
			Type:   typ,
			Amount: inv.Amount,
			Market: inv.Market,
		}
		cleaned.Offensive = nil
		return cleaned, nil
	}

	if off := bundle.Offensive; off != nil {
		if off.Type == "" {
			return nil, ErrMissingOperationType
		}
		if off.TargetPlayer == "" {
			return nil, ErrMissingTarget
		}
		targetName := off.TargetName
		if targetName == "" {
			targetName = UnknownCommander
		}
		switch off.Type {
		case game.OffensiveAttack:
			if soldiers < MinAttackSoldiers {
				return nil, &InsufficientForcesError{Operation: off.Type, Required: MinAttackSoldiers, Available: soldiers}
			}
		case game.OffensiveSpy:
			if soldiers < MinSpySoldiers {
				return nil, &InsufficientForcesError{Operation: off.Type, Required: MinSpySoldiers, Available: soldiers}
			}
		case game.OffensiveManipulate:
			// no force floor
		default:
			return nil, ErrMissingOperationType
		}
		cleaned.Offensive = &game.OffensiveAction{
			Type:         off.Type,
			TargetPlayer: off.TargetPlayer,
			TargetName:   targetName,
			Market:       off.Market,
		}
		cleaned.Investment = nil
		return cleaned, nil
	}

	// Unreachable when Empty() passed above, kept as a structural backstop.
	return nil, ErrInvalidStructure
}

func normalizeDefensive(def *game.DefensiveAction) (*game.DefensiveAction, error) {
	switch def.Type {
	case game.DefensiveDefense, game.DefensiveInsurance, game.DefensiveCounter:
		return &game.DefensiveAction{Type: def.Type, Market: def.Market}, nil
	case "":
		return nil, ErrMissingOperationType
	}
	return nil, ErrInvalidStructure
}
