package service

import (
	"github.com/HoseaCodes/soldiers-of-wealth/internal/game"
	"github.com/HoseaCodes/soldiers-of-wealth/internal/logging"
)

// HandleTimedOutGame applies deadline handling for a single game: every
// standing player who has not submitted is marked as holding position (no
// investment, no operation), then the week resolves as usual. Nobody is
// punished beyond a wasted week.
func HandleTimedOutGame(repo GameRepo, gg *game.Game, opts Options) error {
	if gg.Status != game.StatusInProgress || gg.Phase != game.PhasePlanning {
		return nil
	}

	changed := false
	for i := range gg.Players {
		p := &gg.Players[i]
		if p.Eliminated || p.HasSubmittedMoves {
			continue
		}
		logging.Info("deadline passed; player holds position", logging.Fields{
			"game_id": gg.ID, "player": p.PlayerName,
		})
		p.PendingMoves = game.ActionBundle{}
		p.HasSubmittedMoves = true
		_ = repo.AppendActionRecord(&game.ActionRecord{
			GameID:      gg.ID,
			Week:        gg.Week,
			PlayerEmail: p.PlayerEmail,
			PlayerName:  p.PlayerName,
			Bundle:      game.ActionBundle{},
		})
		changed = true
	}
	if changed {
		if err := repo.UpdateGame(gg); err != nil {
			return err
		}
	}

	_, err := ResolveWeekNow(repo, gg.ID, opts)
	return err
}
