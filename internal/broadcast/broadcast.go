package broadcast

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type Broadcaster struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger: logger.With("component", "broadcaster"),
	}
}

// Broadcast - encodes the message once and delivers it to every player's connection.
// A failed delivery is logged and does not stop delivery to the others.
// It returns the number of connections the message was handed to.
func (that *Broadcaster) Broadcast(roomID string, players []*entity.Player, message any) (int, error) {
	log := that.logger.With("method", "Broadcast", "roomID", roomID)

	data, err := json.Marshal(message)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	delivered := 0

	for _, player := range players {
		if player.Conn == nil {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err = player.Conn.Send(data); err != nil {
			log.Error("failed to send message", "playerID", player.ID, "name", player.Name, "error", err)
			continue
		}

		delivered++
	}

	return delivered, nil
}
