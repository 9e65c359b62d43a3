package entity

// Connection is the transport handle a player's messages are delivered through.
type Connection interface {
	ID() string
	Send(data []byte) error
}

type Player struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Mark Mark       `json:"symbol,omitempty"`
	Conn Connection `json:"-"`
}

func (that *Player) Info() PlayerInfo {
	return PlayerInfo{
		Name:   that.Name,
		Symbol: that.Mark,
	}
}
