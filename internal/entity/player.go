package entity

const (
	PlayerX = "X"
	PlayerO = "O"
)

// Player is a room occupant: a connection handle with the mark assigned on join.
type Player struct {
	ID   string
	Mark string
	Conn Connection
}

// Connection is the outbound side of a client connection.
type Connection interface {
	Send(message any) error
	Close() error
}

func IsValidMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
