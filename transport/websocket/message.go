package websocket

// Inbound message types.
const (
	typeJoin  = "join"
	typeMove  = "move"
	typeReset = "reset"
	typeChat  = "chat"
)

// Message is an inbound client frame. Which fields matter depends on Type.
type Message struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Player  string `json:"player,omitempty"`
	Message string `json:"message,omitempty"`
}
