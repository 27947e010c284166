package entity

// Outbound message types.
const (
	TypeInit  = "init"
	TypeError = "error"
	TypeMove  = "move"
	TypeReset = "reset"
	TypeChat  = "chat"
	TypeInfo  = "info"
)

const (
	MessageRoomFull             = "Room is full"
	MessageOpponentDisconnected = "Opponent disconnected"
)

type InitMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MoveMessage is broadcast after every applied move. Faded, Removed and WinCombo encode as null when unset.
type MoveMessage struct {
	Type     string `json:"type"`
	Index    int    `json:"index"`
	Player   string `json:"player"`
	Faded    *Move  `json:"faded"`
	Removed  *Move  `json:"removed"`
	Win      bool   `json:"win"`
	WinCombo []int  `json:"winCombo"`
	Shots    Tally  `json:"shots"`
	Score    Tally  `json:"score"`
}

type ResetMessage struct {
	Type  string `json:"type"`
	Score Tally  `json:"score"`
}

type ChatMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Player  string `json:"player"`
}

func NewInitMessage(mark string) InitMessage {
	return InitMessage{Type: TypeInit, PlayerID: mark}
}

func NewErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Type: TypeError, Message: message}
}

func NewInfoMessage(message string) InfoMessage {
	return InfoMessage{Type: TypeInfo, Message: message}
}

func NewMoveMessage(result *TurnResult, match *Match) MoveMessage {
	return MoveMessage{
		Type:     TypeMove,
		Index:    result.Move.Index,
		Player:   result.Move.Player,
		Faded:    result.Faded,
		Removed:  result.Removed,
		Win:      result.Winner != "" && result.Winner == result.Move.Player,
		WinCombo: result.WinCombo,
		Shots:    match.Shots,
		Score:    match.Score,
	}
}

func NewResetMessage(score Tally) ResetMessage {
	return ResetMessage{Type: TypeReset, Score: score}
}

func NewChatMessage(message, mark string) ChatMessage {
	return ChatMessage{Type: TypeChat, Message: message, Player: mark}
}
