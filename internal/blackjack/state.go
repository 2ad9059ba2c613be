package blackjack

type Status string

const (
	StatusWaitingForPlayers Status = "WAITING_FOR_PLAYERS"
	StatusWaitingToStart    Status = "WAITING_TO_START"
	StatusInProgress        Status = "IN_PROGRESS"
	StatusOver              Status = "OVER"
)

type Outcome string

const (
	// OutcomeNone marks a hand that has not been settled, or a push.
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
	OutcomeBust Outcome = "Bust"
)

// Hand is one wagered set of cards a seat is playing.
type Hand struct {
	Cards   []Card
	Wager   int64
	Text    string
	Outcome Outcome
}

// Seat is a table slot occupied by one player. A seat holds one hand, or two
// after a split. A seat is active iff CurrentHand < len(Hands).
type Seat struct {
	Player      string
	Hands       []*Hand
	CurrentHand int
	Active      bool
	Photo       string
}

type DealerHand struct {
	Cards []Card
	Text  string
	Bust  bool
}

// Score is one player's net currency change for the round just settled.
type Score struct {
	Player      string `json:"player"`
	NetCurrency int64  `json:"net_currency"`
}

// TableState is the root aggregate for one table. Seats are ordered by
// reverse join order: the most recent joiner sits at index 0. CurrentPlayer
// of -1 means it is the dealer's turn.
type TableState struct {
	Status        Status
	Hands         []*Seat
	CurrentPlayer int
	DealerHand    DealerHand
	Stake         int64
	WantsToLeave  []string
	Results       []Score
}

func (s *TableState) seatOf(player string) *Seat {
	for _, seat := range s.Hands {
		if seat.Player == player {
			return seat
		}
	}
	return nil
}

type HandView struct {
	Cards   []Card  `json:"cards"`
	Wager   int64   `json:"wager"`
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome,omitempty"`
}

type SeatView struct {
	Player      string     `json:"player"`
	Hands       []HandView `json:"hands"`
	CurrentHand int        `json:"current_hand"`
	Active      bool       `json:"active"`
	Photo       string     `json:"photo,omitempty"`
}

type DealerView struct {
	Cards []Card `json:"cards"`
	Text  string `json:"text"`
	Bust  bool   `json:"bust"`
}

// Snapshot is the serializable table view pushed to observers. It mirrors
// TableState minus the deck, copies every slice so observers never share
// memory with the live state, and blanks the suit and rank of face-down
// cards so the dealer's hole card cannot be read off the wire.
type Snapshot struct {
	GameID        string     `json:"game_id"`
	Status        Status     `json:"status"`
	Hands         []SeatView `json:"hands"`
	CurrentPlayer int        `json:"current_player"`
	DealerHand    DealerView `json:"dealer_hand"`
	Stake         int64      `json:"stake"`
	WantsToLeave  []string   `json:"wants_to_leave"`
	Results       []Score    `json:"results"`
}

func viewCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, card := range cards {
		if !card.FaceUp {
			card.Suit, card.Rank = "", 0
		}
		out[i] = card
	}
	return out
}

func (s *TableState) snapshot(gameID string) Snapshot {
	seats := make([]SeatView, 0, len(s.Hands))
	for _, seat := range s.Hands {
		hands := make([]HandView, 0, len(seat.Hands))
		for _, h := range seat.Hands {
			hands = append(hands, HandView{
				Cards:   viewCards(h.Cards),
				Wager:   h.Wager,
				Text:    h.Text,
				Outcome: h.Outcome,
			})
		}
		seats = append(seats, SeatView{
			Player:      seat.Player,
			Hands:       hands,
			CurrentHand: seat.CurrentHand,
			Active:      seat.Active,
			Photo:       seat.Photo,
		})
	}
	return Snapshot{
		GameID:        gameID,
		Status:        s.Status,
		Hands:         seats,
		CurrentPlayer: s.CurrentPlayer,
		DealerHand: DealerView{
			Cards: viewCards(s.DealerHand.Cards),
			Text:  s.DealerHand.Text,
			Bust:  s.DealerHand.Bust,
		},
		Stake:        s.Stake,
		WantsToLeave: append([]string(nil), s.WantsToLeave...),
		Results:      append([]Score(nil), s.Results...),
	}
}
