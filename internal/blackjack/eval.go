package blackjack

import "strconv"

// HandValue computes the blackjack point total of a hand. Number cards count
// at face value, J/Q/K count 10, and each ace counts 11 until the total would
// bust, at which point aces drop to 1 one at a time.
func HandValue(cards []Card) int {
	value := 0
	aces := 0
	for _, c := range cards {
		switch {
		case c.Rank >= Two && c.Rank <= Ten:
			value += int(c.Rank)
		case c.Rank == Jack || c.Rank == Queen || c.Rank == King:
			value += 10
		case c.Rank == Ace:
			value += 11
			aces++
		}
		for aces > 0 && value > 21 {
			value -= 10
			aces--
		}
	}
	return value
}

// RenderText produces the display total for a hand. A soft hand shows both
// totals ("17/7"); everything else shows a single number, and an empty hand
// shows nothing.
func RenderText(cards []Card) string {
	value := HandValue(cards)
	if value == 0 {
		return ""
	}
	nonAces := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Rank != Ace {
			nonAces = append(nonAces, c)
		}
	}
	numAces := len(cards) - len(nonAces)
	if numAces == 0 || value > 21 || HandValue(nonAces)+numAces == value {
		return strconv.Itoa(value)
	}
	return strconv.Itoa(value) + "/" + strconv.Itoa(value-10)
}
