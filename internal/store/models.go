package store

import "time"

type Player struct {
	ID        string
	BalanceCC int64
	UpdatedAt time.Time
}

type LedgerEntry struct {
	ID        string
	PlayerID  string
	Type      string
	AmountCC  int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}

type CasinoSession struct {
	ID      string
	AreaID  string
	Game    string
	StakeCC int64
	StartAt time.Time
}
