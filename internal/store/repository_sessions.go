package store

import "context"

func (s *Store) InsertCasinoSession(ctx context.Context, sess CasinoSession) error {
	if sess.ID == "" {
		sess.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO casino_sessions (id, area_id, game, stake_cc, start_at)
		 VALUES ($1, $2, $3, $4, COALESCE($5, now()))`,
		sess.ID, sess.AreaID, sess.Game, sess.StakeCC, nullableTime(sess.StartAt))
	return err
}

func (s *Store) ListCasinoSessions(ctx context.Context, game string, limit int) ([]CasinoSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, area_id, game, stake_cc, start_at
		 FROM casino_sessions
		 WHERE ($1 = '' OR game = $1)
		 ORDER BY start_at DESC
		 LIMIT $2`, game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CasinoSession
	for rows.Next() {
		var cs CasinoSession
		if err := rows.Scan(&cs.ID, &cs.AreaID, &cs.Game, &cs.StakeCC, &cs.StartAt); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}
