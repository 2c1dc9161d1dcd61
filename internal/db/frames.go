package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/vectorgfx/internal/render"
)

// ErrNoFrames is returned by SessionSummary for a session with no recorded
// frames.
var ErrNoFrames = errors.New("no frames recorded for session")

// FrameRecord is one row of the frame log.
type FrameRecord struct {
	ID        int64     `json:"id"`
	Session   string    `json:"session"`
	Lines     int       `json:"lines"`
	Points    int       `json:"points"`
	Transits  int       `json:"transits"`
	Bytes     int       `json:"bytes"`
	DrawMs    float64   `json:"draw_ms"`
	TxMs      float64   `json:"tx_ms"`
	TotalMs   float64   `json:"total_ms"`
	FPS       float64   `json:"fps"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordFrame appends stats to the log under the DB's session. A zero
// stats.At is stored as the current time.
func (db *DB) RecordFrame(stats render.Stats) error {
	at := stats.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO frames (
			session_id, lines, points, transits, bytes,
			draw_ms, tx_ms, total_ms, fps, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		db.session, stats.Lines, stats.Points, stats.Transits, stats.Bytes,
		stats.DrawMillis(), stats.TxMillis(), stats.TotalMillis(), stats.FPS, at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	return nil
}

// RecentFrames returns up to limit frames across all sessions, newest first.
func (db *DB) RecentFrames(limit int) ([]FrameRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT frame_id, session_id, lines, points, transits, bytes,
		       draw_ms, tx_ms, total_ms, fps, created_at_ns
		FROM frames
		ORDER BY frame_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var out []FrameRecord
	for rows.Next() {
		var (
			r  FrameRecord
			ns int64
		)
		if err := rows.Scan(&r.ID, &r.Session, &r.Lines, &r.Points, &r.Transits, &r.Bytes,
			&r.DrawMs, &r.TxMs, &r.TotalMs, &r.FPS, &ns); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		r.CreatedAt = time.Unix(0, ns).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// SessionSummary aggregates the frames of one session.
type SessionSummary struct {
	Session    string    `json:"session"`
	Tool       string    `json:"tool,omitempty"`
	Sink       string    `json:"sink,omitempty"`
	Frames     int       `json:"frames"`
	TotalBytes int64     `json:"total_bytes"`
	AvgLines   float64   `json:"avg_lines"`
	AvgTotalMs float64   `json:"avg_total_ms"`
	MaxTotalMs float64   `json:"max_total_ms"`
	AvgFPS     float64   `json:"avg_fps"`
	First      time.Time `json:"first"`
	Last       time.Time `json:"last"`
}

// SessionSummary returns aggregate statistics for session. Frames whose FPS
// was not measurable (-1) are left out of AvgFPS.
func (db *DB) SessionSummary(session string) (SessionSummary, error) {
	s := SessionSummary{Session: session}
	var (
		avgFPS      sql.NullFloat64
		first, last sql.NullInt64
		avgLines    sql.NullFloat64
		avgTotal    sql.NullFloat64
		maxTotal    sql.NullFloat64
		totalBytes  sql.NullInt64
	)
	err := db.QueryRow(`
		SELECT COUNT(*), SUM(bytes), AVG(lines), AVG(total_ms), MAX(total_ms),
		       AVG(CASE WHEN fps >= 0 THEN fps END),
		       MIN(created_at_ns), MAX(created_at_ns)
		FROM frames
		WHERE session_id = ?`, session).Scan(
		&s.Frames, &totalBytes, &avgLines, &avgTotal, &maxTotal, &avgFPS, &first, &last)
	if err != nil {
		return s, fmt.Errorf("summarise session %s: %w", session, err)
	}
	if s.Frames == 0 {
		return s, ErrNoFrames
	}

	s.TotalBytes = totalBytes.Int64
	s.AvgLines = avgLines.Float64
	s.AvgTotalMs = avgTotal.Float64
	s.MaxTotalMs = maxTotal.Float64
	s.AvgFPS = avgFPS.Float64
	s.First = time.Unix(0, first.Int64).UTC()
	s.Last = time.Unix(0, last.Int64).UTC()

	err = db.QueryRow(`SELECT tool, sink FROM sessions WHERE session_id = ?`, session).Scan(&s.Tool, &s.Sink)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("load session %s: %w", session, err)
	}
	return s, nil
}
