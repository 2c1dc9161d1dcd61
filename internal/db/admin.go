package db

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/vectorgfx/internal/httputil"
)

// AttachAdminRoutes mounts a tailsql console over the frame log and JSON
// views of recent frames and the current session under /debug/ on mux.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Frame log",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.HandleFunc("frames", "recent frames from the frame log (JSON)", func(w http.ResponseWriter, r *http.Request) {
		limit, ok := httputil.QueryInt(r, "limit", 100, 1, 10000)
		if !ok {
			httputil.BadRequest(w, "limit must be between 1 and 10000")
			return
		}
		frames, err := db.RecentFrames(limit)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to load frames: %v", err))
			return
		}
		httputil.WriteJSONOK(w, frames)
	})

	debug.HandleFunc("session", "summary of this render session (JSON)", func(w http.ResponseWriter, r *http.Request) {
		session := r.URL.Query().Get("id")
		if session == "" {
			session = db.session
		}
		summary, err := db.SessionSummary(session)
		if err != nil {
			if errors.Is(err, ErrNoFrames) {
				httputil.NotFound(w, err.Error())
				return
			}
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSONOK(w, summary)
	})

	return nil
}
