package render

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"tailscale.com/tsweb"

	"github.com/banshee-data/vectorgfx/internal/httputil"
)

// AttachAdminRoutes registers the renderer's debug pages under /debug/ on
// mux. tsweb restricts them to loopback and tailnet clients.
func (r *Renderer) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.HandleFunc("frame", "last frame statistics (JSON)", func(w http.ResponseWriter, req *http.Request) {
		stats, _, ok := r.Last()
		resp := struct {
			Frames int     `json:"frames"`
			Last   *Stats  `json:"last,omitempty"`
			Status string  `json:"status,omitempty"`
			Error  *string `json:"error,omitempty"`
		}{Frames: r.Frames()}
		if ok {
			resp.Last = &stats
			resp.Status = stats.String()
		}
		if err := r.LastError(); err != nil {
			msg := err.Error()
			resp.Error = &msg
		}
		httputil.WriteJSONOK(w, resp)
	})

	debug.HandleFunc("frame-hex", "hex dump of the last frame sent", func(w http.ResponseWriter, req *http.Request) {
		_, data, ok := r.Last()
		if !ok {
			httputil.NotFound(w, "no frame sent yet")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(hex.Dump(data)))
	})

	debug.HandleFunc("frame-timings", "chart of recent frame timings", func(w http.ResponseWriter, req *http.Request) {
		history := r.History()
		n, ok := httputil.QueryInt(req, "n", len(history), 1, r.maxHist)
		if !ok {
			httputil.BadRequest(w, fmt.Sprintf("n must be between 1 and %d", r.maxHist))
			return
		}
		if n < len(history) {
			history = history[len(history)-n:]
		}

		page, err := renderTimings(history)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}

func renderTimings(history []Stats) ([]byte, error) {
	x := make([]string, len(history))
	draw := make([]opts.LineData, len(history))
	tx := make([]opts.LineData, len(history))
	total := make([]opts.LineData, len(history))
	for i, s := range history {
		x[i] = strconv.Itoa(i)
		draw[i] = opts.LineData{Value: s.DrawMillis()}
		tx[i] = opts.LineData{Value: s.TxMillis()}
		total[i] = opts.LineData{Value: s.TotalMillis()}
	}

	subtitle := "no frames yet"
	if len(history) > 0 {
		subtitle = history[len(history)-1].String()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Frame timings", Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Frame timings", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", NameLocation: "middle", NameGap: 35}),
	)
	line.SetXAxis(x).
		AddSeries("draw", draw).
		AddSeries("tx", tx).
		AddSeries("total", total)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
