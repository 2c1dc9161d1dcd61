package render

import (
	"fmt"
	"time"
)

// Stats describes one call to Renderer.Draw.
type Stats struct {
	At time.Time `json:"at"`
	// Lines counts the segments left after dedup, including zero-length
	// ones that put no points on the wire.
	Lines    int           `json:"lines"`
	Points   int           `json:"points"`
	Transits int           `json:"transits"`
	Bytes    int           `json:"bytes"`
	DrawTime time.Duration `json:"draw_time"`
	TxTime   time.Duration `json:"tx_time"`
	Total    time.Duration `json:"total"`
	// FPS is 1/Total, or -1 when Total is zero.
	FPS float64 `json:"fps"`
}

func fps(total time.Duration) float64 {
	if total <= 0 {
		return -1
	}
	return 1 / total.Seconds()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// DrawMillis returns DrawTime in fractional milliseconds.
func (s Stats) DrawMillis() float64  { return ms(s.DrawTime) }
func (s Stats) TxMillis() float64    { return ms(s.TxTime) }
func (s Stats) TotalMillis() float64 { return ms(s.Total) }

// String formats the stats as a single status line.
func (s Stats) String() string {
	return fmt.Sprintf("%d lines, %d bytes @ %.2f fps (%.2f ms draw, %.2f ms tx, %.2f ms total)",
		s.Lines, s.Bytes, s.FPS, s.DrawMillis(), s.TxMillis(), s.TotalMillis())
}
