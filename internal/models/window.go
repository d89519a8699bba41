package models

import (
	"time"

	"github.com/neozeit/dmarcscope/internal/utils"
)

// TimeWindow bounds a record query. Start and End are UTC instants;
// the store speaks epoch milliseconds, so the query boundary is exposed
// through StartMillis/EndMillis.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window covering the last given number of
// days, ending now. Computed fresh per invocation, never persisted.
func TrailingWindow(days int) TimeWindow {
	end := utils.Now()
	return TimeWindow{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

func (w TimeWindow) StartMillis() int64 {
	return w.Start.UnixMilli()
}

func (w TimeWindow) EndMillis() int64 {
	return w.End.UnixMilli()
}

func (w TimeWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}
