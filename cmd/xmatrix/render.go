package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/mat"

	"github.com/peragwin/xmatrix/audio/matrix"
	"github.com/peragwin/xmatrix/audio/mixer"
)

func formatGains(g *matrix.Gains) string {
	return fmt.Sprintf("%.2f", mat.Formatted(g.Dense(), mat.Squeeze()))
}

// render logs the applied gains every interval while they change.
func render(ctx context.Context, e *mixer.Engine, interval time.Duration) {
	if interval <= 0 {
		return
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	cur := matrix.MustNew(e.Channels())
	last := matrix.MustNew(e.Channels())
	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		e.Snapshot(cur)
		if !first && cur.Equal(last) {
			continue
		}
		first = false
		last.CopyFrom(cur)
		st := e.Stats()
		glog.Infof("blocks=%d adoptions=%d\n%s", st.Blocks, st.Adoptions, formatGains(cur))
	}
}
