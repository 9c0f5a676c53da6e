package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Poller is the pull fallback: it fetches the latest persisted fix on a
// fixed interval so a client that missed pushed events still converges.
type Poller struct {
	http     *resty.Client
	tracker  *Tracker
	interval time.Duration
	logger   *zap.Logger
}

func NewPoller(baseURL string, interval time.Duration, t *Tracker, logger *zap.Logger) *Poller {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &Poller{http: c, tracker: t, interval: interval, logger: logger}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	resp, err := p.http.R().SetContext(ctx).Get("/api/gps/location")
	if err != nil {
		p.logger.Warn("location poll failed", zap.Error(err))
		p.tracker.MarkDegraded()
		return
	}

	// 404 still carries the documented zero-default payload.
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		p.logger.Warn("location poll rejected", zap.Int("status", resp.StatusCode()))
		p.tracker.MarkDegraded()
		return
	}

	var ev fixEvent
	if err := json.Unmarshal(resp.Body(), &ev); err != nil {
		p.logger.Warn("invalid location payload", zap.Error(err))
		p.tracker.MarkDegraded()
		return
	}

	p.tracker.ApplyFix(ev.Latitude, ev.Longitude, ev.Timestamp, ev.IsAlert)
}
