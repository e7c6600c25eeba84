package goConsole

import (
	"context"
	"time"
)

// armRenewal starts the background renewal goroutine for the current session,
// replacing any previous one. Caller must hold c.mu.
func (c *Client) armRenewal() {
	c.stopRenewal()

	stop := make(chan struct{})
	c.renewalStop = stop
	go c.renewLoop(stop, c.cfg.Session.RefreshInterval)
}

// stopRenewal halts the background renewal goroutine if one is running.
// Caller must hold c.mu.
func (c *Client) stopRenewal() {
	if c.renewalStop != nil {
		close(c.renewalStop)
		c.renewalStop = nil
	}
}

// renewLoop refreshes the access token on a fixed cadence until stopped. The
// interval is shorter than the token lifetime, so every tick lands while the
// previous token is still valid. A failed tick tears the session down through
// Refresh's own logout path, which also closes the stop channel.
func (c *Client) renewLoop(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.metricInc(MetricRenewalTick)
			if err := c.Refresh(context.Background()); err != nil {
				return
			}
		}
	}
}
