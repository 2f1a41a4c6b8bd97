// Package client implements a tick-driven, non-blocking HTTP/1.1
// client engine. One Request owns one transaction; a Pool of in-flight
// requests advances them by one read slice per host tick, so no call
// ever blocks past its configured bound.
package client

import (
	"log/slog"

	"tickhttp/transport"
)

// Client owns the default settings and the pool driving in-flight
// requests forward on ticks.
type Client struct {
	dialer   transport.Dialer
	logger   *slog.Logger
	defaults Settings

	pool *Pool
}

func New(d transport.Dialer, source TickSource, logger *slog.Logger, defaults Settings) *Client {
	return &Client{
		dialer:   d,
		logger:   logger,
		defaults: defaults,
		pool:     NewPool(source, logger),
	}
}

// Pool exposes the scheduler, mainly so hosts with their own idle
// callback can call Tick directly.
func (c *Client) Pool() *Pool { return c.pool }

// Do performs the synchronous setup phase of one request and, if the
// response head arrived intact and a body is expected, hands it to the
// pool for per-tick body reads. On a setup failure the error callbacks
// have already fired by the time Do returns the error.
func (c *Client) Do(cfg Config) (*Request, error) {
	r := newRequest(cfg.withDefaults(c.defaults), c.logger)

	if err := r.setup(c.dialer); err != nil {
		r.fail(StatusError, err)
		return r, err
	}

	if !r.complete {
		c.pool.add(r)
	}

	return r, nil
}
