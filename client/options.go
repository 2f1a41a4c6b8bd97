package client

import (
	"time"

	"tickhttp/content"
	"tickhttp/wire"
)

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Settings holds the defaults every new request snapshots at
// construction. It is a plain value: mutating one after client.New has
// no effect on requests already in flight.
type Settings struct {
	Method      Method
	ContentType string
	DataType    content.DataType
	Traditional bool
	UserAgent   string

	// HeaderTimeout bounds each line read of the response head. The
	// dial bound lives on the dialer (see tcp.Dialer.ConnectTimeout).
	HeaderTimeout time.Duration
	// ReadTimeout bounds one body read per tick. Keep it near zero: a
	// tick should only pick up bytes that already arrived.
	ReadTimeout time.Duration

	// MaxRetries caps consecutive empty body reads before the request
	// fails with StatusError.
	MaxRetries uint
}

var DefaultSettings = Settings{
	Method:        MethodGet,
	ContentType:   "application/x-www-form-urlencoded",
	DataType:      content.TypeText,
	UserAgent:     "tickhttp/0.1",
	HeaderTimeout: time.Second,
	ReadTimeout:   10 * time.Millisecond,
	MaxRetries:    10,
}

// Config describes one transaction. Zero fields fall back to the
// owning client's Settings.
type Config struct {
	URL    string
	Method Method

	ContentType string
	DataType    content.DataType

	// Data is the key/value payload: the url-encoded body for POST,
	// appended to the query string for every other method.
	Data        map[string][]string
	Traditional bool

	// Headers are sent after the standard fields, in order.
	Headers []wire.Field

	Handler Handler

	UserAgent     string
	HeaderTimeout time.Duration
	ReadTimeout   time.Duration
	MaxRetries    uint
}

func (c Config) withDefaults(s Settings) Config {
	if c.Method == "" {
		c.Method = s.Method
	}
	if c.ContentType == "" {
		c.ContentType = s.ContentType
	}
	if c.DataType == "" {
		c.DataType = s.DataType
	}
	if c.UserAgent == "" {
		c.UserAgent = s.UserAgent
	}
	c.Traditional = c.Traditional || s.Traditional

	if c.HeaderTimeout == 0 {
		c.HeaderTimeout = s.HeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = s.ReadTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = s.MaxRetries
	}
	if c.Handler == nil {
		c.Handler = NopHandler{}
	}

	return c
}
