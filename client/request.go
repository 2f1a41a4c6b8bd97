package client

import (
	"bytes"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"tickhttp/chunked"
	"tickhttp/content"
	"tickhttp/transport"
	"tickhttp/wire"

	"github.com/dchest/uniuri"
	"github.com/pkg/errors"
)

// ErrCanceled is handed to OnError when a request is aborted through
// Cancel.
var ErrCanceled = errors.New("request canceled")

// Request owns one HTTP transaction: its connection, its buffers and
// its place in the pool. It sits in the pool exactly while it is not
// complete.
type Request struct {
	id  string
	cfg Config

	host   string
	port   uint16
	target string // path[?query]

	conn transport.Conn
	pool *Pool // set once scheduled

	statusLine    wire.StatusLine
	header        wire.Headers
	contentLength *uint
	chunkedBody   bool
	dec           *chunked.Decoder

	contents [][]byte
	length   uint
	retries  uint // empty reads so far; never reset

	status   Status
	err      error
	complete bool

	logger *slog.Logger
}

func newRequest(cfg Config, logger *slog.Logger) *Request {
	id := uniuri.NewLen(8)

	return &Request{
		id:     id,
		cfg:    cfg,
		header: wire.NewHeaders(),
		logger: logger.With(slog.String("request", id)),
	}
}

func (r *Request) ID() string                  { return r.id }
func (r *Request) StatusLine() wire.StatusLine { return r.statusLine }
func (r *Request) Header() wire.Headers        { return r.header }
func (r *Request) Length() uint                { return r.length }
func (r *Request) Status() Status              { return r.status }
func (r *Request) Err() error                  { return r.err }
func (r *Request) Done() bool                  { return r.complete }

// ContentLength reports the Content-Length advertised by the response,
// if any.
func (r *Request) ContentLength() (uint, bool) {
	if r.contentLength == nil {
		return 0, false
	}
	return *r.contentLength, true
}

// Contents returns the body bytes accumulated so far, joined. On the
// error path this is whatever partial or undecodable body arrived
// before the failure.
func (r *Request) Contents() []byte {
	if len(r.contents) == 0 {
		return nil
	}
	return bytes.Join(r.contents, nil)
}

// Cancel aborts an in-flight request: the connection is torn down, the
// callbacks fire with ErrCanceled and the pool evicts it right away.
// Canceling a finished request is a no-op.
func (r *Request) Cancel() {
	if r.complete {
		return
	}
	r.fail(StatusError, ErrCanceled)

	if r.pool != nil {
		r.pool.remove(r)
		r.pool = nil
	}
}

// setup is the synchronous, bounded part of the transaction: connect,
// send the head (and body for POST), read and parse the response head.
// It runs once, before the request can be scheduled.
func (r *Request) setup(d transport.Dialer) error {
	if err := r.parseURL(); err != nil {
		return errors.Wrap(err, "parsing url")
	}

	conn, err := d.Dial(r.host, r.port)
	if err != nil {
		return errors.Wrap(err, "connecting")
	}
	r.conn = conn

	body := ""
	if r.cfg.Method == MethodPost {
		body = wire.EncodeForm(r.cfg.Data, r.cfg.Traditional)
	}

	head := wire.BuildRequestHead(
		string(r.cfg.Method), r.target, r.outgoingFields(len(body)),
	)
	if err := r.conn.Send(head); err != nil {
		return errors.Wrap(err, "sending request head")
	}
	if len(body) > 0 {
		if err := r.conn.Send([]byte(body)); err != nil {
			return errors.Wrap(err, "sending request body")
		}
	}

	status, header, err := wire.ParseResponseHead(r.conn, r.cfg.HeaderTimeout)
	if err != nil {
		return err
	}
	r.statusLine = status
	r.header = header

	if v, ok := header.Get("Content-Length"); ok {
		// IntSize keeps the value in uint range on 32-bit platforms;
		// an overflowing length is treated as absent.
		if n, err := strconv.ParseUint(v, 10, strconv.IntSize); err == nil {
			l := uint(n)
			r.contentLength = &l
		}
	}
	if v, ok := header.Get("Transfer-Encoding"); ok {
		if strings.Contains(strings.ToLower(v), "chunked") {
			r.chunkedBody = true
			r.dec = &chunked.Decoder{}
		}
	}

	r.logger.Debug("response head received",
		slog.Uint64("status", uint64(status.Code)),
		slog.Bool("chunked", r.chunkedBody),
	)

	switch {
	case r.bodyless():
		if r.statusLine.Code == 304 {
			r.status = StatusNotModified
		}
		r.finish()
	case r.contentLength != nil && *r.contentLength == 0:
		// Nothing to read.
		r.finish()
	}

	return nil
}

// bodyless transactions end right after the header exchange.
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-6.3-2.1
func (r *Request) bodyless() bool {
	return r.cfg.Method == MethodHead ||
		r.statusLine.Code == 204 || r.statusLine.Code == 304
}

func (r *Request) parseURL() error {
	raw := r.cfg.URL
	// A bare "host/path" would otherwise parse as all-path.
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "" && u.Scheme != "http" {
		return errors.Errorf("unsupported scheme: %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return errors.New("url has no host")
	}

	port := uint16(80)
	if p := u.Port(); p != "" {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return errors.Wrap(err, "parsing port")
		}
		port = uint16(n)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	query := u.RawQuery
	if r.cfg.Method != MethodPost && len(r.cfg.Data) > 0 {
		extra := wire.EncodeForm(r.cfg.Data, r.cfg.Traditional)
		if query == "" {
			query = extra
		} else {
			query += "&" + extra
		}
	}

	r.host, r.port = host, port
	r.target = path
	if query != "" {
		r.target += "?" + query
	}

	return nil
}

func (r *Request) outgoingFields(bodyLen int) []wire.Field {
	fields := []wire.Field{
		{Name: "Host", Value: r.host},
		{Name: "Content-Type", Value: r.cfg.ContentType},
		{Name: "Content-Length", Value: strconv.Itoa(bodyLen)},
		{Name: "Connection", Value: "keep-alive"},
		{Name: "User-Agent", Value: r.cfg.UserAgent},
	}

	return append(fields, r.cfg.Headers...)
}

// step performs one non-blocking read slice.
func (r *Request) step() {
	if r.complete {
		return
	}

	data, err := r.conn.ReceiveAvailable(r.cfg.ReadTimeout)
	switch {
	case err == nil:
		if err := r.consume(data); err != nil {
			r.fail(StatusError, err)
		}
	case errors.Is(err, transport.ErrTimeout):
		r.retries++
		if r.retries >= r.cfg.MaxRetries {
			r.fail(StatusError, err)
			break
		}
		r.status = StatusTimeout
		r.logger.Debug("empty read", slog.Uint64("retries", uint64(r.retries)))
	case errors.Is(err, transport.ErrClosed) && r.untilClose():
		// Body delimited by connection close.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-6.3-2.8
		r.finish()
	default:
		r.fail(StatusError, err)
	}
}

// untilClose reports whether the response carries neither framing.
func (r *Request) untilClose() bool {
	return !r.chunkedBody && r.contentLength == nil
}

func (r *Request) consume(data []byte) error {
	if r.chunkedBody {
		payloads, err := r.dec.Feed(data)
		if err != nil {
			return errors.Wrap(err, "decoding chunked body")
		}

		for _, p := range payloads {
			r.contents = append(r.contents, p)
			r.length += uint(len(p))
		}

		if r.dec.Done() {
			r.finish()
		}
		return nil
	}

	r.contents = append(r.contents, data)
	r.length += uint(len(data))

	if r.contentLength != nil && r.length >= *r.contentLength {
		r.finish()
	}
	return nil
}

// finish releases the connection, decodes the assembled body and runs
// the callback protocol. The connection is gone before any callback
// observes the request.
func (r *Request) finish() {
	r.release()
	r.complete = true

	var (
		decoded any
		err     error
	)
	if r.length > 0 {
		decoded, err = content.Decode(bytes.Join(r.contents, nil), r.cfg.DataType)
	}

	if err != nil {
		r.status = StatusParserError
		r.err = err
		r.logger.Warn("body decode failed", slog.String("error", err.Error()))
		r.cfg.Handler.OnError(r, r.status, err)
	} else {
		r.cfg.Handler.OnSuccess(decoded, r.status, r)
	}

	r.cfg.Handler.OnComplete(r, r.status)
}

func (r *Request) fail(status Status, err error) {
	r.release()
	r.complete = true
	r.status = status
	r.err = err

	r.logger.Warn("request failed",
		slog.String("status", string(status)),
		slog.String("error", err.Error()),
	)

	r.cfg.Handler.OnError(r, status, err)
	r.cfg.Handler.OnComplete(r, status)
}

func (r *Request) release() {
	if r.conn == nil {
		return
	}
	if err := r.conn.Close(); err != nil {
		r.logger.Warn("closing connection", slog.String("error", err.Error()))
	}
	r.conn = nil
}
