package transport

import (
	"bytes"
	"time"
)

// StubRead is one scripted outcome of ReceiveAvailable.
type StubRead struct {
	Data []byte
	Err  error
}

// StubConn is a scripted Conn for tests. ReceiveLine serves Lines one
// per call, ReceiveAvailable serves Reads one per call; both return
// ErrClosed once their script runs out.
type StubConn struct {
	Lines []string
	Reads []StubRead

	SendErr error

	Sent   bytes.Buffer
	Closed int

	lineAt, readAt int
}

var _ Conn = (*StubConn)(nil)

func (s *StubConn) Send(p []byte) error {
	if s.SendErr != nil {
		return s.SendErr
	}
	s.Sent.Write(p)
	return nil
}

func (s *StubConn) ReceiveLine(timeout time.Duration) ([]byte, error) {
	_ = timeout
	if s.lineAt >= len(s.Lines) {
		return nil, ErrClosed
	}

	line := s.Lines[s.lineAt]
	s.lineAt++
	return []byte(line), nil
}

func (s *StubConn) ReceiveAvailable(timeout time.Duration) ([]byte, error) {
	_ = timeout
	if s.readAt >= len(s.Reads) {
		return nil, ErrClosed
	}

	read := s.Reads[s.readAt]
	s.readAt++
	return read.Data, read.Err
}

func (s *StubConn) Close() error {
	s.Closed++
	return nil
}

// StubDialer hands out a single prepared conn and records the address
// it was asked for.
type StubDialer struct {
	Conn *StubConn
	Err  error

	Host string
	Port uint16
}

var _ Dialer = (*StubDialer)(nil)

func (d *StubDialer) Dial(host string, port uint16) (Conn, error) {
	d.Host, d.Port = host, port
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Conn, nil
}
