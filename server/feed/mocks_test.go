package feed

import (
	"errors"
	"net"
	"sync"

	"chartdash/chart/message"
)

type mockAddr string

func (a mockAddr) Network() string {
	return "tcp"
}

func (a mockAddr) String() string {
	return string(a)
}

type mockSource struct {
	NameFunc   func() string
	SampleFunc func() float64
}

func (s mockSource) Name() string {
	return s.NameFunc()
}

func (s mockSource) Sample() float64 {
	return s.SampleFunc()
}

// constantSource creates a source that always samples the same value.
func constantSource(name string, value float64) Source {
	return mockSource{
		NameFunc: func() string {
			return name
		},
		SampleFunc: func() float64 {
			return value
		},
	}
}

type mockConn struct {
	ReadMessageFunc   func(m *message.Message) error
	WriteMessageFunc  func(m message.Message) error
	WritePingFunc     func() error
	WriteCloseFunc    func(reason string) error
	IsNormalCloseFunc func(err error) bool
	RemoteAddrFunc    func() net.Addr
	CloseFunc         func() error
}

func (c *mockConn) ReadMessage(m *message.Message) error {
	return c.ReadMessageFunc(m)
}

func (c *mockConn) WriteMessage(m message.Message) error {
	return c.WriteMessageFunc(m)
}

func (c *mockConn) WritePing() error {
	return c.WritePingFunc()
}

func (c *mockConn) WriteClose(reason string) error {
	return c.WriteCloseFunc(reason)
}

func (c *mockConn) IsNormalClose(err error) bool {
	return c.IsNormalCloseFunc(err)
}

func (c *mockConn) RemoteAddr() net.Addr {
	return c.RemoteAddrFunc()
}

func (c *mockConn) Close() error {
	return c.CloseFunc()
}

// subscriberConn creates a conn that records writes and blocks reads until it is closed.
// Messages sent to readC are received by the feed as if the browser sent them.
func subscriberConn(addr string) (conn *mockConn, writes chan message.Message, readC chan message.Message, closed chan struct{}) {
	writes = make(chan message.Message, 100)
	readC = make(chan message.Message)
	closed = make(chan struct{})
	var closeOnce sync.Once
	conn = &mockConn{
		ReadMessageFunc: func(m *message.Message) error {
			select {
			case r := <-readC:
				*m = r
				return nil
			case <-closed:
				return errors.New("connection closed")
			}
		},
		WriteMessageFunc: func(m message.Message) error {
			writes <- m
			return nil
		},
		WritePingFunc: func() error {
			return nil
		},
		WriteCloseFunc: func(reason string) error {
			return nil
		},
		IsNormalCloseFunc: func(err error) bool {
			return true
		},
		RemoteAddrFunc: func() net.Addr {
			return mockAddr(addr)
		},
		CloseFunc: func() error {
			closeOnce.Do(func() {
				close(closed)
			})
			return nil
		},
	}
	return conn, writes, readC, closed
}
