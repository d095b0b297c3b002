// Package feed samples metric sources and broadcasts the samples to subscribed websockets.
package feed

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"chartdash/chart"
	"chartdash/chart/message"
	"chartdash/server/log"
)

type (
	// Feed owns the subscriber connections and the recent sample history.
	Feed struct {
		Config
		sources []Source
		series  []chart.Series
		addC    chan Conn
		removeC chan message.Addr
		inC     chan message.Message
	}

	// Config contains the parameters to create a Feed.
	Config struct {
		// Log is used to log errors and other information.
		Log log.Logger
		// SamplePeriod is how often the sources are sampled.
		SamplePeriod time.Duration
		// PingPeriod is how often ping messages are sent to detect dead subscribers.
		PingPeriod time.Duration
		// HTTPPingPeriod is the amount of time between requests for subscribers to make a http request to the site.
		// Some environments shut down after a period of HTTP inactivity has passed.
		HTTPPingPeriod time.Duration
		// MaxSamples is the number of samples kept per series for new subscribers.
		MaxSamples int
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Sampled values are stamped with it.
		TimeFunc func() int64
	}

	// Source supplies the current value of one metric series.
	Source interface {
		Name() string
		Sample() float64
	}

	// Conn is a websocket connection to a subscribed browser.
	Conn interface {
		// ReadMessage reads the next message from the connection into m.
		ReadMessage(m *message.Message) error
		// WriteMessage writes the message as json to the connection.
		WriteMessage(m message.Message) error
		// WritePing writes a ping message on the connection.
		WritePing() error
		// WriteClose writes a close message on the connection.  The connection is NOT closed.
		WriteClose(reason string) error
		// IsNormalClose determines if the error is from the subscriber leaving the page.
		IsNormalClose(err error) bool
		// RemoteAddr gets the remote network address of the connection.
		RemoteAddr() net.Addr
		// Close closes the connection.
		Close() error
	}
)

// New creates a feed that samples the sources.
func (cfg Config) New(sources ...Source) (*Feed, error) {
	if err := cfg.validate(sources); err != nil {
		return nil, fmt.Errorf("creating feed: validation: %w", err)
	}
	series := make([]chart.Series, len(sources))
	for i, src := range sources {
		series[i] = chart.Series{Name: src.Name()}
	}
	f := Feed{
		Config:  cfg,
		sources: sources,
		series:  series,
		addC:    make(chan Conn),
		removeC: make(chan message.Addr),
		inC:     make(chan message.Message),
	}
	return &f, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(sources []Source) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case len(sources) == 0:
		return fmt.Errorf("at least one sample source required")
	case cfg.SamplePeriod <= 0:
		return fmt.Errorf("positive sample period required")
	case cfg.PingPeriod <= 0:
		return fmt.Errorf("positive ping period required")
	case cfg.HTTPPingPeriod <= 0:
		return fmt.Errorf("positive http ping period required")
	case cfg.MaxSamples <= 0:
		return fmt.Errorf("positive max sample count required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	}
	return nil
}

// Run samples the sources and serves subscribers until the context is cancelled.
func (f *Feed) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go f.run(ctx, wg)
}

// Subscribe registers the connection to receive samples.
// The connection is sent the recent history of every series when it is added.
func (f *Feed) Subscribe(ctx context.Context, conn Conn) error {
	select {
	case f.addC <- conn:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("feed not running")
	}
}

// run is the main loop of the feed.
// All subscriber writes happen here so the connections never see concurrent writes.
func (f *Feed) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	sampleTicker := time.NewTicker(f.SamplePeriod)
	defer sampleTicker.Stop()
	pingTicker := time.NewTicker(f.PingPeriod)
	defer pingTicker.Stop()
	httpPingTicker := time.NewTicker(f.HTTPPingPeriod)
	defer httpPingTicker.Stop()
	subscribers := make(map[message.Addr]Conn)
	defer func() {
		for addr, conn := range subscribers {
			conn.WriteClose("server shutting down")
			conn.Close()
			delete(subscribers, addr)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case conn := <-f.addC:
			f.add(ctx, conn, subscribers, wg)
		case addr := <-f.removeC:
			f.remove(addr, subscribers)
		case m := <-f.inC:
			f.warn(m, subscribers)
		case <-sampleTicker.C:
			f.sample(subscribers)
		case <-pingTicker.C:
			f.ping(subscribers)
		case <-httpPingTicker.C:
			f.broadcast(message.Message{Type: message.SocketHTTPPing}, subscribers)
		}
	}
}

// add registers the connection and sends it the recent sample history.
func (f *Feed) add(ctx context.Context, conn Conn, subscribers map[message.Addr]Conn, wg *sync.WaitGroup) {
	addr := message.Addr(conn.RemoteAddr().String())
	m := message.Message{
		Type:   message.SeriesRefresh,
		Info:   "subscribed to metrics feed",
		Series: f.series,
	}
	if err := conn.WriteMessage(m); err != nil {
		f.Log.Printf("refreshing new subscriber %v: %v", addr, err)
		conn.Close()
		return
	}
	subscribers[addr] = conn
	wg.Add(1)
	go f.readMessages(ctx, conn, addr, wg)
}

// remove forgets and closes the connection.
func (f *Feed) remove(addr message.Addr, subscribers map[message.Addr]Conn) {
	conn, ok := subscribers[addr]
	if !ok {
		return
	}
	delete(subscribers, addr)
	conn.Close()
}

// warn tells the message's subscriber that the feed does not handle requests.
func (f *Feed) warn(m message.Message, subscribers map[message.Addr]Conn) {
	conn, ok := subscribers[m.Addr]
	if !ok {
		return
	}
	w := message.Message{
		Type: message.SocketWarning,
		Info: fmt.Sprintf("unsupported message type: %v", m.Type),
	}
	if err := conn.WriteMessage(w); err != nil {
		f.remove(m.Addr, subscribers)
	}
}

// sample appends a sample of each source to the history and broadcasts them.
func (f *Feed) sample(subscribers map[message.Addr]Conn) {
	now := float64(f.TimeFunc())
	for i, src := range f.sources {
		s := chart.Sample{
			X: now,
			Y: src.Sample(),
		}
		f.series[i].Append(s, f.MaxSamples)
		m := message.Message{
			Type:       message.SampleAdd,
			SeriesName: src.Name(),
			Sample:     &s,
		}
		f.broadcast(m, subscribers)
	}
}

// ping writes a ping on every connection, dropping subscribers that cannot be reached.
func (f *Feed) ping(subscribers map[message.Addr]Conn) {
	for addr, conn := range subscribers {
		if err := conn.WritePing(); err != nil {
			f.remove(addr, subscribers)
		}
	}
}

// broadcast writes the message to every subscriber, dropping those that cannot be written to.
func (f *Feed) broadcast(m message.Message, subscribers map[message.Addr]Conn) {
	for addr, conn := range subscribers {
		if err := conn.WriteMessage(m); err != nil {
			f.Log.Printf("writing to subscriber %v: %v", addr, err)
			f.remove(addr, subscribers)
		}
	}
}

// readMessages drains the connection until it fails, reporting each received message to the run loop.
// Subscribers are not expected to send anything.
func (f *Feed) readMessages(ctx context.Context, conn Conn, addr message.Addr, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		var m message.Message
		if err := conn.ReadMessage(&m); err != nil {
			if !conn.IsNormalClose(err) {
				f.Log.Printf("reading feed messages stopped for %v: %v", addr, err)
			}
			select {
			case f.removeC <- addr:
			case <-ctx.Done():
			}
			return
		}
		m.Addr = addr
		select {
		case f.inC <- m:
		case <-ctx.Done():
			return
		}
	}
}
