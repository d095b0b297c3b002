// Package message contains structures to pass between the ui and server.
package message

import "chartdash/chart"

type (
	// Type represents the purpose of a message.
	Type int

	// Message contains information to or from a feed socket.
	Message struct {
		// Type is the purpose of the message.
		Type Type `json:"type"`
		// Info is a message to show to the viewer.
		Info string `json:"info,omitempty"`
		// Series is the series of recent samples the message refreshes.
		Series []chart.Series `json:"series,omitempty"`
		// SeriesName is the series a single sample belongs to.
		SeriesName string `json:"seriesName,omitempty"`
		// Sample is a single new sample for SeriesName.
		Sample *chart.Sample `json:"sample,omitempty"`
		// Addr is the socket remote address text the message is from.
		Addr Addr `json:"-"`
	}

	// Addr identifies the source of a message.
	Addr string
)

const (
	_ Type = iota
	// SeriesRefresh is sent by the server to replace all series with their recent history.
	SeriesRefresh
	// SampleAdd is sent by the server when a new sample is measured for a series.
	SampleAdd
	// SocketWarning is sent by the server to inform viewers that a request is invalid.
	SocketWarning
	// SocketError is sent by the server to report an unexpected state.
	SocketError
	// SocketHTTPPing is sent by the server to request a http request to the site to keep it active.  Some environments shut down after a period of HTTP inactivity has passed.
	SocketHTTPPing // keep last for tests
)
