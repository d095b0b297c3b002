// Package server runs the http server that serves the dashboard site and the metrics feed
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"chartdash/server/log"
)

type (
	// Server runs the site.
	Server struct {
		wg          sync.WaitGroup
		log         log.Logger
		feed        Feed
		HTTPServer  *http.Server
		HTTPSServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// HTTPPort is the TCP port for http requests.  All traffic is redirected to the https port.
		HTTPPort int
		// HTTPSPort is the TCP port for https requests.
		HTTPSPort int
		// StopDur is the maximum amount of time Stop waits for the server to shut down.
		StopDur time.Duration
		// CacheSec is the number of seconds some files are cached.
		CacheSec int
		// Version is used to bust caches of files from older server versions.
		Version string
		// Challenge is the ACME HTTP-01 challenge used to get a TLS certificate.
		Challenge Challenge
		// TLSCertFile is the public HTTPS TLS certificate file.
		TLSCertFile string
		// TLSKeyFile is the private HTTPS TLS key file.
		TLSKeyFile string
		// NoTLSRedirect disables redirection to https from http when true.
		NoTLSRedirect bool
	}
)

// NewServer creates a Server from the config and parameters.
func (cfg Config) NewServer(p Parameters) (*Server, error) {
	if err := cfg.validate(p); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	template, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}
	monitor := runtimeMonitor{
		hasTLS: cfg.validHTTPAddr(),
	}
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpsAddr := fmt.Sprintf(":%d", cfg.HTTPSPort)
	httpsRedirectHandler := httpsRedirectHandler(cfg.HTTPSPort)
	httpHandler := cfg.httpHandler(httpsRedirectHandler)
	httpsHandler := cfg.httpsHandler(httpHandler, httpsRedirectHandler, p, template, monitor)
	s := Server{
		log:  p.Logger,
		feed: p.Feed,
		HTTPServer: &http.Server{
			Addr:         httpAddr,
			Handler:      httpHandler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		HTTPSServer: &http.Server{
			Addr:         httpsAddr,
			Handler:      httpsHandler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Config: cfg,
	}
	return &s, nil
}

// validate ensures the configuration and parameters have no errors.
func (cfg Config) validate(p Parameters) error {
	if err := p.validate(); err != nil {
		return err
	}
	switch {
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	case cfg.CacheSec < 0:
		return fmt.Errorf("nonnegative cache seconds required")
	case cfg.HTTPSPort <= 0:
		return fmt.Errorf("positive https port required")
	case len(cfg.Version) == 0:
		return fmt.Errorf("version required")
	}
	return nil
}

// validHTTPAddr determines if the HTTP address is valid.
// If it is, the HTTP server should be started to redirect to HTTPS and handle certificate creation.
func (cfg Config) validHTTPAddr() bool {
	return cfg.HTTPPort > 0
}

// Run starts the servers and the feed asynchronously.
// When the HTTP/HTTPS servers stop, their errors are sent to the channel.
func (s *Server) Run(ctx context.Context) <-chan error {
	errC := make(chan error, 2)
	s.runHTTPServer(errC)
	s.runHTTPSServer(ctx, errC)
	return errC
}

// runHTTPServer runs the http server asynchronously, adding its error to the channel when done.
// The server is only run if the HTTP address is valid.
func (s *Server) runHTTPServer(errC chan<- error) {
	if !s.validHTTPAddr() {
		return
	}
	go func() {
		errC <- s.HTTPServer.ListenAndServe()
	}()
}

// runHTTPSServer runs the https server and the feed, adding the server's error to the channel when done.
// The feed stops when the https server shuts down.
func (s *Server) runHTTPSServer(ctx context.Context, errC chan<- error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	s.feed.Run(ctx, &s.wg)
	s.HTTPSServer.RegisterOnShutdown(cancelFunc)
	s.log.Printf("starting https server at https://127.0.0.1%v", s.HTTPSServer.Addr)
	go func() {
		switch {
		case s.validHTTPAddr():
			if _, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile); err != nil {
				errC <- fmt.Errorf("loading tls certificate: %v", err)
				return
			}
			errC <- s.HTTPSServer.ListenAndServeTLS(s.TLSCertFile, s.TLSKeyFile)
		default:
			if len(s.TLSCertFile) != 0 || len(s.TLSKeyFile) != 0 {
				s.log.Printf("ignoring TLS_CERT_FILE/TLS_KEY_FILE variables since PORT was specified, using automated certificate management")
			}
			errC <- s.HTTPSServer.ListenAndServe()
		}
	}()
}

// Stop asks the server to shut down and waits for the shutdown to complete.
// An error is returned if the shutdown times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	httpsShutdownErr := s.HTTPSServer.Shutdown(ctx)
	httpShutdownErr := s.HTTPServer.Shutdown(ctx)
	switch {
	case httpsShutdownErr != nil:
		return httpsShutdownErr
	case httpShutdownErr != nil:
		return httpShutdownErr
	}
	s.wg.Wait()
	return nil
}
