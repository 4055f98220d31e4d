package client

import (
	"context"
	"net"
	"net/http"
	"time"
)

// TransportConfig holds the fixed timeouts and pool bounds of the shared
// HTTP transport.
type TransportConfig struct {
	// ConnectTimeout bounds TCP connection establishment.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	// ReadTimeout bounds every single read on a connection, so a stream
	// stalls out after this long without any byte arriving. It also bounds
	// the wait for response headers.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout bounds every single write on a connection.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxIdleConns bounds the idle connection pool.
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// MaxIdleConnsPerHost bounds idle connections kept per vendor host.
	MaxIdleConnsPerHost int `mapstructure:"max_idle_conns_per_host"`
	// IdleConnTimeout evicts pooled connections unused for this long. It is
	// capped at ReadTimeout: the per-read deadline also covers the transport's
	// background read on an idle connection, which fails once ReadTimeout
	// passes and closes the connection anyway.
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout"`
}

// DefaultTransportConfig returns connect 30s, read 60s, write 30s and a
// pool of 5 idle connections per host kept for up to 60 seconds.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		ConnectTimeout:      30 * time.Second,
		ReadTimeout:         60 * time.Second,
		WriteTimeout:        30 * time.Second,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     60 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTransportConfig and caps
// IdleConnTimeout at ReadTimeout.
func (cfg TransportConfig) withDefaults() TransportConfig {
	defaults := DefaultTransportConfig()
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaults.ConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaults.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost <= 0 {
		cfg.MaxIdleConnsPerHost = defaults.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = defaults.IdleConnTimeout
	}
	if cfg.IdleConnTimeout > cfg.ReadTimeout {
		cfg.IdleConnTimeout = cfg.ReadTimeout
	}
	return cfg
}

// NewHTTPClient builds the shared *http.Client. It has no overall request
// timeout: a long stream stays open as long as bytes keep arriving within
// ReadTimeout. The client is immutable after construction and safe for
// concurrent use.
func NewHTTPClient(cfg TransportConfig) *http.Client {
	cfg = cfg.withDefaults()
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, address)
			if err != nil {
				return nil, err
			}
			return &deadlineConn{Conn: conn, readTimeout: cfg.ReadTimeout, writeTimeout: cfg.WriteTimeout}, nil
		},
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{Transport: transport}
}

// deadlineConn refreshes the read or write deadline before every I/O call,
// turning the absolute deadlines of net.Conn into per-operation timeouts.
type deadlineConn struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

func (c *deadlineConn) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(b)
}
