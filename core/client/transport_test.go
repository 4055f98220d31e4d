package client

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransportConfig(t *testing.T) {
	cfg := DefaultTransportConfig()

	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 60*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Positive(t, cfg.MaxIdleConns)
	assert.Positive(t, cfg.MaxIdleConnsPerHost)
}

func TestTransportConfig_WithDefaultsFillsZeroFields(t *testing.T) {
	cfg := TransportConfig{ReadTimeout: 5 * time.Second}.withDefaults()

	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 5*time.Second, cfg.IdleConnTimeout, "idle timeout is capped at the read timeout")
}

func TestTransportConfig_IdleTimeoutNeverOutlivesReadDeadline(t *testing.T) {
	tests := []struct {
		name     string
		cfg      TransportConfig
		expected time.Duration
	}{
		{"defaults", DefaultTransportConfig(), 60 * time.Second},
		{"longer idle capped", TransportConfig{ReadTimeout: 10 * time.Second, IdleConnTimeout: 5 * time.Minute}, 10 * time.Second},
		{"shorter idle kept", TransportConfig{ReadTimeout: 60 * time.Second, IdleConnTimeout: 15 * time.Second}, 15 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg.withDefaults()
			assert.Equal(t, tt.expected, cfg.IdleConnTimeout)
			assert.LessOrEqual(t, cfg.IdleConnTimeout, cfg.ReadTimeout)
		})
	}
}

func TestNewHTTPClient_HasNoOverallTimeout(t *testing.T) {
	httpClient := NewHTTPClient(DefaultTransportConfig())

	assert.Zero(t, httpClient.Timeout)
	transport, ok := httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, transport.ResponseHeaderTimeout)
	assert.Equal(t, 5, transport.MaxIdleConnsPerHost)
	assert.Equal(t, 60*time.Second, transport.IdleConnTimeout)
}

func TestNewHTTPClient_HeaderTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	httpClient := NewHTTPClient(TransportConfig{ReadTimeout: 100 * time.Millisecond})
	_, err := httpClient.Get(server.URL)

	require.Error(t, err)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestDeadlineConn_ReadTimeout(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := &deadlineConn{Conn: client, readTimeout: 50 * time.Millisecond}
	_, err := conn.Read(make([]byte, 1))

	require.Error(t, err)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestDeadlineConn_DeadlineRefreshedPerRead(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := &deadlineConn{Conn: client, readTimeout: 200 * time.Millisecond}
	go func() {
		for i := 0; i < 3; i++ {
			time.Sleep(100 * time.Millisecond)
			_, _ = server.Write([]byte{byte('a' + i)})
		}
	}()

	buf := make([]byte, 1)
	for i := 0; i < 3; i++ {
		n, err := conn.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		assert.Equal(t, byte('a'+i), buf[0])
	}
}
