package operation

import (
	"net"
	"net/http"
	"time"
)

func newHttpClientTransport(config *Config) *http.Transport {
	dialer := net.Dialer{
		Timeout:   buildDurationByMs(config.DialTimeoutMs, 1000),
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
