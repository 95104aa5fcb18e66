package collector

import (
	"net/http"
	"net/url"
)

// proxyTransport returns a transport routed through proxyURL when it parses.
func proxyTransport(proxyURL string) *http.Transport {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return transport
}
