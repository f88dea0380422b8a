package handler

import (
	"net"
	"net/http"
	"strings"
)

// RequestBaseURL derives scheme://host[:port] from the inbound request. The
// port is kept only when it is neither 80 nor 443.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	if host == "" {
		host = "localhost"
	}

	return scheme + "://" + hostWithPort(host)
}

// BaseURLFromAddress turns a listen address such as ":8080" into a base URL,
// for callers that have no HTTP request to derive one from.
func BaseURLFromAddress(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port == "" {
		return "http://" + bracketIPv6(host)
	}
	return "http://" + hostWithPort(net.JoinHostPort(host, port))
}

func hostWithPort(hostport string) string {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		// No port in the Host header; the scheme default applies.
		return hostport
	}

	if port == "" || port == "80" || port == "443" {
		return bracketIPv6(host)
	}
	return net.JoinHostPort(host, port)
}

func bracketIPv6(host string) string {
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}
