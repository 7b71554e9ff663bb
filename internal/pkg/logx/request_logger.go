/*
Package logx provides a structured logging wrapper based on zerolog.

This file contains the HTTP middleware that logs request lifecycle
information (method, URI, status, latency) with the client IP anonymized.
*/
package logx

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// anonymizeIP zeroes the last IPv4 octet or compresses the latter half of an
// IPv6 address, keeping approximate origin without storing the full address.
func anonymizeIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err == nil {
		remoteAddr = host
	}

	ip := net.ParseIP(remoteAddr)
	switch {
	case ip == nil:
		return "unknown_ip"
	case ip.IsLoopback():
		return "127.0.0.1"
	}

	if v4 := ip.To4(); v4 != nil {
		return v4[:3].String() + ".0"
	}
	return ip.To16()[:8].String() + "::"
}

// RequestLogger returns a middleware that logs each completed request and
// injects a request-scoped logger into the context.
func RequestLogger() func(next http.Handler) http.Handler {
	base := Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger := base.With().
				Str("component", "http").
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("remote_ip", anonymizeIP(r.RemoteAddr)).
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Logger()

			r = r.WithContext(logger.WithContext(r.Context()))

			start := time.Now()
			next.ServeHTTP(ww, r)

			event := logger.Info()
			if ww.Status() >= 500 {
				event = logger.Error()
			} else if ww.Status() >= 400 {
				event = logger.Warn()
			}

			event.
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("Request completed")
		})
	}
}
