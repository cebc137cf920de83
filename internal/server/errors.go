package server

import (
	"errors"
	"net/http"
)

func (s *Server) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log().Error("write text response", "status", status, "error", err)
	}
}

// writeErrorReq logs err and responds with a fixed message. Internal errors
// never leak err to the client.
func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	fields := []any{"status", status, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
		message = msgInternal
	case status >= 400 && shouldWarnClientError(status):
		s.log().Warn("request rejected", fields...)
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}

	s.writeText(w, status, message)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorReq(w, r, http.StatusInternalServerError, msgInternal, err)
}

func shouldWarnClientError(status int) bool {
	switch status {
	case http.StatusRequestEntityTooLarge:
		return true
	default:
		return false
	}
}
