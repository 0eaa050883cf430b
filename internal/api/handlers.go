package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// handlerFunc is an endpoint body: it returns the response data or an error
// that errorMessage knows how to render.
type handlerFunc func(r *http.Request) (interface{}, error)

func (s *Server) serve(operation string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fn(r)
		if err != nil {
			msg := errorMessage(err)
			entry := s.log.WithRequest(RequestIDFrom(r.Context())).WithFields(logrus.Fields{
				"operation": operation,
				"reason":    msg,
			})
			if msg == msgInternal || msg == msgKeygenFailed {
				entry.WithError(err).Error("Request failed")
			} else {
				entry.Debug("Request rejected")
			}
			writeError(w, msg)
			return
		}
		writeSuccess(w, data)
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched so the required-field checks report what is missing.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &bodyError{err: err}
	}

	// exactly one JSON value per body
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return &bodyError{err: err}
	}
	return nil
}

func requireFields(fields ...interface{}) error {
	for _, f := range fields {
		switch v := f.(type) {
		case *string:
			if v == nil {
				return errMissingFields
			}
		case *uint8:
			if v == nil {
				return errMissingFields
			}
		case *uint64:
			if v == nil {
				return errMissingFields
			}
		default:
			panic(fmt.Sprintf("requireFields: unsupported field type %T", f))
		}
	}
	return nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, healthResponse{Status: "ok", Version: s.opts.Version})
}
