package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gudang-mitra/gudang-api/internal/auth"
)

// callerIdentity re-derives the authenticated user from the Authorization
// header. The auth middleware has already validated the token by the time
// a handler runs.
func callerIdentity(r *http.Request) (userID int, role string, err error) {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return 0, "", err
	}
	if sub, ok := claims["sub"].(float64); ok {
		userID = int(sub)
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// writeFailure sends the structured {success:false, message} payload. The
// message is always safe for clients; raw errors stay in the server log.
func writeFailure(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, FailureResponse{Success: false, Message: message}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
