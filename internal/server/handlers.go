package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"semantic-exit/exitcodes"
)

// CodeInfo describes a defined exit code.
type CodeInfo struct {
	Value       int    `json:"value"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Explanation classifies an arbitrary status.
type Explanation struct {
	Status      int    `json:"status"`
	Defined     bool   `json:"defined"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Signal      int    `json:"signal,omitempty"` // Signal number when Category is signal
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// Describe returns the registry entry for c.
func Describe(c exitcodes.Code) CodeInfo {
	return CodeInfo{
		Value:       c.Int(),
		Name:        c.String(),
		Category:    exitcodes.Classify(c.Int()).String(),
		Description: c.Description(),
	}
}

// Explain classifies status whether or not it is a defined code.
func Explain(status int) Explanation {
	e := Explanation{
		Status:   status,
		Category: exitcodes.Classify(status).String(),
	}
	if code, err := exitcodes.Parse(status); err == nil {
		e.Defined = true
		e.Name = code.String()
		e.Description = code.Description()
	}
	if exitcodes.IsSignal(exitcodes.Code(status)) {
		e.Signal = status - 128
	}
	return e
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{"status": "ok", "healthy": true}, http.StatusOK)
}

func ListCodesHandler(w http.ResponseWriter, r *http.Request) {
	all := exitcodes.All()
	out := make([]CodeInfo, 0, len(all))
	for _, c := range all {
		out = append(out, Describe(c))
	}
	respondJSON(w, out, http.StatusOK)
}

func ExplainHandler(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["status"]
	status, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, "status must be an integer, got "+strconv.Quote(raw), http.StatusBadRequest)
		return
	}
	respondJSON(w, Explain(status), http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	}, status)
}
