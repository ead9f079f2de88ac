package utils

import (
	"net/http"
)

// Redirect sends a 302 to path.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// ResponseText writes a plain text body with the given status code.
func ResponseText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write([]byte(message + "\n"))
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseText(w, http.StatusBadRequest, message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter) {
	ResponseText(w, http.StatusNotFound, "404 Not Found")
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter) {
	ResponseText(w, http.StatusTooManyRequests, "Too many requests")
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseText(w, http.StatusInternalServerError, "Internal server error")
}
