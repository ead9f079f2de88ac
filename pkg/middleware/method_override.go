package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField is the form field HTML forms use to send PATCH, PUT or DELETE.
const MethodOverrideField = "_method"

// MethodOverride rewrites a POST carrying _method=PATCH|PUT|DELETE into that
// method. It must run before routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				switch m := strings.ToUpper(r.PostForm.Get(MethodOverrideField)); m {
				case http.MethodPatch, http.MethodPut, http.MethodDelete:
					r = r.WithContext(r.Context())
					r.Method = m
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
