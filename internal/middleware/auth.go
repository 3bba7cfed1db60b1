package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const pinHeader = "X-Admin-PIN"

// RequirePIN guards destructive endpoints with a shared household PIN sent
// in the X-Admin-PIN header. pinHash is a bcrypt hash; when empty the
// middleware passes everything through, keeping a bare LAN install open.
func RequirePIN(pinHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pinHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			pin := r.Header.Get(pinHeader)
			if pin == "" {
				http.Error(w, "PIN required", http.StatusUnauthorized)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)); err != nil {
				http.Error(w, "incorrect PIN", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
