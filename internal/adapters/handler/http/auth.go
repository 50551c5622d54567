package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openballot/ledger/internal/core/domain"
)

type contextKey string

// AccountKey holds the authenticated caller's account in the request
// context.
const AccountKey contextKey = "account"

// AccountAuth authenticates state-changing requests: a bearer token whose
// sub claim is the caller's account address.
type AccountAuth struct {
	secret []byte
}

func NewAccountAuth(secret string) *AccountAuth {
	return &AccountAuth{secret: []byte(secret)}
}

func (a *AccountAuth) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			writeError(w, http.StatusUnauthorized, "token missing account subject")
			return
		}

		ctx := context.WithValue(r.Context(), AccountKey, domain.Account(sub))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccountFromContext returns the authenticated account, if any.
func AccountFromContext(ctx context.Context) (domain.Account, bool) {
	account, ok := ctx.Value(AccountKey).(domain.Account)
	return account, ok
}
