package testutil

import (
	"database/sql"
	"net/http"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"

	"personDirectory/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database. The DB is closed via
// t.Cleanup. A shared-cache memory database is used so that every pooled
// connection sees the same database.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a signed JWT string with the minimal claims used
// by the app.
func GenerateJWTHS256(t *testing.T, secret, name, kind string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"name": name,
		"kind": kind,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// ReqWithBearer sets the Authorization header of the request to a Bearer
// token and returns the request for chaining.
func ReqWithBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
