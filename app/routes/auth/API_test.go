package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth() *Auth {
	return &Auth{
		Store:      newMemStore(),
		Tokens:     NewTokenService("test-secret", time.Hour),
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestApp(a *Auth) *fiber.App {
	app := fiber.New()
	SetupAuthRoutes(app, a)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding body %q: %v", raw, err)
	}
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestRegisterAPI(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"teacher", `{"email":"alice@example.com","password":"secret123","role":"teacher"}`, 201},
		{"default role is student", `{"email":"bob@example.com","password":"secret123"}`, 201},
		{"missing email", `{"password":"secret123"}`, 400},
		{"missing password", `{"email":"carol@example.com"}`, 400},
		{"whitespace email", `{"email":"   ","password":"secret123"}`, 400},
		{"invalid role", `{"email":"dave@example.com","password":"secret123","role":"admin"}`, 400},
		{"malformed body", `{"email":`, 400},
	}

	app := newTestApp(newTestAuth())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/auth/register", tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(newTestAuth())

	first := postJSON(t, app, "/auth/register", `{"email":"alice@example.com","password":"secret123"}`)
	if first.StatusCode != 201 {
		t.Fatalf("first registration: status = %d", first.StatusCode)
	}

	// Same address after normalization.
	second := postJSON(t, app, "/auth/register", `{"email":"  ALICE@example.com ","password":"other456"}`)
	if second.StatusCode != 409 {
		t.Errorf("duplicate registration: status = %d, want 409", second.StatusCode)
	}
}

// Concurrent registrations of one email must yield exactly one success; the
// store's uniqueness guarantee, not a lock in the handler, decides the race.
func TestRegisterConcurrentSameEmail(t *testing.T) {
	app := newTestApp(newTestAuth())

	const n = 8
	statuses := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/auth/register",
				strings.NewReader(`{"email":"alice@example.com","password":"secret123"}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				statuses <- 0
				return
			}
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	created, conflicts := 0, 0
	for code := range statuses {
		switch code {
		case 201:
			created++
		case 409:
			conflicts++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	if created != 1 {
		t.Errorf("%d registrations succeeded, want exactly 1", created)
	}
	if conflicts != n-1 {
		t.Errorf("%d conflicts, want %d", conflicts, n-1)
	}
}

func TestRegisterNeverReturnsHash(t *testing.T) {
	app := newTestApp(newTestAuth())

	resp := postJSON(t, app, "/auth/register", `{"email":"alice@example.com","password":"secret123"}`)
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "$2a$") {
		t.Error("registration response contains a bcrypt digest")
	}
	body := map[string]interface{}{}
	_ = json.Unmarshal(raw, &body)
	if _, ok := body["userId"]; !ok {
		t.Error("registration response missing userId")
	}
}

func TestLoginAPI(t *testing.T) {
	a := newTestAuth()
	app := newTestApp(a)
	postJSON(t, app, "/auth/register", `{"email":"alice@example.com","password":"secret123","role":"teacher"}`)

	t.Run("success sets session cookie", func(t *testing.T) {
		resp := postJSON(t, app, "/auth/login", `{"email":"Alice@Example.com","password":"secret123"}`)
		if resp.StatusCode != 200 {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		cookie := sessionCookie(resp)
		if cookie == nil {
			t.Fatal("no session cookie set")
		}
		if !cookie.HttpOnly {
			t.Error("session cookie is not HttpOnly")
		}
		if cookie.Path != "/" {
			t.Errorf("cookie path = %q, want /", cookie.Path)
		}
		if _, err := a.Tokens.Verify(cookie.Value); err != nil {
			t.Errorf("cookie value is not a valid token: %v", err)
		}

		body := decodeBody(t, resp)
		if body["email"] != "alice@example.com" {
			t.Errorf("email = %v", body["email"])
		}
		if body["role"] != "teacher" {
			t.Errorf("role = %v", body["role"])
		}
		if body["token"] == nil || body["token"] == "" {
			t.Error("response missing token")
		}
	})

	t.Run("unknown email and wrong password answer alike", func(t *testing.T) {
		unknown := postJSON(t, app, "/auth/login", `{"email":"nobody@example.com","password":"secret123"}`)
		wrongPw := postJSON(t, app, "/auth/login", `{"email":"alice@example.com","password":"not-it"}`)

		if unknown.StatusCode != 401 || wrongPw.StatusCode != 401 {
			t.Fatalf("statuses = %d, %d, want 401, 401", unknown.StatusCode, wrongPw.StatusCode)
		}

		a, b := decodeBody(t, unknown), decodeBody(t, wrongPw)
		if a["error"] != b["error"] {
			t.Errorf("error messages differ: %v vs %v", a["error"], b["error"])
		}
	})
}

// In production the session cookie must also carry the Secure flag.
func TestLoginSecureCookieInProduction(t *testing.T) {
	a := &Auth{
		Store:         newMemStore(),
		Tokens:        NewTokenService("test-secret", time.Hour),
		BcryptCost:    bcrypt.MinCost,
		SecureCookies: true,
	}
	app := newTestApp(a)

	postJSON(t, app, "/auth/register", `{"email":"alice@example.com","password":"secret123"}`)
	resp := postJSON(t, app, "/auth/login", `{"email":"alice@example.com","password":"secret123"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("login: status = %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if !cookie.Secure {
		t.Error("session cookie is not Secure")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
}

func TestLogoutAPI(t *testing.T) {
	app := newTestApp(newTestAuth())

	resp := postJSON(t, app, "/auth/logout", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("logout did not touch the session cookie")
	}
	if cookie.Value != "" {
		t.Errorf("cookie value = %q, want empty", cookie.Value)
	}
	if !cookie.Expires.Before(time.Now()) {
		t.Error("cleared cookie is not expired")
	}
}

func TestSessionAPI(t *testing.T) {
	store := newMemStore()
	a := &Auth{
		Store:      store,
		Tokens:     NewTokenService("test-secret", time.Hour),
		BcryptCost: bcrypt.MinCost,
	}
	app := newTestApp(a)
	postJSON(t, app, "/auth/register", `{"email":"alice@example.com","password":"secret123","role":"teacher"}`)
	login := postJSON(t, app, "/auth/login", `{"email":"alice@example.com","password":"secret123"}`)
	cookie := sessionCookie(login)

	t.Run("with session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/session", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		body := decodeBody(t, resp)
		user, ok := body["user"].(map[string]interface{})
		if !ok {
			t.Fatalf("no user object in %v", body)
		}
		if user["email"] != "alice@example.com" || user["role"] != "teacher" {
			t.Errorf("user = %v", user)
		}
	})

	t.Run("without session", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/auth/session", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 401 {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	// A token outlives the account it was issued for; introspection must
	// notice the account is gone.
	t.Run("deactivated account", func(t *testing.T) {
		store.mu.Lock()
		delete(store.users, "alice@example.com")
		store.mu.Unlock()

		req := httptest.NewRequest("GET", "/auth/session", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 401 {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})
}
