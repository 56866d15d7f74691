package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/merchco/counterpos/internal/models"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	token, err := m.Issue(models.Session{Account: "amy", Name: "小美"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.Account != "amy" || got.Name != "小美" {
		t.Errorf("session = %+v; want amy/小美", got)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	other := NewManager([]byte("other"), time.Hour)

	token, err := m.Issue(models.Session{Account: "amy", Name: "小美"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager([]byte("secret"), -time.Minute)

	token, err := m.Issue(models.Session{Account: "amy", Name: "小美"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify error = %v; want ErrInvalidToken", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	if _, err := m.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify error = %v; want ErrInvalidToken", err)
	}
}

func TestFromRequest_CookieFlow(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	rec := httptest.NewRecorder()
	if err := m.SetCookie(rec, models.Session{Account: "amy", Name: "小美"}); err != nil {
		t.Fatalf("SetCookie failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, err := m.FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if got.Account != "amy" {
		t.Errorf("account = %q; want amy", got.Account)
	}
}

func TestFromRequest_NoCookie(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.FromRequest(req); err != ErrInvalidToken {
		t.Errorf("FromRequest error = %v; want ErrInvalidToken", err)
	}
}

func TestClearCookie(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	rec := httptest.NewRecorder()
	m.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != CookieName || cookies[0].MaxAge != -1 {
		t.Errorf("cookie = %+v; want expired %s", cookies[0], CookieName)
	}
}
