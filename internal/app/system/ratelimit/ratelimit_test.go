package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowUpToLimit(t *testing.T) {
	l := New(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("hit %d refused", i+1)
		}
	}
	if l.Allow("k") {
		t.Error("4th hit allowed")
	}
	if got := l.Remaining("k"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
	if !l.Allow("other") {
		t.Error("separate key should be independent")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	now := time.Now()
	l.now = func() time.Time { return now }
	if !l.Allow("k") {
		t.Fatal("first hit refused")
	}
	if l.Allow("k") {
		t.Fatal("second hit allowed inside window")
	}

	now = now.Add(time.Minute)
	if !l.Allow("k") {
		t.Error("hit refused after window elapsed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)
	defer l.Stop()

	l.Allow("k")
	l.Reset("k")
	if got := l.Remaining("k"); got != 1 {
		t.Errorf("Remaining after Reset = %d, want 1", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "9.9.9.9:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": " 3.3.3.3 "}, "9.9.9.9:1", "3.3.3.3"},
		{"remote addr", nil, "4.4.4.4:5555", "4.4.4.4"},
		{"remote without port", nil, "5.5.5.5", "5.5.5.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/admin/login", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter_PerUser(t *testing.T) {
	ll := NewLoginLimiter(100, 2)
	defer ll.Stop()
	r := httptest.NewRequest("POST", "/admin/login", nil)

	for i := 0; i < 2; i++ {
		if _, ok := ll.Check(r, "Admin"); !ok {
			t.Fatalf("attempt %d refused", i+1)
		}
	}
	msg, ok := ll.Check(r, " admin ")
	if ok || msg != MsgTooManyForUser {
		t.Errorf("got (%q, %v), want user limit", msg, ok)
	}

	ll.Succeeded("ADMIN")
	if _, ok := ll.Check(r, "admin"); !ok {
		t.Error("attempt refused after Succeeded")
	}
}

func TestLoginLimiter_PerIP(t *testing.T) {
	ll := NewLoginLimiter(1, 100)
	defer ll.Stop()
	r := httptest.NewRequest("POST", "/admin/login", nil)

	if _, ok := ll.Check(r, "a"); !ok {
		t.Fatal("first attempt refused")
	}
	msg, ok := ll.Check(r, "b")
	if ok || msg != MsgTooManyFromIP {
		t.Errorf("got (%q, %v), want IP limit", msg, ok)
	}
}
