package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFormatYen(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "¥0"},
		{100, "¥100"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{-5000, "-¥5,000"},
	}
	for _, tt := range tests {
		if got := FormatYen(tt.in); got != tt.want {
			t.Errorf("FormatYen(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlashLevels(t *testing.T) {
	// The layout renders class="flash-{{.Level}}"; the stylesheet only
	// knows flash-success and flash-error.
	if FlashSuccess != "success" {
		t.Fatalf("FlashSuccess = %q", FlashSuccess)
	}
	if FlashError != "error" {
		t.Fatalf("FlashError = %q", FlashError)
	}

	rec := httptest.NewRecorder()
	SetFlash(rec, FlashSuccess, "record_created")
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			req.AddCookie(c)
		}
	}
	f := PopFlash(httptest.NewRecorder(), req)
	if f == nil || f.Level != FlashSuccess || f.Code != "record_created" {
		t.Fatalf("unexpected flash %+v", f)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, FlashError, "delete_failed")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("flash cookie not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	f := PopFlash(rec2, req)
	if f == nil {
		t.Fatal("expected flash")
	}
	if f.Level != "error" || f.Code != "delete_failed" {
		t.Fatalf("unexpected flash %+v", f)
	}

	// clearing cookie must be queued
	cleared := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestPopFlash_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if f := PopFlash(httptest.NewRecorder(), req); f != nil {
		t.Fatalf("expected nil flash, got %+v", f)
	}
}
