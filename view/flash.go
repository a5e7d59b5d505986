package view

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash is a one-shot notification shown by the layout on the next page.
// Every mutation path (create, update, delete) reports its outcome through
// this channel so failures are never silent.
type Flash struct {
	Level string // "success" or "error"
	Code  string // i18n message code
}

// Flash levels; the layout styles them as .flash-<level>.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashCookieName = "flash"

// SetFlash queues a flash message for the next rendered page.
func SetFlash(w http.ResponseWriter, level, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(level + ":" + code),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending flash message, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	level, code, ok := strings.Cut(raw, ":")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Code: code}
}
