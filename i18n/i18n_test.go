package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("ja-JP,ja;q=0.8") != "ja" {
		t.Fatalf("expected ja")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "ja" {
		t.Fatalf("expected ja fallback for unsupported language")
	}
	if DetectLanguage("") != "ja" {
		t.Fatalf("expected default ja")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("ja", "required") != "必須項目です" {
		t.Fatalf("expected Japanese required message")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to ja translation if it exists
	if T("es", "customers") != "得意先" {
		t.Fatalf("expected ja fallback for es lang")
	}
}

func TestLangContext(t *testing.T) {
	ctx := context.Background()
	if LangFromContext(ctx) != "ja" {
		t.Fatalf("expected default ja")
	}
	ctx = WithLang(ctx, "en")
	if LangFromContext(ctx) != "en" {
		t.Fatalf("expected en from context")
	}
}
