package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBundle(t *testing.T, dir, locale, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, locale+".json"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing bundle: %v", err)
	}
}

func TestBundleLoadAndFallback(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en", `{"login": "Login"}`)
	writeBundle(t, dir, "de", `{"login": "Anmelden"}`)
	svc := NewTranslationService(dir, testLogger())

	bundle, err := svc.Bundle("de")
	if err != nil {
		t.Fatalf("Bundle(de): %v", err)
	}
	if bundle["login"] != "Anmelden" {
		t.Fatalf("de bundle: got %v", bundle["login"])
	}

	bundle, err = svc.Bundle("fr")
	if err != nil {
		t.Fatalf("Bundle(fr) must fall back to en: %v", err)
	}
	if bundle["login"] != "Login" {
		t.Fatalf("fallback bundle: got %v", bundle["login"])
	}

	bundle, err = svc.Bundle("")
	if err != nil {
		t.Fatalf("Bundle empty locale: %v", err)
	}
	if bundle["login"] != "Login" {
		t.Fatalf("empty locale must resolve to en, got %v", bundle["login"])
	}
}

func TestBundleCachesAcrossReads(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "en", `{"login": "Login"}`)
	svc := NewTranslationService(dir, testLogger())

	if _, err := svc.Bundle("en"); err != nil {
		t.Fatalf("Bundle(en): %v", err)
	}
	// Remove the file; a cached bundle must still resolve.
	if err := os.Remove(filepath.Join(dir, "en.json")); err != nil {
		t.Fatalf("removing bundle: %v", err)
	}
	bundle, err := svc.Bundle("en")
	if err != nil {
		t.Fatalf("cached Bundle(en): %v", err)
	}
	if bundle["login"] != "Login" {
		t.Fatalf("cached bundle: got %v", bundle["login"])
	}
}

func TestBundleMissingDefault(t *testing.T) {
	svc := NewTranslationService(t.TempDir(), testLogger())
	if _, err := svc.Bundle("en"); err == nil {
		t.Fatalf("want error when the default bundle is missing")
	}
}
