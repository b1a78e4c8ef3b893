package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/openpress/openpress-backend/internal/logger"
)

const defaultLocale = "en"

// TranslationService loads locale bundles from disk and caches them for the
// lifetime of the process. Unknown locales fall back to English.
type TranslationService interface {
	Bundle(locale string) (map[string]any, error)
}

type translationService struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]map[string]any
	log   *logger.Logger
}

func NewTranslationService(dir string, baseLog *logger.Logger) TranslationService {
	return &translationService{
		dir:   dir,
		cache: make(map[string]map[string]any),
		log:   baseLog.With("service", "TranslationService"),
	}
}

func (ts *translationService) Bundle(locale string) (map[string]any, error) {
	if locale == "" {
		locale = defaultLocale
	}
	if bundle, ok := ts.cached(locale); ok {
		return bundle, nil
	}
	bundle, err := ts.load(locale)
	if err != nil {
		if locale == defaultLocale {
			return nil, err
		}
		ts.log.Warn("locale bundle missing, falling back", "locale", locale, "error", err)
		return ts.Bundle(defaultLocale)
	}
	ts.mu.Lock()
	ts.cache[locale] = bundle
	ts.mu.Unlock()
	return bundle, nil
}

func (ts *translationService) cached(locale string) (map[string]any, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	bundle, ok := ts.cache[locale]
	return bundle, ok
}

func (ts *translationService) load(locale string) (map[string]any, error) {
	path := filepath.Join(ts.dir, locale+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading locale bundle %s: %w", path, err)
	}
	var bundle map[string]any
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("parsing locale bundle %s: %w", path, err)
	}
	return bundle, nil
}
