// Package i18n resolves user-facing strings for the supported languages.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// PreferenceKey is the LocalStore key of the chosen language.
const PreferenceKey = "preferredLanguage"

const fallback = "en"

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed locales/*.json
var embedded embed.FS

var (
	supported = []string{"en", "zh"}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Chinese})
)

type Options struct {
	// Dir overrides the embedded catalogs with <Dir>/<lang>.json when set.
	Dir string
	// Language is the configured language; empty means detect.
	Language string
	Store    core.LocalStore
	Logger   zerolog.Logger
}

// Catalog is a Translator over per-language key/value tables.
type Catalog struct {
	dir    string
	store  core.LocalStore
	logger zerolog.Logger

	mu     sync.RWMutex
	lang   string
	tables map[string]map[string]string
}

// New picks the stored preference, then the configured language, then the
// environment, falling back to English.
func New(ctx context.Context, opts Options) (*Catalog, error) {
	c := &Catalog{
		dir:    opts.Dir,
		store:  opts.Store,
		logger: opts.Logger.With().Str("module", "i18n").Logger(),
		tables: make(map[string]map[string]string),
	}
	if err := c.load(fallback); err != nil {
		return nil, err
	}
	candidates := []string{opts.Language, envLanguage()}
	if c.store != nil {
		if pref, err := c.store.Get(ctx, PreferenceKey); err == nil {
			candidates = append([]string{pref}, candidates...)
		}
	}
	lang := Match(candidates...)
	if err := c.load(lang); err != nil {
		c.logger.Warn().Err(err).Str("lang", lang).Msg("falling back to english")
		lang = fallback
	}
	c.lang = lang
	c.logger.Info().Str("lang", lang).Msg("language selected")
	return c, nil
}

// Match returns the best supported language for the given preferences.
func Match(prefs ...string) string {
	var tags []string
	for _, p := range prefs {
		if p = normalize(p); p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return fallback
	}
	_, idx := language.MatchStrings(matcher, tags...)
	return supported[idx]
}

// Supported lists the language codes with a catalog.
func Supported() []string {
	return append([]string(nil), supported...)
}

func normalize(s string) string {
	s, _, _ = strings.Cut(s, ".")
	s = strings.ReplaceAll(s, "_", "-")
	if s == "C" || s == "POSIX" {
		return ""
	}
	return s
}

func envLanguage() string {
	for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func isSupported(lang string) bool {
	for _, s := range supported {
		if s == lang {
			return true
		}
	}
	return false
}

func (c *Catalog) load(lang string) error {
	c.mu.RLock()
	_, ok := c.tables[lang]
	c.mu.RUnlock()
	if ok {
		return nil
	}
	data, err := c.read(lang)
	if err != nil {
		return err
	}
	table := make(map[string]string)
	if err := json.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("parse %s catalog: %w", lang, err)
	}
	c.mu.Lock()
	c.tables[lang] = table
	c.mu.Unlock()
	c.logger.Debug().Str("lang", lang).Int("keys", len(table)).Msg("catalog loaded")
	return nil
}

func (c *Catalog) read(lang string) ([]byte, error) {
	if c.dir != "" {
		data, err := os.ReadFile(filepath.Join(c.dir, lang+".json"))
		if err == nil {
			return data, nil
		}
		c.logger.Warn().Err(err).Str("lang", lang).Msg("using embedded catalog")
	}
	return embedded.ReadFile("locales/" + lang + ".json")
}

func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// SetLanguage switches catalogs and persists the preference.
func (c *Catalog) SetLanguage(ctx context.Context, lang string) error {
	if !isSupported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if err := c.load(lang); err != nil {
		return err
	}
	c.mu.Lock()
	c.lang = lang
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Set(ctx, PreferenceKey, lang); err != nil {
			c.logger.Error().Err(err).Msg("persist language preference")
		}
	}
	c.logger.Info().Str("lang", lang).Msg("language changed")
	return nil
}

// T returns the translation of key, or key itself when no catalog has it.
func (c *Catalog) T(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.tables[c.lang][key]; ok && v != "" {
		return v
	}
	return key
}

// Format translates key and replaces {name} placeholders from name/value pairs.
func (c *Catalog) Format(key string, pairs ...string) string {
	s := c.T(key)
	if len(pairs) < 2 {
		return s
	}
	old := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		old = append(old, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(old...).Replace(s)
}

var _ core.Translator = (*Catalog)(nil)
