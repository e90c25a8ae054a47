package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

var (
	translatorOnce sync.Once
	translator     *I18n
	defaultLang    = cnst.LangDefault

	supportedLangs = []string{cnst.LangEN, cnst.LangZH}
)

// SetDefaultLanguage sets the default language for error messages
func SetDefaultLanguage(lang string) {
	defaultLang = lang
}

// InitTranslator initializes the global translator with the embedded bundles
// plus any *.toml files found in extraDir. A missing extraDir is not an error.
func InitTranslator(extraDir string) error {
	var initErr error
	translatorOnce.Do(func() {
		translator = NewI18n(language.English)
		if initErr = translator.LoadFS(locales, "locales"); initErr != nil {
			return
		}
		if extraDir == "" {
			return
		}
		if err := translator.LoadTranslations(extraDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			initErr = err
		}
	})
	return initErr
}

// GetTranslator returns the global translator
func GetTranslator() *I18n {
	_ = InitTranslator("")
	return translator
}

// I18n manages internationalization and translations
type I18n struct {
	bundle      *i18n.Bundle
	defaultLang language.Tag
}

// NewI18n creates a new I18n instance with the specified default language
func NewI18n(defaultLang language.Tag) *I18n {
	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	return &I18n{
		bundle:      bundle,
		defaultLang: defaultLang,
	}
}

// LoadFS loads every *.toml file in dir of fsys
func (i *I18n) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read embedded translations: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		if _, err := i.bundle.LoadMessageFileFS(fsys, path.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("failed to load %s: %w", e.Name(), err)
		}
	}
	return nil
}

// LoadTranslations loads translation files from the specified directory
func (i *I18n) LoadTranslations(translationsDir string) error {
	files, err := os.ReadDir(translationsDir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}
		if _, err := i.bundle.LoadMessageFile(filepath.Join(translationsDir, file.Name())); err != nil {
			return fmt.Errorf("failed to load %s: %w", file.Name(), err)
		}
	}

	return nil
}

// Translate returns a localized string for the given message ID and language.
// The message ID itself is returned when no translation exists.
func (i *I18n) Translate(msgID string, lang string, templateData map[string]interface{}) string {
	localizer := i18n.NewLocalizer(i.bundle, lang, i.defaultLang.String())

	lc := &i18n.LocalizeConfig{MessageID: msgID}
	if len(templateData) > 0 {
		lc.TemplateData = templateData
	}

	msg, err := localizer.Localize(lc)
	if err != nil {
		return msgID
	}
	return msg
}

// LanguageFromRequest extracts the language preference from the X-Lang header,
// then Accept-Language, falling back to the default language
func LanguageFromRequest(r *http.Request) string {
	if lang := r.Header.Get(cnst.XLang); lang != "" {
		return normalizeLang(lang)
	}

	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		first := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
		return normalizeLang(first)
	}

	return defaultLang
}

func normalizeLang(lang string) string {
	code := strings.ToLower(strings.Split(lang, "-")[0])
	for _, supported := range supportedLangs {
		if code == supported {
			return code
		}
	}
	return defaultLang
}

func langFromContext(c *gin.Context) string {
	if v, ok := c.Get(cnst.XLang); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return defaultLang
}

// TranslateMessage translates a message ID using the context's language preference
func TranslateMessage(c *gin.Context, msgID string, data map[string]interface{}) string {
	return GetTranslator().Translate(msgID, langFromContext(c), data)
}
