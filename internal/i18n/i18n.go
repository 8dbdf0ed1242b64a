// Package i18n resolves the dashboard language (English or Italian) and
// holds the small message catalogue used in API responses.
package i18n

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

const (
	English = "en"
	Italian = "it"

	CookieName     = "dashboard_language"
	CtxLanguageKey = "language"
)

var (
	supported = []language.Tag{language.English, language.Italian}
	codes     = []string{English, Italian}
	matcher   = language.NewMatcher(supported)
)

func Supported() []string {
	return append([]string(nil), codes...)
}

func IsSupported(lang string) bool {
	for _, c := range codes {
		if c == lang {
			return true
		}
	}
	return false
}

// Resolve picks the saved preference when it is valid, then the best match
// for the Accept-Language header, then English.
func Resolve(saved, acceptLanguage string) string {
	saved = strings.ToLower(strings.TrimSpace(saved))
	if IsSupported(saved) {
		return saved
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	return codes[idx]
}

// Middleware stores the resolved language in c.Locals for the handlers below.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(CtxLanguageKey, Resolve(c.Cookies(CookieName), c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

// Lang returns the request language, English when the middleware did not run.
func Lang(c *fiber.Ctx) string {
	if lang, ok := c.Locals(CtxLanguageKey).(string); ok && lang != "" {
		return lang
	}
	return English
}

// GET /api/i18n
func GetLanguageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"language":  Lang(c),
			"supported": Supported(),
		})
	}
}

// PUT /api/i18n
func SetLanguageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Language string `json:"language"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		lang := strings.ToLower(strings.TrimSpace(body.Language))
		if !IsSupported(lang) {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported language, use 'en' or 'it'")
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    lang,
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(CtxLanguageKey, lang)

		return c.JSON(fiber.Map{
			"language": lang,
			"message":  T(lang, "language.saved"),
		})
	}
}
