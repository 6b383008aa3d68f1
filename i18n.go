package jsonbind

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns an initialized internationalization bundle with the
// embedded locale files, for rendering an Error's Reason as a
// human-readable message via Error.Localize.
func GetI18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	err := bundle.LoadFS(localesFS, "locales/*.json")

	return bundle, err
}

// Localize renders e's Reason through localizer, falling back to
// e.Error() when localizer is nil or the reason has no translation.
func (e *Error) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	vars := map[string]any{
		"Offset": e.Offset,
		"Path":   e.Path,
	}
	return localizer.Get(e.Reason.String(), i18n.Vars(vars))
}
