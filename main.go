package main

import (
	"embed"

	"github.com/jeandeaual/go-locale"
	"github.com/lumocms/themehub/cmd"
	"github.com/lumocms/themehub/internal/config"
	"github.com/lumocms/themehub/internal/i18n"
)

//go:embed locales/*.json
var localeFS embed.FS

func main() {
	lang := getLocale()
	i18n.Init(localeFS, lang)

	cmd.Execute()
}

// getLocale returns the locale based on config
func getLocale() string {
	configLocale := config.GetLocale()

	// If "auto", detect system locale
	if configLocale == "auto" {
		userLocale, err := locale.GetLocale()
		if err != nil || userLocale == "" {
			return "en-US"
		}
		return userLocale
	}

	return configLocale
}
