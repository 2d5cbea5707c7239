// Package i18n translates user facing messages. Message files live in messages/ and
// are embedded at build time, one TOML file per language.
package i18n

import (
	"embed"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/fluxshare/go-fluxshare/internal/config"
	"golang.org/x/text/language"
)

// HeaderAcceptLanguage is the request header the response language is negotiated from.
const HeaderAcceptLanguage = "Accept-Language"

//go:embed messages/*.toml
var messageFiles embed.FS

type Service struct {
	bundle      *i18n.Bundle
	matcher     language.Matcher
	tags        []language.Tag
	defaultLang language.Tag
}

// Data is the template data of a message.
type Data map[string]any

func New(cfg config.I18n) (*Service, error) {
	defaultLang, err := language.Parse(cfg.DefaultLanguage)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid default language %q", cfg.DefaultLanguage)
	}

	bundle := i18n.NewBundle(defaultLang)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(messageFiles, "messages/*.toml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list message files")
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(messageFiles, file); err != nil {
			return nil, errors.Wrapf(err, "failed to load message file %s", path.Base(file))
		}
	}

	// the default language is matched first when nothing else fits
	tags := []language.Tag{defaultLang}
	for _, tag := range bundle.LanguageTags() {
		if tag != defaultLang {
			tags = append(tags, tag)
		}
	}

	return &Service{
		bundle:      bundle,
		matcher:     language.NewMatcher(tags),
		tags:        tags,
		defaultLang: defaultLang,
	}, nil
}

// Translate returns the message for key in lang. Unknown keys are returned as is.
func (s *Service) Translate(key string, lang language.Tag, data ...Data) string {
	var templateData Data
	if len(data) > 0 {
		templateData = data[0]
	}

	localizer := i18n.NewLocalizer(s.bundle, lang.String(), s.defaultLang.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		log.Debug().Err(err).Str("key", key).Str("lang", lang.String()).Msg("Failed to translate message")
		return key
	}

	return msg
}

// ParseAcceptLanguage picks the best supported language for an Accept-Language header.
func (s *Service) ParseAcceptLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return s.defaultLang
	}

	_, idx, _ := s.matcher.Match(tags...)

	return s.tags[idx]
}

// Tags returns the supported languages, the default language first.
func (s *Service) Tags() []language.Tag {
	return append([]language.Tag(nil), s.tags...)
}
