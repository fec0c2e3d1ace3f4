package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/config"
	"github.com/arcanaland/greetcard/internal/generator"
	"github.com/arcanaland/greetcard/internal/pack"
)

// loadPack resolves --pack, then the configured pack, then the built-in pack
func loadPack() (*pack.Pack, error) {
	name := flags.pack
	if name == "" {
		name = app.config.Pack
	}
	if name == "" {
		return pack.Default(), nil
	}

	path, err := config.GetPackPath(name)
	if err != nil {
		return nil, err
	}
	p, err := pack.Load(path)
	if err != nil {
		return nil, err
	}
	if len(p.Fallbacks) > 0 {
		app.log.With("fallbacks", p.Fallbacks).Debug("pack entries taken from the built-in pack")
	}
	return p, nil
}

// newGenerator builds a generator from the active pack. A zero seed keeps the
// random source unseeded; a negative count keeps the configured count.
func newGenerator(seed uint64, decorations int) (*generator.Generator, error) {
	p, err := loadPack()
	if err != nil {
		return nil, err
	}

	if decorations < 0 {
		decorations = app.config.DecorationCount
	}
	opts := []generator.Option{generator.WithDecorationCount(decorations)}
	if seed != 0 {
		opts = append(opts, generator.WithSeed(seed))
	}
	return generator.New(p, opts...), nil
}

// newProvider builds the named AI adapter with its configured endpoint and stored key
func newProvider(name string) (ai.Provider, error) {
	key, _, err := app.creds.Get(name)
	if err != nil {
		return nil, err
	}

	switch name {
	case ai.GoogleName:
		return ai.NewGoogle(ai.Options{
			BaseURL: app.config.Google.BaseURL,
			Model:   app.config.Google.Model,
			APIKey:  key,
			Logger:  app.log,
		}), nil
	case ai.ZhipuName:
		return ai.NewZhipu(ai.Options{
			BaseURL: app.config.Zhipu.BaseURL,
			Model:   app.config.Zhipu.Model,
			APIKey:  key,
			Logger:  app.log,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q, expected google or zhipu", name)
	}
}

func newPhotoService() *ai.PhotoService {
	return ai.NewPhotoService(ai.Options{
		BaseURL: app.config.Photos.BaseURL,
		Logger:  app.log,
	})
}

// cardRequest is the validated form of the card flags shared by generate and session
type cardRequest struct {
	Type        string `validate:"omitempty,card_type"`
	Theme       string `validate:"omitempty,card_theme"`
	To          string `validate:"max=40"`
	From        string `validate:"max=40"`
	Decorations int    `validate:"gte=-1,lte=200"`
}

func (r cardRequest) validate() error {
	err := config.GetValidator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "card_type":
		return fmt.Errorf("unknown card type: %v (one of %s)", fe.Value(), joinTypes(card.AllTypes()))
	case "card_theme":
		return fmt.Errorf("unknown theme: %v (one of %s)", fe.Value(), joinTypes(card.AllThemes()))
	case "max":
		return fmt.Errorf("--%s is longer than %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Errorf("invalid --%s: %v", strings.ToLower(fe.Field()), fe.Value())
	}
}

// resolveTypeAndTheme parses flag values, falling back to the configured defaults
func resolveTypeAndTheme(typeName, themeName string) (card.Type, card.Theme, error) {
	t := app.config.CardType()
	if typeName != "" {
		parsed, err := card.ParseType(typeName)
		if err != nil {
			return "", "", fmt.Errorf("%w (one of %s)", err, joinTypes(card.AllTypes()))
		}
		t = parsed
	}

	theme := app.config.Theme()
	if themeName != "" {
		parsed, err := card.ParseTheme(themeName)
		if err != nil {
			return "", "", fmt.Errorf("%w (one of %s)", err, joinTypes(card.AllThemes()))
		}
		theme = parsed
	}
	return t, theme, nil
}

func joinTypes[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
