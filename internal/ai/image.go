package ai

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/logger"
)

// DefaultPhotoBaseURL is the keyword photo service
const DefaultPhotoBaseURL = "https://source.unsplash.com"

const photoSize = "800x450"

// ImageSource tells which step of the pipeline produced an image
type ImageSource int

const (
	// ImageFromPhotoService is a keyword photo resolved after a description was generated
	ImageFromPhotoService ImageSource = iota
	// ImageDefault is the static image of the card category
	ImageDefault
)

func (s ImageSource) String() string {
	switch s {
	case ImageFromPhotoService:
		return "photo-service"
	case ImageDefault:
		return "default"
	default:
		return "unknown"
	}
}

// ImageResult is the outcome of the image pipeline. URL is never empty.
type ImageResult struct {
	URL         string      `json:"url" yaml:"url"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Source      ImageSource `json:"-" yaml:"-"`
}

// image categories shared by keyword queries and default images
const (
	categoryGreeting    = "greeting"
	categoryBirthday    = "birthday"
	categoryThankYou    = "thankyou"
	categoryCelebration = "celebration"
	categoryLove        = "love"
)

var categories = map[card.Type]string{
	card.Birthday:        categoryBirthday,
	card.Wedding:         categoryLove,
	card.Valentine:       categoryLove,
	card.Congratulations: categoryCelebration,
	card.NewYear:         categoryCelebration,
	card.ThankYou:        categoryThankYou,
	card.Christmas:       categoryGreeting,
	card.Custom:          categoryGreeting,
}

var categoryKeywords = map[string]string{
	categoryGreeting:    "celebration,flowers,love",
	categoryBirthday:    "birthday,cake,balloons",
	categoryThankYou:    "flowers,gratitude,appreciation",
	categoryCelebration: "confetti,fireworks,party",
	categoryLove:        "hearts,romantic,flowers",
}

// typeKeywords are card types whose photos deserve a narrower query than their category
var typeKeywords = map[card.Type]string{
	card.Christmas: "christmas,snow,tree",
	card.NewYear:   "fireworks,newyear,celebration",
	card.Wedding:   "wedding,rings,flowers",
}

const defaultImageQuery = "?auto=format&fit=crop&q=80&w=800&h=450"

var defaultImages = map[string]string{
	categoryGreeting:    "https://images.unsplash.com/photo-1518199266791-5375a83190b7" + defaultImageQuery,
	categoryBirthday:    "https://images.unsplash.com/photo-1558636508-e0db3814bd1d" + defaultImageQuery,
	categoryThankYou:    "https://images.unsplash.com/photo-1518176258769-f227c798150e" + defaultImageQuery,
	categoryCelebration: "https://images.unsplash.com/photo-1530103862676-de8c9debad1d" + defaultImageQuery,
	categoryLove:        "https://images.unsplash.com/photo-1518199266791-5375a83190b7" + defaultImageQuery,
}

func categoryFor(t card.Type) string {
	if c, ok := categories[t]; ok {
		return c
	}
	return categoryGreeting
}

// Keywords returns the comma separated photo query for a card type
func Keywords(t card.Type) string {
	if k, ok := typeKeywords[t]; ok {
		return k
	}
	return categoryKeywords[categoryFor(t)]
}

// DefaultImageURL returns the static image of the card type's category
func DefaultImageURL(t card.Type) string {
	return defaultImages[categoryFor(t)]
}

// PhotoService resolves keyword queries against a random-photo endpoint that
// answers with a redirect to the chosen photo.
type PhotoService struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewPhotoService creates a PhotoService. opts.Model and opts.APIKey are ignored.
func NewPhotoService(opts Options) *PhotoService {
	client := *opts.httpClient()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultPhotoBaseURL
	}
	return &PhotoService{baseURL: base, client: &client, log: opts.logger().With("component", "photos")}
}

// Lookup returns the photo URL for the card type's keywords. The redirect
// target is reported when there is one, otherwise the query URL itself.
func (s *PhotoService) Lookup(ctx context.Context, t card.Type) (string, error) {
	query := s.baseURL + "/" + photoSize + "/?" + Keywords(t) + "&sig=" + url.QueryEscape(uuid.NewString()[:8])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return "", &ProviderError{Provider: "photos", Message: "build request", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "photos", Message: "request failed", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		location, err := resp.Location()
		if err != nil {
			return "", &ProviderError{Provider: "photos", StatusCode: resp.StatusCode, Message: "redirect without location", Err: err}
		}
		return location.String(), nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return query, nil
	default:
		return "", &ProviderError{Provider: "photos", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
}

// ImagePipeline picks a card image: describe the scene with a provider, then
// query the photo service, then fall back to the category default.
type ImagePipeline struct {
	describer Provider
	photos    *PhotoService
	log       *logger.Logger
}

// NewImagePipeline creates a pipeline. A nil photo service skips the photo step.
func NewImagePipeline(describer Provider, photos *PhotoService, log *logger.Logger) *ImagePipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &ImagePipeline{describer: describer, photos: photos, log: log.With("component", "image")}
}

// GenerateImageForCard always returns a usable image
func (p *ImagePipeline) GenerateImageForCard(ctx context.Context, t card.Type, theme string) ImageResult {
	fallback := ImageResult{URL: DefaultImageURL(t), Source: ImageDefault}

	if p.describer == nil {
		return fallback
	}
	description, err := p.describer.GenerateImageDescription(ctx, t, theme)
	if err != nil {
		p.log.With("card_type", string(t)).Error(err, "image description failed, using default image")
		return fallback
	}
	fallback.Description = description

	if p.photos == nil {
		return fallback
	}
	photo, err := p.photos.Lookup(ctx, t)
	if err != nil {
		p.log.With("card_type", string(t)).Error(err, "photo lookup failed, using default image")
		return fallback
	}

	return ImageResult{URL: photo, Description: description, Source: ImageFromPhotoService}
}
