// Package generator produces transient synthetic dating profiles. It combines
// randomized seed selection, a prompt template, a text-generation call, and
// an image-URL builder. Generation is total: every failure path substitutes a
// fixed fallback profile, so callers never see an error.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"swipestack/internal/textgen"
)

const (
	// temperature is raised above the default for creative variance.
	temperature = 1.1

	// chaosChance is the probability of drawing the surreal template.
	chaosChance = 0.05

	imageBaseURL = "https://gen.pollinations.ai/image"
)

// Profile is a generated record ready for insertion: an opaque serialized
// payload plus a fully-formed image URL.
type Profile struct {
	ID       string
	Data     string
	ImageURL string
}

// Generator draws seeds, prompts the text model, and assembles profiles.
type Generator struct {
	client   textgen.Client
	imageKey string
	rng      *rand.Rand
}

// New builds a Generator. imageKey is the optional image-service API key.
func New(client textgen.Client, imageKey string) *Generator {
	return &Generator{
		client:   client,
		imageKey: imageKey,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Generate produces one profile. It never fails: when the model call or the
// response parse goes wrong the fixed fallback payload is used instead.
func (g *Generator) Generate(ctx context.Context) Profile {
	s := g.drawSeeds()
	prompt := renderPrompt(s)

	payload := g.generatePayload(ctx, prompt)

	imagePrompt, _ := payload["image_prompt"].(string)
	if imagePrompt == "" {
		name, _ := payload["name"].(string)
		imagePrompt = fmt.Sprintf("A photo of %s", name)
	}

	// The payload came from json.Unmarshal (or the static fallback), so
	// re-marshalling cannot fail.
	data, _ := json.Marshal(payload)

	return Profile{
		ID:       uuid.NewString(),
		Data:     string(data),
		ImageURL: BuildImageURL(imagePrompt, g.imageKey),
	}
}

func (g *Generator) drawSeeds() seeds {
	s := seeds{
		Domain:     domains[g.rng.IntN(len(domains))],
		Trait:      coreTraits[g.rng.IntN(len(coreTraits))],
		Interest:   interests[g.rng.IntN(len(interests))],
		NameLetter: string(rune('A' + g.rng.IntN(26))),
		Chaos:      g.rng.Float64() < chaosChance,
	}
	if s.Chaos {
		s.NameOrigin = chaosNameOrigins[g.rng.IntN(len(chaosNameOrigins))]
	} else {
		s.NameOrigin = normalNameOrigins[g.rng.IntN(len(normalNameOrigins))]
	}
	return s
}

func (g *Generator) generatePayload(ctx context.Context, prompt string) map[string]any {
	text, err := g.client.Generate(ctx, prompt, temperature)
	if err != nil {
		log.Warn().Err(err).Msg("text generation failed, using fallback profile")
		return fallbackPayload()
	}

	payload, err := ExtractJSONObject(text)
	if err != nil {
		log.Warn().Err(err).Str("response", truncate(text, 80)).
			Msg("could not parse model response, using fallback profile")
		return fallbackPayload()
	}
	return payload
}

// ExtractJSONObject finds the first brace-delimited span in free-form model
// output and parses it as a JSON object. The model may wrap its JSON in
// prose, so everything before the first '{' and after the last '}' is
// discarded before parsing.
func ExtractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("parse extracted JSON: %w", err)
	}
	return payload, nil
}

// fallbackPayload is the profile served when generation fails. Sustained
// generation-service failure shows up to users as a deck full of these.
func fallbackPayload() map[string]any {
	return map[string]any{
		"name":         "Glitchy Gary",
		"age":          99,
		"tagline":      "I broke the AI.",
		"bio":          "Something went wrong generating me. Swipe left.",
		"image_prompt": "A glitch art portrait of a robot",
	}
}

// BuildImageURL formats a pollinations.ai image URL for the given prompt.
// The query parameters are fixed; key is appended only when configured.
func BuildImageURL(prompt, apiKey string) string {
	params := []string{
		"model=flux",
		"nologo=true",
		"private=true",
		"width=512",
		"height=768",
	}
	if apiKey != "" {
		params = append(params, "key="+apiKey)
	}
	return fmt.Sprintf("%s/%s?%s", imageBaseURL, url.PathEscape(prompt), strings.Join(params, "&"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
