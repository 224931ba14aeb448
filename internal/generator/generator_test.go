package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns a canned response or error for every prompt.
type stubClient struct {
	text string
	err  error

	lastPrompt string
	lastTemp   float64
}

func (s *stubClient) Generate(_ context.Context, prompt string, temp float64) (string, error) {
	s.lastPrompt = prompt
	s.lastTemp = temp
	return s.text, s.err
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "clean JSON",
			in:   `{"name": "Vera", "age": 23}`,
			want: map[string]any{"name": "Vera", "age": float64(23)},
		},
		{
			name: "JSON wrapped in prose",
			in:   "Sure! Here is your profile:\n```json\n{\"name\": \"Moss\"}\n```\nEnjoy!",
			want: map[string]any{"name": "Moss"},
		},
		{
			name:    "garbage",
			in:      "I refuse to answer that.",
			wantErr: true,
		},
		{
			name:    "empty string",
			in:      "",
			wantErr: true,
		},
		{
			name:    "braces with invalid content",
			in:      "{not json at all}",
			wantErr: true,
		},
		{
			name:    "closing brace before opening",
			in:      "} oops {",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateNeverFails(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
	}{
		{"service error", &stubClient{err: fmt.Errorf("upstream down")}},
		{"garbage response", &stubClient{text: "beep boop no json here"}},
		{"non-object JSON", &stubClient{text: `["a", "b"]`}},
		{"empty response", &stubClient{text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.client, "")
			p := g.Generate(context.Background())

			require.NotEmpty(t, p.ID)
			require.NotEmpty(t, p.ImageURL)

			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(p.Data), &payload))
			assert.Equal(t, "Glitchy Gary", payload["name"])
			assert.Equal(t, "I broke the AI.", payload["tagline"])
		})
	}
}

func TestGenerateUsesModelPayload(t *testing.T) {
	client := &stubClient{text: `Here you go: {"name": "Fern", "age": 24, "image_prompt": "a portrait of Fern in a greenhouse"}`}
	g := New(client, "")

	p := g.Generate(context.Background())

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(p.Data), &payload))
	assert.Equal(t, "Fern", payload["name"])

	assert.Equal(t, 1.1, client.lastTemp)
	assert.Contains(t, p.ImageURL, "a%20portrait%20of%20Fern%20in%20a%20greenhouse")
}

func TestGenerateFallsBackToNameImagePrompt(t *testing.T) {
	client := &stubClient{text: `{"name": "Moss"}`}
	g := New(client, "")

	p := g.Generate(context.Background())
	assert.Contains(t, p.ImageURL, "A%20photo%20of%20Moss")
}

func TestGenerateDistinctIDs(t *testing.T) {
	client := &stubClient{text: `{"name": "Vera"}`}
	g := New(client, "")

	a := g.Generate(context.Background())
	b := g.Generate(context.Background())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuildImageURL(t *testing.T) {
	got := BuildImageURL("a glitch art portrait", "")
	assert.Equal(t,
		"https://gen.pollinations.ai/image/a%20glitch%20art%20portrait?model=flux&nologo=true&private=true&width=512&height=768",
		got)
}

func TestBuildImageURLWithKey(t *testing.T) {
	got := BuildImageURL("portrait", "secret123")
	assert.True(t, strings.HasSuffix(got, "&key=secret123"), got)
}

func TestRenderPromptContainsSeeds(t *testing.T) {
	s := seeds{
		NameOrigin: "Botanical",
		NameLetter: "F",
		Domain:     "Mycology",
		Trait:      "Old Soul",
		Interest:   "Moss",
	}

	prompt := renderPrompt(s)
	assert.Contains(t, prompt, "witty ghostwriter")
	assert.Contains(t, prompt, "Origin/Vibe: Botanical")
	assert.Contains(t, prompt, "Must Start With Letter: F")
	assert.Contains(t, prompt, "Domain: Mycology")
	assert.Contains(t, prompt, "Core Trait: Old Soul")
	assert.Contains(t, prompt, "Interest: Moss")
}

func TestRenderPromptChaosTemplate(t *testing.T) {
	s := seeds{
		NameOrigin: "Eldritch Horror",
		NameLetter: "Z",
		Domain:     "Liminal Spaces",
		Trait:      "Vaguely Threatening",
		Interest:   "Cryptids",
		Chaos:      true,
	}

	prompt := renderPrompt(s)
	assert.Contains(t, prompt, "surrealist first person writer")
	assert.Contains(t, prompt, "Origin/Vibe: Eldritch Horror")
	assert.NotContains(t, prompt, "witty ghostwriter")
}

func TestDrawSeedsChaosOriginList(t *testing.T) {
	g := New(&stubClient{}, "")

	chaosSet := make(map[string]bool, len(chaosNameOrigins))
	for _, o := range chaosNameOrigins {
		chaosSet[o] = true
	}
	normalSet := make(map[string]bool, len(normalNameOrigins))
	for _, o := range normalNameOrigins {
		normalSet[o] = true
	}

	sawChaos := false
	for i := 0; i < 2000; i++ {
		s := g.drawSeeds()
		if s.Chaos {
			sawChaos = true
			assert.True(t, chaosSet[s.NameOrigin], "chaos seed drew origin %q from the wrong list", s.NameOrigin)
		} else {
			assert.True(t, normalSet[s.NameOrigin], "normal seed drew origin %q from the wrong list", s.NameOrigin)
		}
		assert.Len(t, s.NameLetter, 1)
		assert.GreaterOrEqual(t, s.NameLetter[0], byte('A'))
		assert.LessOrEqual(t, s.NameLetter[0], byte('Z'))
	}
	assert.True(t, sawChaos, "expected at least one chaos draw in 2000 tries")
}
