package generator

import "fmt"

// promptNormal is the realistic template used for ~95% of profiles.
// Placeholders: name origin, first letter, domain, trait, interest.
const promptNormal = `
You are a witty ghostwriter for a dating app.
Task: Create a **realistic**, charming, and funny profile based on these seed traits.

NAME GENERATION CONSTRAINT:
- Origin/Vibe: %s
- Must Start With Letter: %s
- Instruction: Create a normal or unique name fitting this vibe and letter.

SEEDS:
- Domain: %s
- Core Trait: %s
- Interest: %s

Structure:
{
  "name": "Generated Name",
  "age": (18-25),
  "tagline": "A punchy, relatable hook.",
  "bio": "2-3 sentences. Witty and grounded. Show, don't tell.",
  "likes": ["Example A", "Example B", "Example C"], // Max 1-3 words each, related to domain, trait, and/or intrest
  "dislikes": ["Example X", "Example Y", "Example Z"], // Max 1-3 words each, related to domain, trait, and/or intrest
  "image_prompt": "A description for a **realistic portrait photo**. Cinematic lighting, shallow depth of field. Matches the Domain."
}
Return ONLY RAW JSON.
`

// promptChaos is the low-probability surreal template.
const promptChaos = `
You are a surrealist first person writer.
Task: Take these seed traits and twist them into a **bizarre**, unhinged, and hilarious character.

NAME GENERATION CONSTRAINT:
- Origin/Vibe: %s
- Must Start With Letter: %s
- Instruction: Invent a strange or unexpected name fitting this vibe and letter.

SEEDS:
- Domain: %s
- Core Trait: %s
- Interest: %s

Structure:
{
  "name": "Generated Name",
  "age": (18-999),
  "tagline": "A confusing or concerning hook.",
  "bio": "2-3 sentences. Absurdist humor. Unexpected logic.",
  "likes": ["Chaos Example A", "Chaos Example B"],
  // CONSTRAINT: Abstract concepts or impossible things. Related to the bio and tagline.
  "dislikes": ["Order Example X", "Order Example Y"],
  // CONSTRAINT: Mundane human things or specific laws of physics. Related to the bio and tagline.
  "image_prompt": "A description for a **surreal but realistic portrait photo**. Strange, unique high-fashion or avant-garde photography style."
}
Return ONLY RAW JSON.
`

// seeds are the randomized inputs for one profile prompt.
type seeds struct {
	NameOrigin string
	NameLetter string
	Domain     string
	Trait      string
	Interest   string
	Chaos      bool
}

// renderPrompt fills the matching template with the drawn seeds.
func renderPrompt(s seeds) string {
	tmpl := promptNormal
	if s.Chaos {
		tmpl = promptChaos
	}
	return fmt.Sprintf(tmpl, s.NameOrigin, s.NameLetter, s.Domain, s.Trait, s.Interest)
}
