package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"go-posthunt-automation/internal/browser"
)

// Extraction holds the structured hiring fields pulled from one post.
// Every field is populated (defaulted if unknown) regardless of which
// extraction path produced it, so downstream code never branches on absence.
type Extraction struct {
	RoleTitle          string    `json:"role_title"`
	MinYearsExperience *int      `json:"min_years_experience"`
	MaxYearsExperience *int      `json:"max_years_experience"`
	Skills             SkillList `json:"skills"`
	Location           string    `json:"location"`
	JobType            string    `json:"job_type"` //full-time/part-time/intern/contract
	Contact            string    `json:"contact"`  //email/URL if present
	VerdictRelevant    bool      `json:"verdict_relevant"`
}

// SkillList tolerates models returning skills as a JSON array, a
// comma-separated string, or null.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = cleanSkills(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*s = cleanSkills(strings.Split(joined, ","))
		return nil
	}

	//mixed-type array, e.g. ["SQL", 2]
	var raw []any
	if err := json.Unmarshal(data, &raw); err == nil {
		parts := make([]string, 0, len(raw))
		for _, v := range raw {
			parts = append(parts, fmt.Sprint(v))
		}
		*s = cleanSkills(parts)
		return nil
	}

	return fmt.Errorf("skills: unsupported shape %s", string(data))
}

func cleanSkills(parts []string) SkillList {
	out := make(SkillList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

const (
	llmAttempts = 2
	pacingEvery = 5
)

// Phrase sets for the deterministic fallback gate. Independently defined
// from the prompt's gate; the two are best-effort approximations that may
// disagree on the same text.
var (
	rolePhrases       = []string{"data analyst", "junior data analyst"}
	experiencePhrases = []string{"0-2", "0 to 2", "freshers", "fresher", "entry level", "junior"}
)

// Extractor classifies post text through the LLM service, degrading to the
// keyword heuristic on any service error.
type Extractor struct {
	client    *Client
	pacing    browser.Pacing
	processed int
}

func NewExtractor(client *Client, pacing browser.Pacing) *Extractor {
	return &Extractor{client: client, pacing: pacing}
}

// ClassifyAndExtract never fails outward: the worst outcome is a defaulted,
// not-relevant Extraction. Every 5th call inserts a pacing delay to avoid
// bursts against the service.
func (e *Extractor) ClassifyAndExtract(ctx context.Context, text string) Extraction {
	result, err := e.fromService(ctx, text)
	if err != nil {
		log.Printf("    ⚠️ LLM extraction failed (%v), using keyword fallback", err)
		result = HeuristicExtraction(text)
	}
	if result.Skills == nil {
		result.Skills = SkillList{}
	}

	e.processed++
	if e.processed%pacingEvery == 0 {
		e.pacing.Wait()
	}
	return result
}

func (e *Extractor) fromService(ctx context.Context, text string) (Extraction, error) {
	var lastErr error
	for attempt := 0; attempt < llmAttempts; attempt++ {
		raw, err := e.client.Generate(ctx, BuildPrompt(text))
		if err != nil {
			lastErr = err
			continue
		}
		parsed, err := ParseExtraction(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return parsed, nil
	}
	return Extraction{}, lastErr
}

// BuildPrompt enumerates the exact output fields and states the relevance
// gate: role category match AND a 0-2 year experience range.
func BuildPrompt(postText string) string {
	return "You extract hiring info from LinkedIn posts.\n" +
		"Return strictly minified JSON only, no code fences or prose.\n" +
		"Fields: role_title (string), min_years_experience (int), max_years_experience (int), " +
		"skills (array of strings), location (string), job_type (full-time/part-time/intern/contract), " +
		"contact (string), verdict_relevant (boolean: true only if role is Data Analyst or very close AND total experience required fits 0-2 years).\n" +
		"If unsure about a field, use null, except skills should be [].\n" +
		"Examples of relevant: 'Looking for a Data Analyst (freshers welcome)', 'Hiring Junior Data Analyst, 0-2 yrs'.\n" +
		"Examples of NOT relevant: 'Senior Data Scientist 5+ years', 'Business Analyst 3-5 years'.\n\n" +
		fmt.Sprintf("Text: \"\"\"%s\"\"\"\n", postText) +
		"Respond with a single JSON object only."
}

// ParseExtraction strips markdown fences, then tries a direct parse, then
// salvages the substring between the first '{' and the last '}'.
func ParseExtraction(raw string) (Extraction, error) {
	cleaned := stripFences(raw)

	var ext Extraction
	if err := json.Unmarshal([]byte(cleaned), &ext); err == nil {
		return ext, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return Extraction{}, fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &ext); err != nil {
		return Extraction{}, fmt.Errorf("parsing extraction: %w", err)
	}
	return ext, nil
}

// stripFences removes markdown code fences if the model tries to be helpful
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// HeuristicExtraction is the deterministic fallback: relevant iff the
// lower-cased text contains a role phrase AND an experience phrase. It never
// populates contact, location or job_type.
func HeuristicExtraction(text string) Extraction {
	t := strings.ToLower(text)
	hasRole := containsAny(t, rolePhrases)
	hasExp := containsAny(t, experiencePhrases)

	ext := Extraction{Skills: SkillList{}}
	if hasRole {
		ext.RoleTitle = "Data Analyst"
	}
	if hasExp {
		ext.MinYearsExperience = intPtr(0)
		ext.MaxYearsExperience = intPtr(2)
	}
	ext.VerdictRelevant = hasRole && hasExp
	return ext
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}
