package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-posthunt-automation/internal/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction_FencedJSON(t *testing.T) {
	raw := "```json\n{\"role_title\": \"Data Analyst\", \"min_years_experience\": 0, \"max_years_experience\": 2, \"skills\": [\"SQL\", \"Excel\"], \"location\": \"Remote\", \"job_type\": \"full-time\", \"contact\": \"jobs@acme.com\", \"verdict_relevant\": true}\n```"

	ext, err := ParseExtraction(raw)
	require.NoError(t, err)

	assert.True(t, ext.VerdictRelevant)
	assert.Equal(t, "Data Analyst", ext.RoleTitle)
	require.NotNil(t, ext.MinYearsExperience)
	require.NotNil(t, ext.MaxYearsExperience)
	assert.Equal(t, 0, *ext.MinYearsExperience)
	assert.Equal(t, 2, *ext.MaxYearsExperience)
	assert.Equal(t, SkillList{"SQL", "Excel"}, ext.Skills)
	assert.Equal(t, "jobs@acme.com", ext.Contact)
}

func TestParseExtraction_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the extraction you asked for: {\"role_title\": \"Data Analyst\", \"verdict_relevant\": false} Hope that helps."

	ext, err := ParseExtraction(raw)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", ext.RoleTitle)
	assert.False(t, ext.VerdictRelevant)
}

func TestParseExtraction_NoObject(t *testing.T) {
	_, err := ParseExtraction("I could not process this post.")
	assert.Error(t, err)
}

func TestSkillListShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want SkillList
	}{
		{"array", `{"skills": ["SQL", " Excel ", ""]}`, SkillList{"SQL", "Excel"}},
		{"comma string", `{"skills": "SQL, Excel,  Power BI"}`, SkillList{"SQL", "Excel", "Power BI"}},
		{"null", `{"skills": null}`, SkillList{}},
		{"mixed array", `{"skills": ["SQL", 2]}`, SkillList{"SQL", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ext Extraction
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ext))
			assert.Equal(t, tt.want, ext.Skills)
		})
	}
}

func TestHeuristicExtraction(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantRelevant bool
		wantRole     string
	}{
		{
			name:         "role and experience phrase",
			text:         "We are hiring a Junior Data Analyst, freshers welcome!",
			wantRelevant: true,
			wantRole:     "Data Analyst",
		},
		{
			name:         "role only",
			text:         "Senior Data Analyst needed, 7+ years required",
			wantRelevant: false,
			wantRole:     "Data Analyst",
		},
		{
			name:         "experience only",
			text:         "Hiring entry level accountants",
			wantRelevant: false,
			wantRole:     "",
		},
		{
			name:         "neither",
			text:         "Company picnic this Friday",
			wantRelevant: false,
			wantRole:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := HeuristicExtraction(tt.text)
			assert.Equal(t, tt.wantRelevant, ext.VerdictRelevant)
			assert.Equal(t, tt.wantRole, ext.RoleTitle)
			assert.Empty(t, ext.Contact, "heuristic never populates contact")
			assert.NotNil(t, ext.Skills)
		})
	}

	t.Run("positive synthesizes 0-2 bounds", func(t *testing.T) {
		ext := HeuristicExtraction("Hiring Data Analyst, 0-2 years experience")
		require.True(t, ext.VerdictRelevant)
		require.NotNil(t, ext.MinYearsExperience)
		require.NotNil(t, ext.MaxYearsExperience)
		assert.Equal(t, 0, *ext.MinYearsExperience)
		assert.Equal(t, 2, *ext.MaxYearsExperience)
	})
}

func TestClassifyAndExtract_ServicePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, false, req["stream"])
		assert.Contains(t, req["prompt"], "verdict_relevant")

		json.NewEncoder(w).Encode(map[string]string{
			"response": "```json\n{\"role_title\": \"Data Analyst\", \"skills\": [\"SQL\"], \"verdict_relevant\": true}\n```",
		})
	}))
	defer srv.Close()

	extractor := NewExtractor(NewClient(srv.URL, "llama3", 5*time.Second), browser.Pacing{})
	ext := extractor.ClassifyAndExtract(context.Background(), "Hiring Data Analyst, freshers welcome")

	assert.True(t, ext.VerdictRelevant)
	assert.Equal(t, "Data Analyst", ext.RoleTitle)
	assert.Equal(t, SkillList{"SQL"}, ext.Skills)
}

func TestClassifyAndExtract_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	extractor := NewExtractor(NewClient(srv.URL, "llama3", 5*time.Second), browser.Pacing{})
	ext := extractor.ClassifyAndExtract(context.Background(), "Hiring Junior Data Analyst, 0-2 yrs")

	assert.True(t, ext.VerdictRelevant)
	assert.Equal(t, "Data Analyst", ext.RoleTitle)
	assert.Empty(t, ext.Contact)
}

func TestClassifyAndExtract_FallbackOnUnreachableService(t *testing.T) {
	//closed port: connection refused immediately
	extractor := NewExtractor(NewClient("http://127.0.0.1:1", "llama3", 2*time.Second), browser.Pacing{})

	ext := extractor.ClassifyAndExtract(context.Background(), "Company picnic this Friday")
	assert.False(t, ext.VerdictRelevant)
	assert.NotNil(t, ext.Skills, "all fields defaulted even on total failure")
}

func TestClassifyAndExtract_FallbackOnGarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "no json here"})
	}))
	defer srv.Close()

	extractor := NewExtractor(NewClient(srv.URL, "llama3", 5*time.Second), browser.Pacing{})
	ext := extractor.ClassifyAndExtract(context.Background(), "Hiring Data Analyst, entry level")

	assert.True(t, ext.VerdictRelevant, "fallback gate should fire")
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Looking for a Data Analyst")

	for _, field := range []string{"role_title", "min_years_experience", "max_years_experience", "skills", "location", "job_type", "contact", "verdict_relevant"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "Looking for a Data Analyst")
	assert.Contains(t, prompt, "0-2 years")
}
