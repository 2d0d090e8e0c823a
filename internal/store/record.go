package store

import (
	"strconv"
	"strings"

	"go-posthunt-automation/internal/extract"
	"go-posthunt-automation/internal/scraper"
)

// Record is one persisted row of the dataset. The csv tags fix the column
// schema; unknown values are stored as empty strings, never omitted.
type Record struct {
	Timestamp          string `csv:"timestamp"`
	PostURL            string `csv:"post_url"`
	PosterName         string `csv:"poster_name"`
	PosterProfileURL   string `csv:"poster_profile_url"`
	PosterLinkedInID   string `csv:"poster_linkedin_id"`
	RoleTitle          string `csv:"role_title"`
	MinYearsExperience string `csv:"min_years_experience"`
	MaxYearsExperience string `csv:"max_years_experience"`
	Skills             string `csv:"skills"`
	Location           string `csv:"location"`
	JobType            string `csv:"job_type"`
	Contact            string `csv:"contact"`
	PostExcerpt        string `csv:"post_excerpt"`
}

// key is the composite dedup identity of a row across the dataset lifetime.
func (r Record) key() string {
	return r.PostURL + "|" + r.PostExcerpt
}

const excerptLimit = 500

// Excerpt caps text at 500 characters: longer text becomes its first 497
// characters plus "...", shorter text is stored verbatim.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit-3]) + "..."
}

// BuildRecord shapes one relevant post and its extraction into a row.
func BuildRecord(post scraper.Post, ext extract.Extraction) Record {
	return Record{
		Timestamp:          post.TimestampText,
		PostURL:            post.PostURL,
		PosterName:         post.PosterName,
		PosterProfileURL:   post.PosterProfileURL,
		PosterLinkedInID:   post.PosterID,
		RoleTitle:          ext.RoleTitle,
		MinYearsExperience: yearsString(ext.MinYearsExperience),
		MaxYearsExperience: yearsString(ext.MaxYearsExperience),
		Skills:             strings.Join(ext.Skills, ", "),
		Location:           ext.Location,
		JobType:            ext.JobType,
		Contact:            ext.Contact,
		PostExcerpt:        Excerpt(post.Text),
	}
}

func yearsString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
