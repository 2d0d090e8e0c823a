package store

import (
	"fmt"
	"log"
	"os"

	"github.com/gocarina/gocsv"
)

// Load reads the prior dataset from path. Any read or parse failure is
// treated as an empty prior dataset, not an error - the merge below then
// rebuilds the file from scratch.
func Load(path string) []Record {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var rows []Record
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		log.Printf("⚠️ Could not parse existing dataset %s: %v (starting fresh)", path, err)
		return nil
	}
	return rows
}

// MergeAndSave merges newRecords into the dataset at path. Rows are keyed by
// (post_url, post_excerpt); iterating prior-then-new, the first occurrence
// of a key wins, so historical rows are never superseded. The full canonical
// set replaces the file's previous contents. Returns how many of newRecords
// were newly accepted.
func MergeAndSave(path string, newRecords []Record) (int, error) {
	prior := Load(path)

	seen := make(map[string]struct{}, len(prior)+len(newRecords))
	combined := make([]Record, 0, len(prior)+len(newRecords))

	for _, r := range prior {
		if _, dup := seen[r.key()]; dup {
			continue
		}
		seen[r.key()] = struct{}{}
		combined = append(combined, r)
	}

	accepted := 0
	for _, r := range newRecords {
		if _, dup := seen[r.key()]; dup {
			continue
		}
		seen[r.key()] = struct{}{}
		combined = append(combined, r)
		accepted++
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating dataset %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&combined, f); err != nil {
		return 0, fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return accepted, nil
}
