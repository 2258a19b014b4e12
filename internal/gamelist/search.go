package gamelist

import "github.com/sahilm/fuzzy"

// Records implements fuzzy.Source over game names.
type Records []Record

func (rs Records) Len() int {
	return len(rs)
}

func (rs Records) String(i int) string {
	return rs[i].Name
}

// Search returns the records whose names fuzzy match the query, best
// match first. An empty query returns the records unchanged.
func Search(records []Record, query string) []Record {
	if query == "" {
		return records
	}
	matches := fuzzy.FindFrom(query, Records(records))
	out := make([]Record, len(matches))
	for i, match := range matches {
		out[i] = records[match.Index]
	}
	return out
}
