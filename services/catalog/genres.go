package catalog

import "strings"

// TMDB genre vocabularies. The same UI label can map to different upstream
// genres per media type ("Sci-Fi" is "Science Fiction" for movies but
// "Sci-Fi & Fantasy" for TV), so each type keeps its own table and synonym set.

const animationGenreID = 16

var movieGenreIDs = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

var tvGenreIDs = map[int]string{
	10759: "Action & Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	10762: "Kids",
	9648:  "Mystery",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
	37:    "Western",
}

// Synonym rewrites applied before looking a UI label up in the per-type genre
// table. Keys are lowercased.
var movieGenreSynonyms = map[string]string{
	"sci-fi":          "Science Fiction",
	"scifi":           "Science Fiction",
	"science-fiction": "Science Fiction",
	"rom-com":         "Romance",
	"suspense":        "Thriller",
}

var tvGenreSynonyms = map[string]string{
	"sci-fi":          "Sci-Fi & Fantasy",
	"scifi":           "Sci-Fi & Fantasy",
	"science fiction": "Sci-Fi & Fantasy",
	"science-fiction": "Sci-Fi & Fantasy",
	"fantasy":         "Sci-Fi & Fantasy",
	"action":          "Action & Adventure",
	"adventure":       "Action & Adventure",
	"war":             "War & Politics",
	"suspense":        "Mystery",
}

// resolveGenreID maps a UI genre label to an upstream TMDB genre id for the
// given table. A label that resolves to nothing returns (0, false): the caller
// applies no genre filter rather than failing the request.
func resolveGenreID(label string, table map[int]string, synonyms map[string]string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, "all") {
		return 0, false
	}
	if canonical, ok := synonyms[strings.ToLower(label)]; ok {
		label = canonical
	}
	for id, name := range table {
		if strings.EqualFold(name, label) {
			return id, true
		}
	}
	return 0, false
}

// genreNamesForIDs maps TMDB genre ids back to names, skipping unknown ids.
func genreNamesForIDs(ids []int, table map[int]string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := table[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// matchesCategory reports whether a book's flattened category list matches any
// of the selected categories. Google Books nests categories with slashes
// ("Fiction / Thrillers / Crime"), so each segment is compared individually,
// case-insensitively, accepting exact or substring hits in either direction.
func matchesCategory(itemCategories, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	var segments []string
	for _, c := range itemCategories {
		for _, seg := range strings.Split(c, "/") {
			if seg = strings.TrimSpace(seg); seg != "" {
				segments = append(segments, strings.ToLower(seg))
			}
		}
	}
	for _, want := range selected {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" || want == "all" {
			return true
		}
		for _, seg := range segments {
			if seg == want || strings.Contains(seg, want) || strings.Contains(want, seg) {
				return true
			}
		}
	}
	return false
}
