package recommend

import "strings"

// moodSeed maps one mood to per-type query parameters. Genre-filterable
// sources (movies, series, anime) take a genre label; text-searchable sources
// (books, music) take a search seed.
type moodSeed struct {
	MovieGenre string
	TVGenre    string
	BookQuery  string
	MusicQuery string
}

// defaultMood is used when the requested mood is not in the table.
const defaultMood = "chill"

var moodSeeds = map[string]moodSeed{
	"chill": {
		MovieGenre: "Comedy",
		TVGenre:    "Comedy",
		BookQuery:  "cozy fiction",
		MusicQuery: "lofi chill",
	},
	"adventurous": {
		MovieGenre: "Adventure",
		TVGenre:    "Action & Adventure",
		BookQuery:  "adventure",
		MusicQuery: "epic soundtrack",
	},
	"romantic": {
		MovieGenre: "Romance",
		TVGenre:    "Drama",
		BookQuery:  "romance",
		MusicQuery: "love songs",
	},
	"curious": {
		MovieGenre: "Documentary",
		TVGenre:    "Documentary",
		BookQuery:  "popular science",
		MusicQuery: "ambient instrumental",
	},
	"energetic": {
		MovieGenre: "Action",
		TVGenre:    "Action & Adventure",
		BookQuery:  "thriller",
		MusicQuery: "workout hits",
	},
	"dark": {
		MovieGenre: "Horror",
		TVGenre:    "Mystery",
		BookQuery:  "horror",
		MusicQuery: "dark ambient",
	},
	"nostalgic": {
		MovieGenre: "History",
		TVGenre:    "Family",
		BookQuery:  "classic literature",
		MusicQuery: "80s classics",
	},
	"focused": {
		MovieGenre: "Drama",
		TVGenre:    "Documentary",
		BookQuery:  "productivity",
		MusicQuery: "focus instrumental",
	},
}

// seedForMood resolves a mood label, falling back to the default for anything
// unrecognized.
func seedForMood(mood string) moodSeed {
	if seed, ok := moodSeeds[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return seed
	}
	return moodSeeds[defaultMood]
}
