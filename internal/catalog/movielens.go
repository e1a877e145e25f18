package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/khanglvm/recommender/internal/logging"
	"github.com/khanglvm/recommender/internal/recommend"
)

// DefaultGenres is the MovieLens 100K genre table, indexed by flag position.
var DefaultGenres = []string{
	"unknown", "Action", "Adventure", "Animation",
	"Children's", "Comedy", "Crime", "Documentary",
	"Drama", "Fantasy", "Film-Noir", "Horror",
	"Musical", "Mystery", "Romance", "Sci-Fi",
	"Thriller", "War", "Western",
}

const (
	itemFieldSep   = "|"
	ratingFieldSep = "\t"

	// u.item: id|title|release|video release|url|19 genre flags
	minItemFields    = 5
	firstGenreField  = 5
	minRatingFields  = 4
	unknownGenreName = "unknown"
)

// ParseItems reads items in MovieLens u.item format. genres maps flag
// positions to tag names; the "unknown" genre is never emitted as a tag.
// Malformed lines are skipped.
func ParseItems(r io.Reader, genres []string) ([]recommend.Item, error) {
	items, _, err := parseItems(r, genres)
	return items, err
}

// parseItems is ParseItems that also returns the skipped line numbers.
func parseItems(r io.Reader, genres []string) ([]recommend.Item, []int, error) {
	var items []recommend.Item

	skipped, err := eachLine(r, func(line string) bool {
		parts := strings.Split(line, itemFieldSep)
		if len(parts) < minItemFields {
			return false
		}

		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return false
		}

		tags := make([]string, 0, 3)
		for i := firstGenreField; i < len(parts) && i-firstGenreField < len(genres); i++ {
			if strings.TrimSpace(parts[i]) != "1" {
				continue
			}
			genre := genres[i-firstGenreField]
			if genre == "" || strings.EqualFold(genre, unknownGenreName) {
				continue
			}
			tags = append(tags, genre)
		}

		items = append(items, recommend.Item{ID: id, Title: parts[1], Tags: tags})
		return true
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to read items: %w", err)
	}

	return items, skipped, nil
}

// ParseRatings reads ratings in MovieLens u.data format
// (user, item, rating, timestamp separated by tabs). Malformed lines are skipped.
func ParseRatings(r io.Reader) ([]recommend.Rating, error) {
	ratings, _, err := parseRatings(r)
	return ratings, err
}

// parseRatings is ParseRatings that also returns the skipped line numbers.
func parseRatings(r io.Reader) ([]recommend.Rating, []int, error) {
	var ratings []recommend.Rating

	skipped, err := eachLine(r, func(line string) bool {
		parts := strings.Split(line, ratingFieldSep)
		if len(parts) < minRatingFields {
			return false
		}

		userID, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		itemID, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		value, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		ts, err4 := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			return false
		}

		ratings = append(ratings, recommend.Rating{
			UserID:    userID,
			ItemID:    itemID,
			Value:     value,
			Timestamp: ts,
		})
		return true
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to read ratings: %w", err)
	}

	return ratings, skipped, nil
}

// ParseGenres reads a MovieLens u.genre file (name|index) and returns the
// names ordered by index. Indexes with no entry are left empty.
func ParseGenres(r io.Reader) ([]string, error) {
	genres, _, err := parseGenres(r)
	return genres, err
}

// parseGenres is ParseGenres that also returns the skipped line numbers.
func parseGenres(r io.Reader) ([]string, []int, error) {
	type entry struct {
		name  string
		index int
	}
	var entries []entry

	skipped, err := eachLine(r, func(line string) bool {
		name, idx, ok := strings.Cut(line, itemFieldSep)
		if !ok {
			return false
		}
		index, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || index < 0 {
			return false
		}
		entries = append(entries, entry{name: name, index: index})
		return true
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to read genres: %w", err)
	}
	if len(entries) == 0 {
		return nil, skipped, nil
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	genres := make([]string, entries[len(entries)-1].index+1)
	for _, e := range entries {
		genres[e.index] = e.name
	}
	return genres, skipped, nil
}

// eachLine calls fn for every non-blank line, with any trailing \r removed,
// and returns the 1-based numbers of the lines fn rejected.
func eachLine(r io.Reader, fn func(line string) bool) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var skipped []int
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !fn(line) {
			skipped = append(skipped, lineNo)
		}
	}
	return skipped, scanner.Err()
}

// maxLoggedLines caps the line numbers attached to a skipped-records warning.
const maxLoggedLines = 10

// warnSkipped logs one warning per file that had malformed lines.
func warnSkipped(log *zerolog.Logger, path string, skipped []int) {
	if len(skipped) == 0 {
		return
	}
	lines := skipped
	if len(lines) > maxLoggedLines {
		lines = lines[:maxLoggedLines]
	}
	log.Warn().
		Str("path", path).
		Int("skipped", len(skipped)).
		Ints("lines", lines).
		Msg("skipped malformed records")
}

// MovieLensSource reads a MovieLens 100K style data set from disk.
type MovieLensSource struct {
	// ItemsPath is the u.item file. Required.
	ItemsPath string

	// RatingsPath is the u.data file. Empty or missing means no ratings.
	RatingsPath string

	// GenresPath is the u.genre file. Empty means DefaultGenres.
	GenresPath string

	// Encoding is latin1 (the 100K release) or utf-8. Empty means latin1.
	Encoding string
}

// Load implements Source.
func (s *MovieLensSource) Load(ctx context.Context) (*Catalog, error) {
	log := logging.Ctx(ctx)

	if s.ItemsPath == "" {
		return nil, errors.New("movielens source: items path is required")
	}

	genres := DefaultGenres
	if s.GenresPath != "" {
		var parsed []string
		var skipped []int
		if err := s.readFile(s.GenresPath, func(r io.Reader) (err error) {
			parsed, skipped, err = parseGenres(r)
			return err
		}); err != nil {
			return nil, err
		}
		warnSkipped(log, s.GenresPath, skipped)
		if len(parsed) > 0 {
			genres = parsed
		}
	}

	var items []recommend.Item
	var skipped []int
	if err := s.readFile(s.ItemsPath, func(r io.Reader) (err error) {
		items, skipped, err = parseItems(r, genres)
		return err
	}); err != nil {
		return nil, err
	}
	warnSkipped(log, s.ItemsPath, skipped)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ratings []recommend.Rating
	if s.RatingsPath != "" {
		var skipped []int
		err := s.readFile(s.RatingsPath, func(r io.Reader) (err error) {
			ratings, skipped, err = parseRatings(r)
			return err
		})
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warn().Str("path", s.RatingsPath).Msg("ratings file not found, continuing without ratings")
		case err != nil:
			return nil, err
		}
		warnSkipped(log, s.RatingsPath, skipped)
	}

	log.Debug().
		Str("items_path", s.ItemsPath).
		Int("items", len(items)).
		Int("ratings", len(ratings)).
		Msg("movielens catalog loaded")

	return New(items, ratings), nil
}

// readFile opens path, decodes it per the configured encoding and hands it to parse.
func (s *MovieLensSource) readFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(s.Encoding) {
	case "", "latin1", "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(f)
	case "utf-8", "utf8":
	default:
		return fmt.Errorf("unsupported encoding %q", s.Encoding)
	}

	if err := parse(r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
