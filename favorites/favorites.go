// Package favorites stores a short list of frequently used unit pairs.
package favorites

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sambeau/unitconv/pkg/errors"
	"github.com/sambeau/unitconv/pkg/fsutil"
	"github.com/sambeau/unitconv/pkg/units"
)

// DefaultMaxEntries is the default number of favorites.
const DefaultMaxEntries = 20

// ErrFull is returned by Add when the list is at capacity.
var ErrFull = fmt.Errorf("favorites list is full")

// Favorite is a saved unit pair. From and To are canonical symbols and
// Category is the canonical category name.
type Favorite struct {
	From     string
	To       string
	Category string
}

func (f Favorite) String() string {
	return fmt.Sprintf("%s -> %s (%s)", f.From, f.To, f.Category)
}

// Store is the bounded favorites list. Every mutation is persisted.
type Store struct {
	path       string
	maxEntries int
	resolver   *units.Resolver
	logger     *zap.Logger
	items      []Favorite
}

// Open loads favorites from path. Lines that are malformed or no longer
// resolve are dropped. A missing or unreadable file yields an empty list.
// An empty path keeps the list in memory only.
func Open(path string, maxEntries int, resolver *units.Resolver, logger *zap.Logger) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, maxEntries: maxEntries, resolver: resolver, logger: logger}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("no saved favorites", zap.String("path", path), zap.Error(err))
		}
		return s
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			logger.Debug("skipping malformed favorite", zap.String("line", line))
			continue
		}
		fav, err := s.validate(Favorite{From: fields[0], To: fields[1], Category: fields[2]})
		if err != nil {
			logger.Debug("skipping invalid favorite", zap.String("line", line), zap.Error(err))
			continue
		}
		if len(s.items) == maxEntries {
			break
		}
		s.items = append(s.items, fav)
	}
	return s
}

// List returns the favorites in insertion order.
func (s *Store) List() []Favorite {
	return append([]Favorite(nil), s.items...)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	return len(s.items)
}

// Cap returns the maximum number of favorites.
func (s *Store) Cap() int {
	return s.maxEntries
}

// Get returns the favorite at index i (zero-based).
func (s *Store) Get(i int) (Favorite, error) {
	if err := s.checkIndex(i); err != nil {
		return Favorite{}, err
	}
	return s.items[i], nil
}

// Add validates and appends a favorite. The stored copy carries canonical
// symbols and category name.
func (s *Store) Add(fav Favorite) (Favorite, error) {
	if len(s.items) >= s.maxEntries {
		return Favorite{}, fmt.Errorf("%w (%d entries)", ErrFull, s.maxEntries)
	}
	valid, err := s.validate(fav)
	if err != nil {
		return Favorite{}, err
	}
	s.items = append(s.items, valid)
	return valid, s.save()
}

// Remove deletes the favorite at index i (zero-based), shifting later
// entries down.
func (s *Store) Remove(i int) (Favorite, error) {
	if err := s.checkIndex(i); err != nil {
		return Favorite{}, err
	}
	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return removed, s.save()
}

// Edit replaces the favorite at index i after validating the new value.
// Empty fields keep their current value.
func (s *Store) Edit(i int, fav Favorite) (Favorite, error) {
	if err := s.checkIndex(i); err != nil {
		return Favorite{}, err
	}
	cur := s.items[i]
	if fav.From == "" {
		fav.From = cur.From
	}
	if fav.To == "" {
		fav.To = cur.To
	}
	if fav.Category == "" {
		fav.Category = cur.Category
	}
	valid, err := s.validate(fav)
	if err != nil {
		return Favorite{}, err
	}
	s.items[i] = valid
	return valid, s.save()
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("favorite %d does not exist (have %d)", i+1, len(s.items))
	}
	return nil
}

// validate checks that the category exists and both units resolve inside it.
func (s *Store) validate(fav Favorite) (Favorite, error) {
	cat := s.resolver.Catalog()
	category, ok := cat.Category(fav.Category)
	if !ok || category == units.ScopeAll {
		return Favorite{}, errors.UnknownCategory(units.Trim(fav.Category), cat.Categories())
	}
	from, ok := s.resolver.Resolve(fav.From, category)
	if !ok {
		return Favorite{}, errors.UnknownUnit(units.Trim(fav.From), category, s.resolver.Candidates(category))
	}
	to, ok := s.resolver.Resolve(fav.To, category)
	if !ok {
		return Favorite{}, errors.UnknownUnit(units.Trim(fav.To), category, s.resolver.Candidates(category))
	}
	return Favorite{From: from.Symbol, To: to.Symbol, Category: category}, nil
}

// save rewrites the file with one "from,to,category" line per favorite.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	var buf bytes.Buffer
	for _, f := range s.items {
		fmt.Fprintf(&buf, "%s,%s,%s\n", f.From, f.To, f.Category)
	}
	if err := fsutil.WriteFileAtomic(s.path, buf.Bytes()); err != nil {
		s.logger.Warn("favorites not saved", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}
