package lookup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ohler55/ojg/jp"

	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
)

// DefaultLimit is the list size used when the caller gives none.
const DefaultLimit = 10

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotFound         = errors.New("card not found")
)

// Options selects the match policy per lookup kind.
type Options struct {
	NamePolicy Policy
	IDPolicy   Policy
}

// DefaultOptions title-cases both names and ids before comparing.
func DefaultOptions() Options {
	return Options{NamePolicy: PolicyTitle, IDPolicy: PolicyTitle}
}

// Service answers read-only queries over a card store. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	store card.Store
	opts  Options
}

// NewService builds a lookup service over store. Empty policies fall back to
// the defaults.
func NewService(store card.Store, opts Options) *Service {
	defaults := DefaultOptions()
	if opts.NamePolicy == "" {
		opts.NamePolicy = defaults.NamePolicy
	}
	if opts.IDPolicy == "" {
		opts.IDPolicy = defaults.IDPolicy
	}
	return &Service{store: store, opts: opts}
}

// Options returns the effective match policies.
func (s *Service) Options() Options {
	return s.opts
}

// ListLimited returns the first limit cards in collection order.
func (s *Service) ListLimited(limit int) (card.Collection, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidParameter, limit)
	}
	items := s.store.All()
	if limit > len(items) {
		limit = len(items)
	}
	out := make(card.Collection, limit)
	copy(out, items[:limit])
	return out, nil
}

// FindByName returns every card whose name matches under the name policy.
func (s *Service) FindByName(name string) card.Collection {
	return s.filter(s.opts.NamePolicy.matcher(name), card.Card.Name)
}

// FindByID returns every card whose id matches under the id policy.
func (s *Service) FindByID(id string) card.Collection {
	return s.filter(s.opts.IDPolicy.matcher(id), card.Card.ID)
}

// Resolve runs the lookup named by key. Auto keys try the name first and use
// the id only when no name matches.
func (s *Service) Resolve(key Key) card.Collection {
	switch key.Kind {
	case KeyName:
		return s.FindByName(key.Value)
	case KeyID:
		return s.FindByID(key.Value)
	default:
		if matches := s.FindByName(key.Value); len(matches) > 0 {
			return matches
		}
		return s.FindByID(key.Value)
	}
}

func (s *Service) filter(match func(string) bool, attr func(card.Card) string) card.Collection {
	out := make(card.Collection, 0)
	for _, c := range s.store.All() {
		if match(attr(c)) {
			out = append(out, c)
		}
	}
	return out
}

// ProjectAttribute returns the value stored under key, reporting whether it exists.
func ProjectAttribute(c card.Card, key string) (any, bool) {
	return c.Get(key)
}

// FirstOrFail returns the first match or ErrNotFound.
func FirstOrFail(matches card.Collection) (card.Card, error) {
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches[0], nil
}

// SelectPath evaluates a JSONPath expression against a single card.
func SelectPath(c card.Card, expr string) ([]any, error) {
	path, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: path %q: %v", ErrInvalidParameter, expr, err)
	}
	results := path.Get(map[string]any(c))
	if results == nil {
		results = []any{}
	}
	return results, nil
}

// ParseLimit converts a raw query value into a limit. An empty value yields
// fallback.
func ParseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q is not an integer", ErrInvalidParameter, raw)
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidParameter, limit)
	}
	return limit, nil
}
