package card

// Card is one record of the reference dataset. The attribute set is open-ended
// and kept exactly as decoded from the source; only "name" and "id" carry
// meaning for lookups.
type Card map[string]any

// Attribute keys used for lookups.
const (
	KeyName = "name"
	KeyID   = "id"
)

// Name returns the card title, or "" when it is missing or not a string.
func (c Card) Name() string {
	return c.str(KeyName)
}

// ID returns the card identifier, or "" when it is missing or not a string.
func (c Card) ID() string {
	return c.str(KeyID)
}

// Get returns the raw value stored under key.
func (c Card) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

func (c Card) str(key string) string {
	s, _ := c[key].(string)
	return s
}

// Collection is the ordered card list as it appeared in the source.
type Collection []Card
