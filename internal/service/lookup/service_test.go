package lookup

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/hearthstone/backend/internal/model/card"
)

func sampleCards() card.Collection {
	return card.Collection{
		{"name": "Frostbolt", "id": "AT_001", "cost": 2},
		{"name": "Fireball", "id": "CS2_029", "cost": 4, "mechanics": []any{"Spell Damage", "Freeze"}},
		{"name": "Leeroy Jenkins", "id": "EX1_116", "cost": 5, "rarity": "Legendary"},
		{"name": "Frostbolt", "id": "Core_001", "cost": 2, "set": "CORE"},
		{"name": "Wisp", "id": "Cs2_231", "cost": 0},
	}
}

func newTestService(opts Options) *Service {
	return NewService(card.NewMemoryStore(sampleCards()), opts)
}

func TestListLimitedReturnsPrefix(t *testing.T) {
	svc := newTestService(DefaultOptions())
	all := sampleCards()

	for limit := 0; limit <= len(all)+3; limit++ {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			got, err := svc.ListLimited(limit)
			require.NoError(t, err)
			require.Len(t, got, min(limit, len(all)))
			for i := range got {
				assert.Equal(t, all[i], got[i])
			}
		})
	}
}

func TestListLimitedZeroIsEmptyNotNil(t *testing.T) {
	got, err := newTestService(DefaultOptions()).ListLimited(0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListLimitedRejectsNegative(t *testing.T) {
	_, err := newTestService(DefaultOptions()).ListLimited(-1)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestListLimitedDoesNotExposeStore(t *testing.T) {
	svc := newTestService(DefaultOptions())
	got, err := svc.ListLimited(1)
	require.NoError(t, err)

	got[0] = card.Card{"name": "Replaced"}
	again, err := svc.ListLimited(1)
	require.NoError(t, err)
	assert.Equal(t, "Frostbolt", again[0].Name())
}

func TestFindByNameNormalizesCase(t *testing.T) {
	svc := newTestService(DefaultOptions())

	got := svc.FindByName("frostbolt")
	require.Len(t, got, 2)
	assert.Equal(t, "AT_001", got[0].ID())
	assert.Equal(t, "Core_001", got[1].ID())

	got = svc.FindByName("LEEROY jenkins")
	require.Len(t, got, 1)
	assert.Equal(t, "Legendary", got[0]["rarity"])
}

func TestFindByNameEveryCardFindsItself(t *testing.T) {
	svc := newTestService(DefaultOptions())
	for _, c := range sampleCards() {
		matches := svc.FindByName(TitleCase(c.Name()))
		assert.Contains(t, matches, c, "card %q", c.Name())
	}
}

func TestFindByNameUnknownIsEmpty(t *testing.T) {
	got := newTestService(DefaultOptions()).FindByName("NonexistentCard")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindByIDTitleCasesByDefault(t *testing.T) {
	svc := newTestService(DefaultOptions())

	// "AT_001" title-cases to "At_001", so the stored id never matches.
	assert.Empty(t, svc.FindByID("AT_001"))

	got := svc.FindByID("cs2_231")
	require.Len(t, got, 1)
	assert.Equal(t, "Wisp", got[0].Name())
}

func TestFindByIDExactPolicy(t *testing.T) {
	svc := newTestService(Options{IDPolicy: PolicyExact})

	got := svc.FindByID("AT_001")
	require.Len(t, got, 1)
	assert.Equal(t, "Frostbolt", got[0].Name())
	assert.Empty(t, svc.FindByID("at_001"))
	assert.Equal(t, PolicyTitle, svc.Options().NamePolicy)
}

func TestFindByIDFoldPolicy(t *testing.T) {
	svc := newTestService(Options{IDPolicy: PolicyFold})

	got := svc.FindByID("at_001")
	require.Len(t, got, 1)
	assert.Equal(t, "AT_001", got[0].ID())
}

func TestResolve(t *testing.T) {
	svc := newTestService(Options{IDPolicy: PolicyExact})

	assert.Len(t, svc.Resolve(ByName("frostbolt")), 2)
	assert.Len(t, svc.Resolve(ByID("CS2_029")), 1)
	assert.Empty(t, svc.Resolve(ByName("CS2_029")))

	// Auto prefers names and falls back to ids.
	assert.Len(t, svc.Resolve(Auto("frostbolt")), 2)
	got := svc.Resolve(Auto("CS2_029"))
	require.Len(t, got, 1)
	assert.Equal(t, "Fireball", got[0].Name())
	assert.Empty(t, svc.Resolve(Auto("Unknown")))
}

func TestProjectAttribute(t *testing.T) {
	c := sampleCards()[0]

	v, ok := ProjectAttribute(c, "cost")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = ProjectAttribute(c, "nonexistent_key")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestFirstOrFail(t *testing.T) {
	_, err := FirstOrFail(nil)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = FirstOrFail(card.Collection{})
	require.ErrorIs(t, err, ErrNotFound)

	first, err := FirstOrFail(sampleCards()[1:])
	require.NoError(t, err)
	assert.Equal(t, "Fireball", first.Name())
}

func TestSelectPath(t *testing.T) {
	c := sampleCards()[1]

	got, err := SelectPath(c, "$.mechanics[1]")
	require.NoError(t, err)
	assert.Equal(t, []any{"Freeze"}, got)

	got, err = SelectPath(c, "$.rarity")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = SelectPath(c, "$.mechanics[")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("", DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, limit)

	limit, err = ParseLimit("3", DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, 3, limit)

	_, err = ParseLimit("abc", DefaultLimit)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = ParseLimit("-1", DefaultLimit)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestConcreteScenario(t *testing.T) {
	frostbolt := card.Card{"name": "Frostbolt", "id": "AT_001", "cost": 2}
	svc := NewService(card.NewMemoryStore(card.Collection{frostbolt}), Options{})

	listed, err := svc.ListLimited(DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, card.Collection{frostbolt}, listed)

	found := svc.FindByName("frostbolt")
	require.Equal(t, card.Collection{frostbolt}, found)

	cost, ok := ProjectAttribute(found[0], "cost")
	assert.True(t, ok)
	assert.Equal(t, 2, cost)

	_, ok = ProjectAttribute(found[0], "rarity")
	assert.False(t, ok)

	assert.Empty(t, svc.FindByName("Unknown"))
}

func TestRepeatedQueriesAreIdenticalUnderConcurrency(t *testing.T) {
	svc := newTestService(DefaultOptions())
	want := svc.FindByName("frostbolt")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, svc.FindByName("frostbolt"))
			_, err := svc.ListLimited(3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
