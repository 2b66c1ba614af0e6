package trivia

import "math/rand"

// CategoryMix is a request-time instruction, not a storage category: it
// means "pick one real category at random" wherever a question is produced.
const CategoryMix = "mix"

// Tier names for difficulty buckets.
const (
	TierChill  = "chill"
	TierSpicy  = "spicy"
	TierSavage = "savage"
)

// Category pairs a stable identifier with its display name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var categories = []Category{
	{ID: "animals", Name: "Animals & Nature"},
	{ID: "geography", Name: "Geography & Earth"},
	{ID: "history", Name: "People & History"},
	{ID: "food", Name: "Food & Drink"},
	{ID: "space", Name: "Space & Science"},
	{ID: "pop_culture", Name: "Pop Culture & Tech"},
}

var tierLevels = map[string][]int{
	TierChill:  {1, 2},
	TierSpicy:  {2, 3},
	TierSavage: {3, 4},
}

// Registry resolves category identifiers and difficulty tiers. It is
// static configuration, read-only after construction.
type Registry struct {
	ordered []Category
	names   map[string]string
}

func NewRegistry() *Registry {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return &Registry{ordered: categories, names: names}
}

// Categories lists all registered categories in display order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ResolveCategory returns the display name for a category id.
func (r *Registry) ResolveCategory(id string) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

// ResolveTier maps a tier name to its numeric difficulty levels.
// Unknown tier names degrade to the spicy range on purpose; callers
// must not treat that as an error.
func (r *Registry) ResolveTier(name string) []int {
	levels, ok := tierLevels[name]
	if !ok {
		levels = tierLevels[TierSpicy]
	}
	out := make([]int, len(levels))
	copy(out, levels)
	return out
}

// RandomCategory picks one real category uniformly at random.
func (r *Registry) RandomCategory() string {
	return r.ordered[rand.Intn(len(r.ordered))].ID
}
