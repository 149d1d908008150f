package catalog

import "sort"

// Catalog is an immutable, in-memory set of boosters.
type Catalog struct {
	boosters []*Booster
	missions map[string]Mission
	runtimes map[string]Runtime
}

// New creates a catalog from boosters. Mission and runtime descriptors are
// taken from the boosters themselves.
func New(boosters ...*Booster) *Catalog {
	c := &Catalog{
		missions: make(map[string]Mission),
		runtimes: make(map[string]Runtime),
	}
	for _, b := range boosters {
		if b == nil {
			continue
		}
		c.boosters = append(c.boosters, b)
		if _, ok := c.missions[b.Mission.ID]; !ok {
			c.missions[b.Mission.ID] = b.Mission
		}
		if _, ok := c.runtimes[b.Runtime.ID]; !ok {
			c.runtimes[b.Runtime.ID] = b.Runtime
		}
	}
	return c
}

// Len returns the number of boosters.
func (c *Catalog) Len() int {
	return len(c.boosters)
}

// Boosters returns all boosters matching f, in catalog order.
func (c *Catalog) Boosters(f Filter) []*Booster {
	if f == nil {
		f = All()
	}
	var out []*Booster
	for _, b := range c.boosters {
		if f(b) {
			out = append(out, b)
		}
	}
	return out
}

// Booster returns the first booster matching f.
func (c *Catalog) Booster(f Filter) (*Booster, bool) {
	if f == nil {
		f = All()
	}
	for _, b := range c.boosters {
		if f(b) {
			return b, true
		}
	}
	return nil, false
}

// Runtimes returns the distinct runtimes of the boosters matching f,
// sorted by name and then ID.
func (c *Catalog) Runtimes(f Filter) []Runtime {
	seen := make(map[string]bool)
	var out []Runtime
	for _, b := range c.Boosters(f) {
		if seen[b.Runtime.ID] {
			continue
		}
		seen[b.Runtime.ID] = true
		out = append(out, b.Runtime)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Missions returns the distinct missions of the boosters matching f,
// sorted by name and then ID.
func (c *Catalog) Missions(f Filter) []Mission {
	seen := make(map[string]bool)
	var out []Mission
	for _, b := range c.Boosters(f) {
		if seen[b.Mission.ID] {
			continue
		}
		seen[b.Mission.ID] = true
		out = append(out, b.Mission)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Mission looks up a mission by ID.
func (c *Catalog) Mission(id string) (Mission, bool) {
	m, ok := c.missions[id]
	return m, ok
}

// Runtime looks up a runtime by ID.
func (c *Catalog) Runtime(id string) (Runtime, bool) {
	r, ok := c.runtimes[id]
	return r, ok
}
