package trends

import (
	"math/rand"
	"sort"
	"strings"
)

// Selection is the per-request subset of the catalog. Format and
// VisualStyle are nil when their catalog category is empty.
type Selection struct {
	Format      *Format
	VisualStyle *VisualStyle
	Hooks       []string
	CTAs        []string
	Hashtags    []string
	Sounds      []Sound
}

// Limits bound how many items each category contributes.
type Limits struct {
	Hooks    int
	CTAs     int
	Hashtags int
	Sounds   int
}

func DefaultLimits() Limits {
	return Limits{Hooks: 3, CTAs: 2, Hashtags: 15, Sounds: 3}
}

type InjectorOptions struct {
	// Rand enables randomized picks. Nil keeps selection deterministic
	// in catalog order, which tests rely on.
	Rand   *rand.Rand
	Limits Limits
}

type Injector struct {
	catalog *Catalog
	rng     *rand.Rand
	limits  Limits
}

func NewInjector(catalog *Catalog, opts InjectorOptions) *Injector {
	limits := opts.Limits
	if limits.Hooks <= 0 {
		limits.Hooks = DefaultLimits().Hooks
	}
	if limits.CTAs <= 0 {
		limits.CTAs = DefaultLimits().CTAs
	}
	if limits.Hashtags <= 0 {
		limits.Hashtags = DefaultLimits().Hashtags
	}
	if limits.Sounds <= 0 {
		limits.Sounds = DefaultLimits().Sounds
	}

	return &Injector{
		catalog: catalog,
		rng:     opts.Rand,
		limits:  limits,
	}
}

// Inject picks trending elements for one request. Entities are the
// flat keyword list from input validation; entries whose keywords
// overlap the entities win, otherwise the general pool is used.
func (in *Injector) Inject(entities []string) Selection {
	return Selection{
		Format:      in.pickFormat(entities),
		VisualStyle: in.pickVisualStyle(entities),
		Hooks:       in.sample(in.catalog.Hooks, in.limits.Hooks),
		CTAs:        in.sample(in.catalog.CTAs, in.limits.CTAs),
		Hashtags:    in.pickHashtags(entities),
		Sounds:      in.pickSounds(),
	}
}

func (in *Injector) pickFormat(entities []string) *Format {
	formats := in.catalog.Formats
	if len(formats) == 0 {
		return nil
	}
	for i := range formats {
		if keywordsOverlap(formats[i].Keywords, entities) {
			f := formats[i]
			return &f
		}
	}
	f := formats[in.index(len(formats))]
	return &f
}

func (in *Injector) pickVisualStyle(entities []string) *VisualStyle {
	styles := in.catalog.VisualStyles
	if len(styles) == 0 {
		return nil
	}
	for i := range styles {
		if keywordsOverlap(styles[i].Keywords, entities) {
			s := styles[i]
			return &s
		}
	}
	s := styles[in.index(len(styles))]
	return &s
}

func (in *Injector) pickHashtags(entities []string) []string {
	data := in.catalog.Hashtags
	if len(data) == 0 {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(tags []string) {
		for _, t := range tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}

	// Entity-matched categories first, in stable order.
	categories := make([]string, 0, len(data))
	for cat := range data {
		if cat == "general" {
			continue
		}
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		for _, ent := range entities {
			if strings.Contains(strings.ToLower(ent), cat) || strings.Contains(cat, strings.ToLower(ent)) {
				add(data[cat])
				break
			}
		}
	}
	add(data["general"])

	if len(out) > in.limits.Hashtags {
		out = out[:in.limits.Hashtags]
	}
	return out
}

func (in *Injector) pickSounds() []Sound {
	sounds := in.catalog.Sounds
	if len(sounds) > in.limits.Sounds {
		sounds = sounds[:in.limits.Sounds]
	}
	return append([]Sound(nil), sounds...)
}

// sample takes up to n entries. Without a rand source it keeps catalog
// order; with one it takes a seeded shuffle.
func (in *Injector) sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	if in.rng == nil {
		return append([]string(nil), pool[:n]...)
	}

	idx := in.rng.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func (in *Injector) index(n int) int {
	if in.rng == nil || n <= 1 {
		return 0
	}
	return in.rng.Intn(n)
}

func keywordsOverlap(keywords, entities []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, ent := range entities {
			ent = strings.ToLower(ent)
			if kw == ent || strings.Contains(ent, kw) || strings.Contains(kw, ent) {
				return true
			}
		}
	}
	return false
}
