package ruleset

import (
	"fmt"
	"io/fs"

	"github.com/cory-johannsen/dungeonsheets/content"
	"github.com/cory-johannsen/dungeonsheets/internal/game/feature"
	"github.com/cory-johannsen/dungeonsheets/internal/game/names"
)

// Registry provides lookup of rules records by names.Key of ID or name.
type Registry struct {
	classes     map[string]*Class
	races       map[string]*Race
	backgrounds map[string]*Background
	infusions   map[string]*Infusion
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{
		classes:     make(map[string]*Class),
		races:       make(map[string]*Race),
		backgrounds: make(map[string]*Background),
		infusions:   make(map[string]*Infusion),
	}
}

func register[T any](m map[string]*T, id, name string, v *T) {
	if id == "" {
		panic("ruleset.Registry: precondition violated: ID must be non-empty")
	}
	m[names.Key(id)] = v
	if name != "" {
		m[names.Key(name)] = v
	}
}

// RegisterClass adds c to the registry.
//
// Precondition: c must be non-nil with a non-empty ID.
// Postcondition: c is retrievable via Class using its ID or name; if called
// multiple times with the same ID, the last call wins.
func (r *Registry) RegisterClass(c *Class) { register(r.classes, c.ID, c.Name, c) }

// RegisterRace adds race to the registry under the same rules as RegisterClass.
func (r *Registry) RegisterRace(race *Race) { register(r.races, race.ID, race.Name, race) }

// RegisterBackground adds b to the registry under the same rules as RegisterClass.
func (r *Registry) RegisterBackground(b *Background) { register(r.backgrounds, b.ID, b.Name, b) }

// RegisterInfusion adds i to the registry under the same rules as RegisterClass.
func (r *Registry) RegisterInfusion(i *Infusion) { register(r.infusions, i.ID, i.Name, i) }

// Class returns the named class.
func (r *Registry) Class(name string) (*Class, bool) {
	c, ok := r.classes[names.Key(name)]
	return c, ok
}

// Race returns the named race.
func (r *Registry) Race(name string) (*Race, bool) {
	race, ok := r.races[names.Key(name)]
	return race, ok
}

// Background returns the named background.
func (r *Registry) Background(name string) (*Background, bool) {
	b, ok := r.backgrounds[names.Key(name)]
	return b, ok
}

// Infusion returns a copy of the named infusion, or a placeholder with
// NeedsImplementation set and false.
func (r *Registry) Infusion(name string) (*Infusion, bool) {
	if i, ok := r.infusions[names.Key(name)]; ok {
		cp := *i
		return &cp, true
	}
	return &Infusion{ID: names.Key(name), Name: names.Title(name), NeedsImplementation: true}, false
}

// Subclass finds the subclass of classID called name.
//
// Postcondition: Returns a copy and true when found; otherwise a placeholder
// titled from name with NeedsImplementation set, and false.
func (r *Registry) Subclass(classID, name string) (*Subclass, bool) {
	key := names.Key(name)
	if c, ok := r.Class(classID); ok {
		for i := range c.Subclasses {
			sc := c.Subclasses[i]
			if names.Key(sc.ID) == key || names.Key(sc.Name) == key {
				return &sc, true
			}
		}
	}
	return &Subclass{ID: key, Name: names.Title(name), NeedsImplementation: true}, false
}

// Validate checks every class against cat.
func (r *Registry) Validate(cat *feature.Catalog) error {
	for _, c := range r.classes {
		if err := c.Validate(cat); err != nil {
			return err
		}
	}
	return nil
}

// LoadRegistry loads the classes, races, backgrounds and infusions
// directories of fsys and validates the classes against cat.
//
// Postcondition: Returns a populated Registry or the first error.
func LoadRegistry(fsys fs.FS, cat *feature.Catalog) (*Registry, error) {
	r := NewRegistry()
	classes, err := LoadClasses(fsys, "classes")
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		r.RegisterClass(c)
	}
	races, err := LoadRaces(fsys, "races")
	if err != nil {
		return nil, err
	}
	for _, race := range races {
		r.RegisterRace(race)
	}
	backgrounds, err := LoadBackgrounds(fsys, "backgrounds")
	if err != nil {
		return nil, err
	}
	for _, b := range backgrounds {
		r.RegisterBackground(b)
	}
	infusions, err := LoadInfusions(fsys, "infusions")
	if err != nil {
		return nil, err
	}
	for _, i := range infusions {
		r.RegisterInfusion(i)
	}
	if err := r.Validate(cat); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}
	return r, nil
}

// DefaultRegistry loads the embedded rules catalogs against feature.Default().
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(content.FS, feature.Default())
}
