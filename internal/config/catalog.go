package config

import (
	"errors"
	"fmt"
)

// ErrEmptyTheme is reported for a theme without any obstacle archetypes.
var ErrEmptyTheme = errors.New("config: theme has no obstacles")

// SizeClass is the size of an obstacle archetype.
type SizeClass string

const (
	SizeSmall      SizeClass = "small"
	SizeMedium     SizeClass = "medium"
	SizeLarge      SizeClass = "large"
	SizeWide       SizeClass = "wide"
	SizeUnjumpable SizeClass = "unjumpable" // Never avoidable by jumping or ducking
)

// AvoidRule says which player pose avoids an obstacle.
type AvoidRule string

const (
	AvoidJump AvoidRule = "jump" // Airborne above the clearance height
	AvoidDuck AvoidRule = "duck" // Ducking
	AvoidAny  AvoidRule = "any"  // Either
)

// Catalog is the static content table: pickup categories and the obstacle
// pools of each theme. The simulation treats it as immutable during a run.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Themes     []Theme    `yaml:"themes"`
}

// Category is a collectible pickup category.
type Category struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Icon        string `yaml:"icon"`
	ShortDesc   string `yaml:"short_desc"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	Points      int    `yaml:"points"`
}

// Theme is a selectable character with its own obstacle pool.
type Theme struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Icon        string              `yaml:"icon"`
	Description string              `yaml:"description"`
	Obstacles   []ObstacleArchetype `yaml:"obstacles"`
}

// ObstacleArchetype is a hazard type.
type ObstacleArchetype struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Icon   string    `yaml:"icon"`
	Damage int       `yaml:"damage"`
	Size   SizeClass `yaml:"size"`
	Avoid  AvoidRule `yaml:"avoid"`
}

// Jumpable reports whether the archetype can be avoided at all.
func (o ObstacleArchetype) Jumpable() bool {
	return o.Size != SizeUnjumpable
}

// Theme returns the theme with the given id.
func (c Catalog) Theme(id string) (Theme, bool) {
	for _, t := range c.Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Category returns the category with the given id.
func (c Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Clone returns a deep copy so callers cannot mutate a running table.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Categories: append([]Category(nil), c.Categories...),
		Themes:     make([]Theme, len(c.Themes)),
	}
	for i, t := range c.Themes {
		t.Obstacles = append([]ObstacleArchetype(nil), t.Obstacles...)
		out.Themes[i] = t
	}
	return out
}

// Sanitize drops malformed entries and fills defaults. It returns the cleaned
// catalog and one error per problem found; the cleaned catalog is always usable.
func (c Catalog) Sanitize() (Catalog, []error) {
	var problems []error
	out := Catalog{}

	seen := make(map[string]bool)
	for i, cat := range c.Categories {
		switch {
		case cat.ID == "":
			problems = append(problems, fmt.Errorf("config: category %d has no id", i))
			continue
		case seen[cat.ID]:
			problems = append(problems, fmt.Errorf("config: duplicate category %q", cat.ID))
			continue
		}
		if cat.Points < 0 {
			problems = append(problems, fmt.Errorf("config: category %q has negative points", cat.ID))
			cat.Points = 0
		}
		if cat.Name == "" {
			cat.Name = cat.ID
		}
		seen[cat.ID] = true
		out.Categories = append(out.Categories, cat)
	}

	themeSeen := make(map[string]bool)
	for i, t := range c.Themes {
		switch {
		case t.ID == "":
			problems = append(problems, fmt.Errorf("config: theme %d has no id", i))
			continue
		case themeSeen[t.ID]:
			problems = append(problems, fmt.Errorf("config: duplicate theme %q", t.ID))
			continue
		}
		themeSeen[t.ID] = true
		if t.Name == "" {
			t.Name = t.ID
		}

		obstacles := make([]ObstacleArchetype, 0, len(t.Obstacles))
		for j, o := range t.Obstacles {
			if o.ID == "" {
				problems = append(problems, fmt.Errorf("config: theme %q obstacle %d has no id", t.ID, j))
				continue
			}
			if o.Damage < 1 {
				problems = append(problems, fmt.Errorf("config: obstacle %q damage %d raised to 1", o.ID, o.Damage))
				o.Damage = 1
			}
			switch o.Size {
			case SizeSmall, SizeMedium, SizeLarge, SizeWide, SizeUnjumpable:
			case "":
				o.Size = SizeMedium
			default:
				problems = append(problems, fmt.Errorf("config: obstacle %q has unknown size %q", o.ID, o.Size))
				o.Size = SizeMedium
			}
			switch o.Avoid {
			case AvoidJump, AvoidDuck, AvoidAny:
			case "":
				o.Avoid = AvoidJump
			default:
				problems = append(problems, fmt.Errorf("config: obstacle %q has unknown avoid rule %q", o.ID, o.Avoid))
				o.Avoid = AvoidJump
			}
			if o.Name == "" {
				o.Name = o.ID
			}
			obstacles = append(obstacles, o)
		}
		if len(obstacles) == 0 {
			problems = append(problems, fmt.Errorf("%w: %q", ErrEmptyTheme, t.ID))
		}
		t.Obstacles = obstacles
		out.Themes = append(out.Themes, t)
	}

	return out, problems
}
