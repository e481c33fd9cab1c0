package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed data matching the mobile client's built-in calendars and categories.

func DefaultCalendars() []Calendar {
	full := CalendarPermissions{CanView: true, CanEdit: true, CanDelete: true, CanShare: true}
	return []Calendar{
		{ID: "1", Name: "Personnel", Color: "#4285F4", IsVisible: true, IsOwner: true, Permissions: full, SharedWith: []string{}},
		{ID: "2", Name: "Travail", Color: "#DB4437", IsVisible: true, IsOwner: true, Permissions: full, SharedWith: []string{}},
	}
}

func DefaultCategories() []EventCategory {
	return []EventCategory{
		{ID: "1", Name: "Réunion", Color: "#4285F4", Icon: "people"},
		{ID: "2", Name: "Personnel", Color: "#0F9D58", Icon: "person"},
		{ID: "3", Name: "Voyage", Color: "#F4B400", Icon: "flight"},
		{ID: "4", Name: "Santé", Color: "#DB4437", Icon: "local-hospital"},
	}
}

type SeedFile struct {
	Calendars  []Calendar      `yaml:"calendars"`
	Categories []EventCategory `yaml:"categories"`
}

// LoadSeedFile reads an optional YAML file overriding the default calendars
// and categories. Sections left empty in the file keep the defaults.
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSeedFile: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("LoadSeedFile: can't parse %s: %w", path, err)
	}
	if len(seed.Calendars) == 0 {
		seed.Calendars = DefaultCalendars()
	}
	if len(seed.Categories) == 0 {
		seed.Categories = DefaultCategories()
	}
	return &seed, nil
}
