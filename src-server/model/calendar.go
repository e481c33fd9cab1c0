package model

type CalendarPermissions struct {
	CanView   bool `json:"canView"`
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
	CanShare  bool `json:"canShare"`
}

// Calendar metadata; not consulted by event filtering.
type Calendar struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Color       string              `json:"color"`
	IsVisible   bool                `json:"isVisible"`
	IsOwner     bool                `json:"isOwner"`
	Permissions CalendarPermissions `json:"permissions"`
	SharedWith  []string            `json:"sharedWith"`
}
