package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // creation dialogs
	Edit   string `yaml:"edit"`   // edit dialogs
	Delete string `yaml:"delete"` // delete confirmations

	// Column header accents, one per status
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Done       string `yaml:"done"`

	// UI element colors
	ColumnBorder   string `yaml:"column_border"`
	TaskBorder     string `yaml:"task_border"`
	SelectedBorder string `yaml:"selected_border"`
	DropMarker     string `yaml:"drop_marker"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// fields lists every color slot so defaults and merges stay in sync.
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.Create, &c.Edit, &c.Delete,
		&c.Todo, &c.InProgress, &c.Done,
		&c.ColumnBorder, &c.TaskBorder, &c.SelectedBorder, &c.DropMarker,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	if c.Preset == "" {
		c.Preset = "default"
	}
	preset := GetPreset(c.Preset).fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *preset[i]
		}
	}
}

// MergeFrom overrides colors with every non-empty value in other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for i, f := range c.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}
