package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tasks
	AddTask    string `yaml:"add_task"`
	EditTask   string `yaml:"edit_task"`
	DeleteTask string `yaml:"delete_task"`
	ViewTask   string `yaml:"view_task"`

	// Drag
	Grab   string `yaml:"grab"`
	Cancel string `yaml:"cancel"`

	// Navigation
	PrevColumn  string `yaml:"prev_column"`
	NextColumn  string `yaml:"next_column"`
	PrevTask    string `yaml:"prev_task"`
	NextTask    string `yaml:"next_task"`
	NextProject string `yaml:"next_project"`
	PrevProject string `yaml:"prev_project"`

	// Assistant
	SummarizeTask    string `yaml:"summarize_task"`
	SummarizeProject string `yaml:"summarize_project"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:    "n",
		EditTask:   "e",
		DeleteTask: "d",
		ViewTask:   "enter",

		Grab:   "space",
		Cancel: "esc",

		PrevColumn:  "h",
		NextColumn:  "l",
		PrevTask:    "k",
		NextTask:    "j",
		NextProject: "}",
		PrevProject: "{",

		SummarizeTask:    "s",
		SummarizeProject: "S",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()
	pairs := []struct {
		dst *string
		def string
	}{
		{&k.AddTask, d.AddTask},
		{&k.EditTask, d.EditTask},
		{&k.DeleteTask, d.DeleteTask},
		{&k.ViewTask, d.ViewTask},
		{&k.Grab, d.Grab},
		{&k.Cancel, d.Cancel},
		{&k.PrevColumn, d.PrevColumn},
		{&k.NextColumn, d.NextColumn},
		{&k.PrevTask, d.PrevTask},
		{&k.NextTask, d.NextTask},
		{&k.NextProject, d.NextProject},
		{&k.PrevProject, d.PrevProject},
		{&k.SummarizeTask, d.SummarizeTask},
		{&k.SummarizeProject, d.SummarizeProject},
		{&k.Refresh, d.Refresh},
		{&k.ShowHelp, d.ShowHelp},
		{&k.Quit, d.Quit},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
}
