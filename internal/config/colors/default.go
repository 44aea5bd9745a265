package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		Create: "#5FD75F",
		Edit:   "#5F87D7",
		Delete: "#FF0000",

		Todo:       "#5F87D7",
		InProgress: "#FFD700",
		Done:       "#5FD75F",

		ColumnBorder:   "#5F87D7",
		TaskBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DropMarker:     "#FFD700",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
