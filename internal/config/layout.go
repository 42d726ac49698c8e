package config

// FlagLayout describes which files make up a complete flag set for one tag.
type FlagLayout struct {
	Extension string   `yaml:"extension"`
	Template  string   `yaml:"template"`
	Variants  []string `yaml:"variants"`
}

var defaultVariants = []string{"", "_fascist", "_communist", "_monarchy", "_republic"}

func DefaultLayout() FlagLayout {
	return FlagLayout{
		Extension: ".tga",
		Template:  "GHO",
		Variants:  append([]string(nil), defaultVariants...),
	}
}

func (l *FlagLayout) applyDefaults() {
	defaults := DefaultLayout()
	if l.Extension == "" {
		l.Extension = defaults.Extension
	}
	if l.Template == "" {
		l.Template = defaults.Template
	}
	if l.Variants == nil {
		l.Variants = defaults.Variants
	}
}

// Filenames returns the expected flag files for tag in variant order.
func (l FlagLayout) Filenames(tag string) []string {
	names := make([]string, 0, len(l.Variants))
	for _, variant := range l.Variants {
		names = append(names, tag+variant+l.Extension)
	}
	return names
}

func (l FlagLayout) TemplateFile() string {
	return l.Template + l.Extension
}
