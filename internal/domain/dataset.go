package domain

// DataSource tells where the leads shown on a page came from.
type DataSource string

const (
	// DataSourceReal means leads were read from the lead store.
	DataSourceReal DataSource = "real"

	// DataSourceFallback means generated demo leads were substituted.
	DataSourceFallback DataSource = "fallback"
)

// Dataset is the lead collection a page works on. The source is decided
// once when the dataset is loaded; real and generated leads are never mixed.
type Dataset struct {
	Leads  []Lead
	Source DataSource
	Notice string // Non-blocking message for the user, empty when none
}

// IsFallback reports whether the dataset holds generated leads.
func (d Dataset) IsFallback() bool {
	return d.Source == DataSourceFallback
}

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns ThemeDark for "dark" and ThemeLight otherwise.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
