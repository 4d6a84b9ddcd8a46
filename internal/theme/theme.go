package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Tree list colors
	TreeText       tcell.Color
	TreeCursor     tcell.Color
	TreeArrow      tcell.Color
	TreeGuide      tcell.Color
	TreeActiveRow  tcell.Color
	TreeActiveBg   tcell.Color
	TreeDropSlot   tcell.Color
	TreeBackground tcell.Color

	// Reveal prompt colors
	PromptLabel tcell.Color
	PromptText  tcell.Color
	PromptMatch tcell.Color

	// Status line colors
	StatusMode     tcell.Color
	StatusMessage  tcell.Color
	StatusModified tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			TreeText:       tcell.ColorDefault,
			TreeCursor:     tcell.ColorDefault,
			TreeArrow:      tcell.ColorDefault,
			TreeGuide:      tcell.ColorDefault,
			TreeActiveRow:  tcell.ColorDefault,
			TreeActiveBg:   tcell.ColorDefault,
			TreeDropSlot:   tcell.ColorDefault,
			TreeBackground: tcell.ColorDefault,
			PromptLabel:    tcell.ColorDefault,
			PromptText:     tcell.ColorDefault,
			PromptMatch:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusModified: tcell.ColorDefault,
			HeaderTitle:    tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			TreeText:       HexToColor("#c0caf5"), // Light gray-blue
			TreeCursor:     HexToColor("#7aa2f7"), // Blue
			TreeArrow:      HexToColor("#7dcfff"), // Cyan
			TreeGuide:      HexToColor("#3b4261"),
			TreeActiveRow:  HexToColor("#e0af68"), // Yellow
			TreeActiveBg:   HexToColor("#292e42"),
			TreeDropSlot:   HexToColor("#565f89"), // Comment gray
			TreeBackground: HexToColor("#1a1b26"),
			PromptLabel:    HexToColor("#bb9af7"), // Magenta
			PromptText:     HexToColor("#c0caf5"),
			PromptMatch:    HexToColor("#9ece6a"), // Green
			StatusMode:     HexToColor("#bb9af7"),
			StatusMessage:  HexToColor("#9ece6a"),
			StatusModified: HexToColor("#f7768e"), // Red
			HeaderTitle:    HexToColor("#bb9af7"),
		},
	}
}
