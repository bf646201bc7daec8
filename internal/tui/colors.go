package tui

// Color constants for the ctt dashboard theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#101822" // Dark blue-grey
	ColorBorder         = "#3A4555" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (task names, elapsed time)
	ColorSecondaryText = "#B1B8C7" // Secondary text (start times, counts)
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#2E86DE" // Active borders, selected row
	ColorAccentBright = "#54A0FF" // Highlights, running indicator

	// State Colors
	ColorError   = "#EF4444" // Errors
	ColorSuccess = "#22C55E" // Running timers, confirmations
	ColorWarning = "#F59E0B" // Stop-all prompt
)
