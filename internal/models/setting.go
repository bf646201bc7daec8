package models

// Setting is a user preference stored as a key/value pair. Unknown keys are
// kept as-is so newer versions can add preferences without a migration.
type Setting struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value string `json:"value"`
}

// Recognized setting keys. Anything else is passed through untouched.
const (
	SettingExpectedStartTime  = "expected_start_time" // "HH:MM", drives work-day auto-start
	SettingExpectedDailyHours = "expected_daily_hours"
	SettingSchemaVersion      = "schema_version"
)
