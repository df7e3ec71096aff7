package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Garmin: GarminSettings{
			Email:    "runner@example.com",
			Password: "secret",
			APIHost:  "https://connectapi.garmin.com",
		},
		Output: OutputSettings{
			SQLite: SQLiteSettings{Enabled: true, Path: "runsync.db"},
		},
		Sync: SyncSettings{ListLimit: 100, DaysBack: 7},
	}
}

func TestValidateSettingsAccepts(t *testing.T) {
	assert.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsMissingCredentials(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing email", func(s *Settings) { s.Garmin.Email = "" }},
		{"missing password", func(s *Settings) { s.Garmin.Password = "" }},
		{"missing both", func(s *Settings) { s.Garmin = GarminSettings{} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := validSettings()
			tc.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrMissingCredentials.Error())
		})
	}
}

func TestValidateSettingsOutputStores(t *testing.T) {
	none := validSettings()
	none.Output.SQLite.Enabled = false
	assert.Error(t, ValidateSettings(none))

	both := validSettings()
	both.Output.MySQL.Enabled = true
	assert.Error(t, ValidateSettings(both))

	noPath := validSettings()
	noPath.Output.SQLite.Path = ""
	assert.Error(t, ValidateSettings(noPath))
}

func TestValidateSettingsSyncWindow(t *testing.T) {
	badLimit := validSettings()
	badLimit.Sync.ListLimit = 0
	assert.Error(t, ValidateSettings(badLimit))

	badDays := validSettings()
	badDays.Sync.DaysBack = -1
	assert.Error(t, ValidateSettings(badDays))
}

func TestValidateSettingsCollectsAllErrors(t *testing.T) {
	settings := &Settings{}

	err := ValidateSettings(settings)
	require.Error(t, err)

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}
