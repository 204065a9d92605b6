package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFieldSettingsSeed_DefaultsWhenNoPath(t *testing.T) {
	got, err := LoadFieldSettingsSeed("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFieldSettings(), got)
}

func TestLoadFieldSettingsSeed_AppliesOverrides(t *testing.T) {
	p := writeSeed(t, `
fields:
  - fieldName: skills
    isRequired: true
    label: Core skills
  - fieldName: email
    isVisible: false
  - fieldName: phone
    displayOrder: 99
`)
	got, err := LoadFieldSettingsSeed(p)
	require.NoError(t, err)
	byName := map[string]domain.ProfileFieldSetting{}
	for _, s := range got {
		byName[s.FieldName] = s
	}
	assert.True(t, byName["skills"].IsRequired)
	assert.Equal(t, "Core skills", byName["skills"].Label)
	assert.False(t, byName["email"].IsVisible)
	assert.False(t, byName["email"].IsRequired, "hidden field cannot stay required")
	assert.Equal(t, 99, byName["phone"].DisplayOrder)
}

func TestLoadFieldSettingsSeed_Errors(t *testing.T) {
	_, err := LoadFieldSettingsSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFieldSettingsSeed(writeSeed(t, "fields: [::"))
	assert.Error(t, err)

	_, err = LoadFieldSettingsSeed(writeSeed(t, "fields:\n  - fieldName: shoeSize\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
