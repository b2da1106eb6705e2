package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Format(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		key      string
		params   map[string]string
		expected string
	}{
		{
			name:   "english merge conflict",
			locale: "en",
			key:    "notification.mergeConflict",
			params: map[string]string{
				"title": "Add retry logic", "project": "Platform", "repo": "api", "count": "3",
			},
			expected: `Merge conflicts detected in "Add retry logic" (Platform/api) - 3 file(s) affected`,
		},
		{
			name:   "french approval",
			locale: "fr",
			key:    "notification.approved",
			params: map[string]string{
				"reviewer": "Alice", "title": "Correctif", "project": "Platform",
			},
			expected: "Alice a approuvé « Correctif » dans Platform",
		},
		{
			name:     "regional variant matches base language",
			locale:   "fr-CA",
			key:      "notifications.markAllRead",
			expected: "Tout marquer comme lu",
		},
		{
			name:     "unknown locale falls back to english",
			locale:   "de",
			key:      "notifications.empty",
			expected: "No notifications yet",
		},
		{
			name:     "garbage locale falls back to english",
			locale:   "???",
			key:      "empty.noPRs",
			expected: "No pull requests found",
		},
		{
			name:     "unknown key stays visible",
			locale:   "en",
			key:      "notification.doesNotExist",
			expected: "notification.doesNotExist",
		},
		{
			name:     "missing params leave the placeholder",
			locale:   "en",
			key:      "notification.rejected",
			params:   map[string]string{"reviewer": "Bob"},
			expected: `Bob rejected "{title}" in {project}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.locale)

			assert.Equal(t, tt.expected, f.Format(tt.key, tt.params))
		})
	}
}

func TestFormatter_EveryKeyHasFrenchTranslation(t *testing.T) {
	for key := range en {
		_, ok := fr[key]
		assert.True(t, ok, "missing french translation for %s", key)
	}
}
