package template

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "educonnect/internal/common/errors"
)

// Every registered key must resolve in both fr and en on every channel.
// A missing variant is a hard failure, not a fallback.
func TestRegistry_BilingualCompleteness(t *testing.T) {
	registry := NewRegistry()
	require.NotEmpty(t, registry.Keys())

	for _, key := range registry.Keys() {
		for _, lang := range []Language{LangFR, LangEN} {
			smsFn, err := registry.ResolveSMS(key, lang)
			require.NoError(t, err, "SMS %s/%s", key, lang)
			require.NotNil(t, smsFn)

			waFn, err := registry.ResolveWhatsApp(key, lang)
			require.NoError(t, err, "WhatsApp %s/%s", key, lang)
			require.NotNil(t, waFn)

			emailTmpl, err := registry.ResolveEmail(key, lang)
			require.NoError(t, err, "Email %s/%s", key, lang)
			require.NotNil(t, emailTmpl.Subject)
			require.NotNil(t, emailTmpl.Body)

			title, pushFn, err := registry.ResolvePush(key, lang)
			require.NoError(t, err, "Push %s/%s", key, lang)
			assert.NotEmpty(t, title)
			require.NotNil(t, pushFn)
		}
	}
}

func TestRegistry_UnknownKey(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ResolveSMS("ghost_template", LangEN)
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeTemplateNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestRegistry_UnsupportedLanguage(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.ResolveSMS(KeyAbsenceAlert, Language("de"))
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeTemplateLanguageMissing, stdErr.Code)
}

func TestRegistry_SMSFormatting(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		key      Key
		lang     Language
		args     []string
		expected string
	}{
		{
			name:     "absence with class, en",
			key:      KeyAbsenceAlert,
			lang:     LangEN,
			args:     []string{"Junior Kamga", "2025-03-14", "CM2"},
			expected: "Junior Kamga (CM2) absent 2025-03-14. Contact school if needed.",
		},
		{
			name:     "absence without class, fr",
			key:      KeyAbsenceAlert,
			lang:     LangFR,
			args:     []string{"Junior Kamga", "14/03/2025", ""},
			expected: "Junior Kamga absent 14/03/2025. Contactez école si nécessaire.",
		},
		{
			name:     "new grade fr",
			key:      KeyNewGrade,
			lang:     LangFR,
			args:     []string{"Aïcha", "Maths", "16/20"},
			expected: "Aïcha: note Maths 16/20. Bravo!",
		},
		{
			name:     "panic button en",
			key:      KeyPanicButton,
			lang:     LangEN,
			args:     []string{"Junior", "Main Gate", "14:05"},
			expected: "EMERGENCY: Junior activated panic button at Main Gate, 14:05. Call immediately!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := registry.ResolveSMS(tt.key, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fn(tt.args...))
		})
	}
}

func TestRegistry_SubscriptionReminderEmailStatesStackingGuarantee(t *testing.T) {
	registry := NewRegistry()

	en, err := registry.ResolveEmail(KeySubscriptionReminder, LangEN)
	require.NoError(t, err)
	body := en.Body("Marie", "Ngono", "7", "2025-04-01", "parent-monthly")
	assert.Contains(t, body, "You won't lose any days!")
	assert.Contains(t, body, "Marie Ngono")
	assert.Contains(t, body, "parent-monthly")

	fr, err := registry.ResolveEmail(KeySubscriptionReminder, LangFR)
	require.NoError(t, err)
	assert.Contains(t, fr.Body("Marie", "Ngono", "7", "01/04/2025", "parent-monthly"), "Vous ne perdez aucun jour!")
}

func TestRegistry_ShortArgumentListDoesNotPanic(t *testing.T) {
	registry := NewRegistry()

	fn, err := registry.ResolveSMS(KeyNewGrade, LangEN)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		out := fn("OnlyName")
		assert.True(t, strings.HasPrefix(out, "OnlyName:"))
	})
}
