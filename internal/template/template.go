// Package template maps (key, language) pairs to pure message-formatting
// functions. SMS, email and WhatsApp bodies are authored independently per
// language; SMS strings are hand-tuned short forms, not machine translations.
package template

import (
	"sort"

	apperrors "educonnect/internal/common/errors"
)

type Language string

const (
	LangFR Language = "fr"
	LangEN Language = "en"
)

// Key is a symbolic identifier selecting a bilingual message concern.
type Key string

const (
	KeyAbsenceAlert       Key = "absence_alert"
	KeyLateArrival        Key = "late_arrival"
	KeyNewGrade           Key = "new_grade"
	KeyLowGradeAlert      Key = "low_grade_alert"
	KeySchoolFeesDue      Key = "school_fees_due"
	KeyPaymentConfirmed   Key = "payment_confirmed"
	KeyEmergencyAlert     Key = "emergency_alert"
	KeyMedicalIncident    Key = "medical_incident"
	KeySchoolAnnouncement Key = "school_announcement"
	KeyPasswordReset      Key = "password_reset"
	KeyHomeworkReminder   Key = "homework_reminder"

	// Geolocation and device tracking
	KeyZoneEntry       Key = "zone_entry"
	KeyZoneExit        Key = "zone_exit"
	KeySchoolArrival   Key = "school_arrival"
	KeySchoolDeparture Key = "school_departure"
	KeyHomeArrival     Key = "home_arrival"
	KeyHomeDeparture   Key = "home_departure"
	KeyLocationAlert   Key = "location_alert"
	KeySpeedAlert      Key = "speed_alert"
	KeyLowBattery      Key = "low_battery"
	KeyDeviceOffline   Key = "device_offline"
	KeyGPSDisabled     Key = "gps_disabled"
	KeyPanicButton     Key = "panic_button"
	KeySOSLocation     Key = "sos_location"

	// Subscription lifecycle
	KeySubscriptionReminder Key = "subscription_reminder"

	// Operator alerting
	KeyCriticalAlert        Key = "critical_alert"
	KeyCommercialConnection Key = "commercial_connection"
)

// FormatFunc renders a message body from an ordered positional argument list.
// It performs no I/O and never fails for well-formed input.
type FormatFunc func(args ...string) string

// EmailTemplate carries the subject and long-form body for one language.
type EmailTemplate struct {
	Subject FormatFunc
	Body    FormatFunc
}

type entry struct {
	sms       map[Language]FormatFunc
	whatsapp  map[Language]FormatFunc
	email     map[Language]EmailTemplate
	pushTitle map[Language]string
}

// Registry resolves template keys to formatting functions per channel.
type Registry struct {
	entries map[Key]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: catalog()}
}

// Keys returns every registered template key, sorted for deterministic tests.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ResolveSMS returns the compact SMS body for (key, lang). There is no
// cross-language fallback: SMS copy is cost-tuned per language and mixing
// languages on the paid channel is treated as a defect.
func (r *Registry) ResolveSMS(key Key, lang Language) (FormatFunc, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, apperrors.NewTemplateNotFoundError(string(key))
	}
	fn, ok := e.sms[lang]
	if !ok {
		return nil, apperrors.NewTemplateLanguageMissingError(string(key), string(lang))
	}
	return fn, nil
}

// ResolveWhatsApp returns the WhatsApp body, falling back to the SMS body for
// keys without a dedicated WhatsApp variant.
func (r *Registry) ResolveWhatsApp(key Key, lang Language) (FormatFunc, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, apperrors.NewTemplateNotFoundError(string(key))
	}
	if fn, ok := e.whatsapp[lang]; ok {
		return fn, nil
	}
	fn, ok := e.sms[lang]
	if !ok {
		return nil, apperrors.NewTemplateLanguageMissingError(string(key), string(lang))
	}
	return fn, nil
}

// ResolveEmail returns the email subject and body. Keys without a dedicated
// long-form variant reuse the SMS body under a generic subject.
func (r *Registry) ResolveEmail(key Key, lang Language) (EmailTemplate, error) {
	e, ok := r.entries[key]
	if !ok {
		return EmailTemplate{}, apperrors.NewTemplateNotFoundError(string(key))
	}
	if t, ok := e.email[lang]; ok {
		return t, nil
	}
	body, ok := e.sms[lang]
	if !ok {
		return EmailTemplate{}, apperrors.NewTemplateLanguageMissingError(string(key), string(lang))
	}
	return EmailTemplate{
		Subject: genericEmailSubject(lang),
		Body:    body,
	}, nil
}

// ResolvePush returns the push title and body for (key, lang). The body falls
// back to the SMS copy; the title to a generic per-language notice, so push
// never degrades into the wrong language either.
func (r *Registry) ResolvePush(key Key, lang Language) (string, FormatFunc, error) {
	e, ok := r.entries[key]
	if !ok {
		return "", nil, apperrors.NewTemplateNotFoundError(string(key))
	}
	body, ok := e.sms[lang]
	if !ok {
		return "", nil, apperrors.NewTemplateLanguageMissingError(string(key), string(lang))
	}
	title := e.pushTitle[lang]
	if title == "" {
		title = genericPushTitle(lang)
	}
	return title, body, nil
}

func genericPushTitle(lang Language) string {
	if lang == LangFR {
		return "Notification EduConnect"
	}
	return "EduConnect Notification"
}

func genericEmailSubject(lang Language) FormatFunc {
	if lang == LangFR {
		return func(args ...string) string { return "Notification EduConnect" }
	}
	return func(args ...string) string { return "EduConnect Notification" }
}

// arg safely indexes positional template arguments so a short argument list
// renders an empty slot instead of panicking.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
