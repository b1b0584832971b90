package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	prev := GetLang()
	defer func() { lang = prev }()

	SetLang("pt_BR")
	assert.Equal(t, "pt", GetLang())
	assert.Equal(t, "Cronômetro", T("Chronometer"))
	assert.Equal(t, "Volta %d", T("Lap %d"))

	SetLang("   ")
	assert.Equal(t, "pt", GetLang(), "blank keeps the current language")

	SetLang("de-DE")
	assert.Equal(t, "en", GetLang())
	assert.Equal(t, "Chronometer", T("Chronometer"))
	assert.Equal(t, "unknown key", T("unknown key"))
}
