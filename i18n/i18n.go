package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Counter":                {"pt": "Contador"},
	"Chronometer":            {"pt": "Cronômetro"},
	"Countdown":              {"pt": "Contagem Regressiva"},
	"Multiple Counters":      {"pt": "Contadores Múltiplos"},
	"Increment":              {"pt": "Incrementar"},
	"Start":                  {"pt": "Iniciar"},
	"Stop":                   {"pt": "Parar"},
	"Reset":                  {"pt": "Zerar"},
	"Add Lap":                {"pt": "Adicionar Volta"},
	"Clear Laps":             {"pt": "Limpar Voltas"},
	"Laps":                   {"pt": "Voltas"},
	"Lap %d":                 {"pt": "Volta %d"},
	"Stop Alarm":             {"pt": "Parar Alarme"},
	"Time (seconds):":        {"pt": "Tempo (segundos):"},
	"Ex: 60":                 {"pt": "Ex: 60"},
	"Set":                    {"pt": "Definir"},
	"Add New Counter":        {"pt": "Adicionar Novo Contador"},
	"Counter Name:":          {"pt": "Nome do Contador:"},
	"Ex: Coffees":            {"pt": "Ex: Cafés Bebidos"},
	"Increment:":             {"pt": "Incremento:"},
	"Increment: %d":          {"pt": "Incremento: %d"},
	"Add Counter":            {"pt": "Adicionar Contador"},
	"My Counters":            {"pt": "Meus Contadores"},
	"Reset Values":           {"pt": "Zerar Valores"},
	"Delete All":             {"pt": "Apagar Todos"},
	"No counters added yet.": {"pt": "Nenhum contador adicionado ainda."},
	"Use the form above to create your first counter!": {
		"pt": "Use o formulário acima para criar seu primeiro contador!",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("TICKTACK_LANG")); forcedLang != "" {
		log.Printf("TICKTACK_LANG is set to: '%s'", forcedLang)
		lang = normalize(forcedLang)
		return
	}

	log.Println("TICKTACK_LANG is not set, detecting from system locale.")
	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		log.Printf("Detected user locale: %s", userLocales[0])
		lang = normalize(userLocales[0])
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

func normalize(tag string) string {
	if strings.HasPrefix(strings.ToLower(tag), "pt") {
		return "pt"
	}
	return "en"
}

// SetLang forces the display language. Empty keeps the detected one.
func SetLang(tag string) {
	if strings.TrimSpace(tag) == "" {
		return
	}
	lang = normalize(tag)
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

func GetLang() string {
	return lang
}
