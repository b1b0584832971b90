package main

import (
	"embed"
	"log"

	"TickTack/audio"
	"TickTack/clock"
	"TickTack/engine"
	"TickTack/i18n"
	"TickTack/storage"
	"TickTack/timer"
	"TickTack/ui"

	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

const appName = "TickTack"

func main() {
	cfg, err := timer.LoadConfig(content)
	if err != nil {
		log.Printf("Failed to load default config. %v", err)
	}
	if cfg, err = storage.LoadSettings(appName, cfg); err != nil {
		log.Printf("Ignoring user settings. %v", err)
	}
	i18n.SetLang(cfg.Language)

	fyneApp := app.NewWithID("io.ticktack.app")
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	store := timer.NewStore(clock.Real{}, timer.WithInitialMode(cfg.Mode()))
	alarm := audio.NewAlarm(audio.Config{
		File:       cfg.Alarm.File,
		ToneHz:     cfg.Alarm.ToneHz,
		Volume:     cfg.Alarm.Volume,
		SampleRate: cfg.Alarm.SampleRate,
	})

	var a *AppManager
	eng := engine.New(store, clock.Real{}, alarm, engine.Options{
		FrameInterval: cfg.FrameInterval(),
		OnAlarm: func(bool) {
			a.RefreshView()
		},
	})
	a = NewAppManager(store, eng)

	w, view := ui.CreateMainWindow(a, fyneApp)
	a.SetView(view)

	fyneApp.Lifecycle().SetOnEnteredForeground(eng.Resync)
	w.SetOnClosed(a.Shutdown)

	a.Start()
	w.ShowAndRun()
}
