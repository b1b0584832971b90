package ui

import (
	"fmt"
	"image/color"
	"log"
	"slices"
	"strconv"
	"time"

	"TickTack/control"
	"TickTack/i18n"
	"TickTack/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is what the view needs from the running application.
type App interface {
	Dispatch(cmd control.Command) error
	State() timer.State
	AlarmPlaying() bool
}

// modeLabels are the i18n keys of the mode selector.
var modeLabels = map[timer.Mode]string{
	timer.ModeCounter:      "Counter",
	timer.ModeChronometer:  "Chronometer",
	timer.ModeCountdown:    "Countdown",
	timer.ModeMultiCounter: "Multiple Counters",
}

// View is the widget tree of the main window. Refresh must run on the
// Fyne goroutine.
type View struct {
	app     App
	content fyne.CanvasObject

	modeButtons map[timer.Mode]*widget.Button
	panels      map[timer.Mode]fyne.CanvasObject

	counterDisplay *canvas.Text

	chronoDisplay   *canvas.Text
	chronoToggle    *widget.Button
	lapButton       *widget.Button
	clearLapsButton *widget.Button
	lapsBox         *fyne.Container
	lapsSection     *fyne.Container

	countdownDisplay *canvas.Text
	countdownToggle  *widget.Button
	stopAlarmButton  *widget.Button
	secondsEntry     *widget.Entry
	setButton        *widget.Button

	nameEntry       *widget.Entry
	incrementEntry  *widget.Entry
	countersGrid    *fyne.Container
	countersSection *fyne.Container
	emptyState      *fyne.Container

	lastLaps     []timer.Lap
	lastCounters []timer.Counter
	lastTarget   int64
}

// NewView builds every panel and renders the current state.
func NewView(a App) *View {
	v := &View{
		app:         a,
		modeButtons: make(map[timer.Mode]*widget.Button),
		panels:      make(map[timer.Mode]fyne.CanvasObject),
		lastTarget:  -1,
	}

	nav := container.NewHBox(layout.NewSpacer())
	for _, m := range timer.Modes {
		mode := m
		btn := widget.NewButton(i18n.T(modeLabels[mode]), func() {
			v.send(control.SetMode(mode))
		})
		v.modeButtons[mode] = btn
		nav.Add(btn)
	}
	nav.Add(layout.NewSpacer())

	v.panels[timer.ModeCounter] = v.buildCounterPanel()
	v.panels[timer.ModeChronometer] = v.buildChronometerPanel()
	v.panels[timer.ModeCountdown] = v.buildCountdownPanel()
	v.panels[timer.ModeMultiCounter] = v.buildMultiCounterPanel()

	stack := container.NewStack()
	for _, m := range timer.Modes {
		stack.Add(v.panels[m])
	}

	logo := canvas.NewText("TickTack", theme.Color(theme.ColorNamePrimary))
	logo.TextStyle.Bold = true
	logo.TextSize = timer.FontSizeTitle

	footer := widget.NewLabel(fmt.Sprintf("TickTack © %d", time.Now().Year()))
	footer.Alignment = fyne.TextAlignCenter

	header := container.NewVBox(container.NewCenter(logo), nav, widget.NewSeparator())
	v.content = container.NewBorder(header, footer, nil, nil, container.NewVScroll(stack))

	v.Refresh(a.State(), a.AlarmPlaying())
	return v
}

// Content returns the root canvas object.
func (v *View) Content() fyne.CanvasObject {
	return v.content
}

func (v *View) send(cmd control.Command) {
	if err := v.app.Dispatch(cmd); err != nil {
		log.Printf("Command %s not applied: %v", cmd.Type, err)
	}
	v.Refresh(v.app.State(), v.app.AlarmPlaying())
}

func newDisplay() *canvas.Text {
	t := canvas.NewText("0", theme.Color(theme.ColorNameForeground))
	t.TextStyle.Bold = true
	t.TextStyle.Monospace = true
	t.TextSize = timer.FontSizeDisplay
	t.Alignment = fyne.TextAlignCenter
	return t
}

func newTitle(key string) *canvas.Text {
	t := canvas.NewText(i18n.T(key), theme.Color(theme.ColorNameForeground))
	t.TextStyle.Bold = true
	t.TextSize = timer.FontSizeTitle
	t.Alignment = fyne.TextAlignCenter
	return t
}

func (v *View) resetButton() *widget.Button {
	return widget.NewButtonWithIcon(i18n.T("Reset"), theme.MediaReplayIcon(), func() {
		v.send(control.Command{Type: control.CmdReset})
	})
}

func (v *View) buildCounterPanel() fyne.CanvasObject {
	v.counterDisplay = newDisplay()
	increment := widget.NewButtonWithIcon(i18n.T("Increment"), theme.ContentAddIcon(), func() {
		v.send(control.Command{Type: control.CmdIncrement})
	})
	increment.Importance = widget.HighImportance

	return container.NewVBox(
		newTitle("Counter"),
		v.counterDisplay,
		container.NewCenter(container.NewHBox(increment, v.resetButton())),
	)
}

func (v *View) buildChronometerPanel() fyne.CanvasObject {
	v.lapButton = widget.NewButtonWithIcon(i18n.T("Add Lap"), theme.MediaRecordIcon(), func() {
		v.send(control.Command{Type: control.CmdAddLap})
	})
	v.lapButton.Importance = widget.HighImportance
	v.clearLapsButton = widget.NewButtonWithIcon(i18n.T("Clear Laps"), theme.DeleteIcon(), func() {
		v.send(control.Command{Type: control.CmdClearLaps})
	})

	v.chronoDisplay = newDisplay()
	v.chronoToggle = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), func() {
		v.send(control.Command{Type: control.CmdToggleRunning})
	})
	v.chronoToggle.Importance = widget.HighImportance

	v.lapsBox = container.NewVBox()
	v.lapsSection = container.NewVBox(widget.NewSeparator(), newTitle("Laps"), v.lapsBox)
	v.lapsSection.Hide()

	return container.NewVBox(
		container.NewCenter(container.NewHBox(v.lapButton, v.clearLapsButton)),
		newTitle("Chronometer"),
		v.chronoDisplay,
		container.NewCenter(container.NewHBox(v.chronoToggle, v.resetButton())),
		v.lapsSection,
	)
}

func (v *View) buildCountdownPanel() fyne.CanvasObject {
	v.countdownDisplay = newDisplay()

	v.stopAlarmButton = widget.NewButtonWithIcon(i18n.T("Stop Alarm"), theme.DeleteIcon(), func() {
		v.send(control.Command{Type: control.CmdStopAlarm})
	})
	v.stopAlarmButton.Importance = widget.DangerImportance
	v.stopAlarmButton.Hide()

	v.secondsEntry = widget.NewEntry()
	v.secondsEntry.SetPlaceHolder(i18n.T("Ex: 60"))
	setTarget := func() {
		v.send(control.SetTargetTime(ParseSeconds(v.secondsEntry.Text)))
	}
	v.secondsEntry.OnSubmitted = func(string) { setTarget() }
	v.setButton = widget.NewButton(i18n.T("Set"), setTarget)

	sizeEnforcer := canvas.NewRectangle(color.Transparent)
	sizeEnforcer.SetMinSize(fyne.NewSize(timer.InputWidth, 0))
	entryWrapper := container.NewStack(sizeEnforcer, v.secondsEntry)

	v.countdownToggle = widget.NewButtonWithIcon(i18n.T("Start"), theme.MediaPlayIcon(), func() {
		v.send(control.Command{Type: control.CmdToggleRunning})
	})
	v.countdownToggle.Importance = widget.HighImportance

	return container.NewVBox(
		newTitle("Countdown"),
		v.countdownDisplay,
		container.NewCenter(v.stopAlarmButton),
		container.NewCenter(container.NewHBox(widget.NewLabel(i18n.T("Time (seconds):")), entryWrapper, v.setButton)),
		container.NewCenter(container.NewHBox(v.countdownToggle, v.resetButton())),
	)
}

func (v *View) buildMultiCounterPanel() fyne.CanvasObject {
	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder(i18n.T("Ex: Coffees"))
	v.incrementEntry = widget.NewEntry()
	v.incrementEntry.SetText("1")

	add := widget.NewButtonWithIcon(i18n.T("Add Counter"), theme.ContentAddIcon(), v.addCounter)
	add.Importance = widget.HighImportance
	v.nameEntry.OnSubmitted = func(string) { v.addCounter() }

	form := widget.NewForm(
		widget.NewFormItem(i18n.T("Counter Name:"), v.nameEntry),
		widget.NewFormItem(i18n.T("Increment:"), v.incrementEntry),
	)

	v.countersGrid = container.NewGridWithColumns(2)

	resetValues := widget.NewButtonWithIcon(i18n.T("Reset Values"), theme.MediaReplayIcon(), func() {
		v.send(control.Command{Type: control.CmdResetCounterValues})
	})
	deleteAll := widget.NewButtonWithIcon(i18n.T("Delete All"), theme.DeleteIcon(), func() {
		v.send(control.Command{Type: control.CmdReset})
	})
	deleteAll.Importance = widget.DangerImportance

	v.countersSection = container.NewVBox(
		newTitle("My Counters"),
		v.countersGrid,
		container.NewGridWithColumns(2, resetValues, deleteAll),
	)
	v.countersSection.Hide()

	v.emptyState = container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("No counters added yet."), fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle(i18n.T("Use the form above to create your first counter!"), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)

	return container.NewVBox(
		newTitle("Multiple Counters"),
		widget.NewLabelWithStyle(i18n.T("Add New Counter"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		add,
		v.countersSection,
		v.emptyState,
	)
}

func (v *View) addCounter() {
	name := CleanName(v.nameEntry.Text)
	if name == "" {
		return
	}
	v.send(control.AddCounter(name, ParseIncrement(v.incrementEntry.Text)))
	v.nameEntry.SetText("")
	v.incrementEntry.SetText("1")
}

func (v *View) counterCard(c timer.Counter) fyne.CanvasObject {
	value := canvas.NewText(strconv.Itoa(c.Value), theme.Color(theme.ColorNamePrimary))
	value.TextStyle.Bold = true
	value.TextSize = timer.FontSizeCounter
	value.Alignment = fyne.TextAlignCenter

	id := c.ID
	inc := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		v.send(control.ForCounter(control.CmdIncrementCounter, id))
	})
	inc.Importance = widget.HighImportance
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		v.send(control.ForCounter(control.CmdRemoveCounter, id))
	})
	remove.Importance = widget.DangerImportance

	return widget.NewCard(c.Name, fmt.Sprintf(i18n.T("Increment: %d"), c.Increment),
		container.NewVBox(value, container.NewGridWithColumns(2, inc, remove)))
}

// Refresh renders st. alarm reports whether the countdown alarm sounds.
func (v *View) Refresh(st timer.State, alarm bool) {
	for m, btn := range v.modeButtons {
		want := widget.MediumImportance
		if m == st.Mode {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
	for m, p := range v.panels {
		if m == st.Mode {
			p.Show()
		} else {
			p.Hide()
		}
	}

	switch st.Mode {
	case timer.ModeCounter:
		v.renderCounter(st)
	case timer.ModeChronometer:
		v.renderChronometer(st)
	case timer.ModeCountdown:
		v.renderCountdown(st, alarm)
	}
	v.renderCounters(st)
}

func (v *View) renderCounter(st timer.State) {
	v.counterDisplay.Text = timer.DisplayValue(st.Mode, st.Count)
	if timer.IsEven(st.Mode, st.Count) {
		v.counterDisplay.Color = timer.PrimaryColor
	} else {
		v.counterDisplay.Color = theme.Color(theme.ColorNameForeground)
	}
	v.counterDisplay.Refresh()
}

func setToggle(btn *widget.Button, running bool) {
	if running {
		btn.SetText(i18n.T("Stop"))
		btn.SetIcon(theme.MediaPauseIcon())
	} else {
		btn.SetText(i18n.T("Start"))
		btn.SetIcon(theme.MediaPlayIcon())
	}
}

func setTimedDisplay(t *canvas.Text, st timer.State) {
	t.Text = timer.DisplayValue(st.Mode, st.Count)
	if st.IsRunning {
		t.Color = timer.PrimaryDarkColor
	} else {
		t.Color = theme.Color(theme.ColorNameForeground)
	}
	t.Refresh()
}

func (v *View) renderChronometer(st timer.State) {
	setTimedDisplay(v.chronoDisplay, st)
	setToggle(v.chronoToggle, st.IsRunning)

	if st.CanAddLap() {
		v.lapButton.Enable()
	} else {
		v.lapButton.Disable()
	}
	if len(st.Laps) > 0 {
		v.clearLapsButton.Enable()
	} else {
		v.clearLapsButton.Disable()
	}

	if slices.Equal(st.Laps, v.lastLaps) {
		return
	}
	v.lastLaps = st.Laps
	v.lapsBox.RemoveAll()
	for _, l := range st.Laps {
		row := container.NewHBox(
			widget.NewLabel(fmt.Sprintf(i18n.T("Lap %d"), l.Number)),
			layout.NewSpacer(),
			widget.NewLabelWithStyle(timer.FormatTime(l.Time), fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}),
		)
		v.lapsBox.Add(row)
	}
	if len(st.Laps) > 0 {
		v.lapsSection.Show()
	} else {
		v.lapsSection.Hide()
	}
}

func (v *View) renderCountdown(st timer.State, alarm bool) {
	setTimedDisplay(v.countdownDisplay, st)
	setToggle(v.countdownToggle, st.IsRunning)

	if alarm {
		v.stopAlarmButton.Show()
	} else {
		v.stopAlarmButton.Hide()
	}

	if st.IsRunning {
		v.secondsEntry.Disable()
		v.setButton.Disable()
	} else {
		v.secondsEntry.Enable()
		v.setButton.Enable()
	}

	if st.TargetTime != v.lastTarget {
		v.lastTarget = st.TargetTime
		if st.HasTarget() {
			v.secondsEntry.SetText(strconv.FormatInt(st.TargetTime/1000, 10))
		} else {
			v.secondsEntry.SetText("")
		}
	}

	if !st.IsRunning && st.Count == 0 {
		v.countdownToggle.Disable()
	} else {
		v.countdownToggle.Enable()
	}
}

func (v *View) renderCounters(st timer.State) {
	if slices.Equal(st.Counters, v.lastCounters) && (len(st.Counters) > 0) == v.countersSection.Visible() {
		return
	}
	v.lastCounters = st.Counters
	v.countersGrid.RemoveAll()
	for _, c := range st.Counters {
		v.countersGrid.Add(v.counterCard(c))
	}
	if len(st.Counters) > 0 {
		v.countersSection.Show()
		v.emptyState.Hide()
	} else {
		v.countersSection.Hide()
		v.emptyState.Show()
	}
}

// HandleKeyRune maps keyboard shortcuts: space starts, stops or increments,
// r resets and l records a lap.
func (v *View) HandleKeyRune(r rune) {
	st := v.app.State()
	switch r {
	case ' ':
		switch st.Mode {
		case timer.ModeCounter:
			v.send(control.Command{Type: control.CmdIncrement})
		case timer.ModeChronometer, timer.ModeCountdown:
			v.send(control.Command{Type: control.CmdToggleRunning})
		}
	case 'r', 'R':
		v.send(control.Command{Type: control.CmdReset})
	case 'l', 'L':
		if st.CanAddLap() {
			v.send(control.Command{Type: control.CmdAddLap})
		}
	}
}

// CreateMainWindow builds the main window around a new View.
func CreateMainWindow(a App, fyneApp fyne.App) (fyne.Window, *View) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "TickTack"
	}
	w := fyneApp.NewWindow(title)

	v := NewView(a)
	w.Canvas().SetOnTypedRune(v.HandleKeyRune)
	w.SetContent(v.Content())
	w.Resize(fyne.NewSize(timer.WindowWidth, timer.WindowHeight))
	return w, v
}
