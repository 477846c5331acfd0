package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gographer/pkg/source"
	"github.com/itohio/gographer/pkg/vertex"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSourceTab(state),
		createViewTab(state),
		createLineTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(600, 500))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(600, 500))
	d.Show()
}

// saveAndApply persists the configuration and pushes it to the running view.
func saveAndApply(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
	state.buffer.SetWindow(state.cfg.WindowDuration())
	state.scopeWidget.ApplyConfig(state.cfg)
	if state.scaleBtn != nil {
		state.scaleBtn.SetText(scaleLabel(state.cfg.View.Scale))
	}
}

// createSourceTab creates the Source configuration tab.
func createSourceTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := source.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Source.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Source.BaudRate))

	averageSamplesEntry := widget.NewEntry()
	averageSamplesEntry.SetText(strconv.Itoa(state.cfg.Source.AverageSamples))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "Average Samples (0=disabled)", Widget: averageSamplesEntry},
		},
		OnSubmit: func() {
			old := state.cfg.Source

			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				state.cfg.Source.Port = selectedPort
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				state.cfg.Source.BaudRate = baud
			}
			if avg, err := strconv.Atoi(averageSamplesEntry.Text); err == nil && avg >= 0 {
				state.cfg.Source.AverageSamples = avg
			}
			saveAndApply(state)

			// Restart a running chain so the new source settings take effect
			wasConnected := state.device != nil && state.device.IsConnected()
			if wasConnected && old != state.cfg.Source {
				closeSampleChain(state.chain)
				state.chain = nil
				state.device = nil
				handleConnect(state)
			}
		},
	}

	return container.NewTabItem("Source", form)
}

// createViewTab creates the View configuration tab.
func createViewTab(state *appState) *container.TabItem {
	scaleSelect := widget.NewSelect([]string{"linear", "log"}, nil)
	scaleSelect.SetSelected(state.cfg.View.Scale)

	dpiEntry := widget.NewEntry()
	dpiEntry.SetText(strconv.FormatFloat(state.cfg.View.DPIIncrease, 'f', -1, 64))

	percentileEntry := widget.NewEntry()
	percentileEntry.SetText(strconv.FormatFloat(state.cfg.View.Percentile, 'f', -1, 64))

	asymmetryEntry := widget.NewEntry()
	asymmetryEntry.SetText(strconv.FormatFloat(state.cfg.View.Asymmetry, 'f', -1, 64))

	paddingEntry := widget.NewEntry()
	paddingEntry.SetText(strconv.FormatFloat(state.cfg.View.Padding, 'f', -1, 64))

	windowSecondsEntry := widget.NewEntry()
	windowSecondsEntry.SetText(strconv.FormatFloat(state.cfg.Window.Seconds, 'f', 1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Scale", Widget: scaleSelect},
			{Text: "Pixels per Column", Widget: dpiEntry},
			{Text: "Bounds Percentile", Widget: percentileEntry},
			{Text: "Percentile Asymmetry", Widget: asymmetryEntry},
			{Text: "Padding (fraction)", Widget: paddingEntry},
			{Text: "Window (seconds)", Widget: windowSecondsEntry},
		},
		OnSubmit: func() {
			if scaleSelect.Selected != "" {
				state.cfg.View.Scale = scaleSelect.Selected
			}
			if dpi, err := strconv.ParseFloat(dpiEntry.Text, 64); err == nil && dpi > 0 {
				state.cfg.View.DPIIncrease = dpi
			}
			if p, err := strconv.ParseFloat(percentileEntry.Text, 64); err == nil && p > 0 && p <= 100 {
				state.cfg.View.Percentile = p
			}
			if a, err := strconv.ParseFloat(asymmetryEntry.Text, 64); err == nil && a >= -100 && a <= 100 {
				state.cfg.View.Asymmetry = a
			}
			if pad, err := strconv.ParseFloat(paddingEntry.Text, 64); err == nil && pad >= 0 {
				state.cfg.View.Padding = pad
			}
			if ws, err := strconv.ParseFloat(windowSecondsEntry.Text, 64); err == nil && ws > 0 {
				state.cfg.Window.Seconds = ws
			}
			saveAndApply(state)
		},
	}

	return container.NewTabItem("View", form)
}

// createLineTab creates the Line configuration tab.
func createLineTab(state *appState) *container.TabItem {
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(state.cfg.Line.Width, 'f', 1, 64))

	dashedCheck := widget.NewCheck("", nil)
	dashedCheck.SetChecked(state.cfg.Line.Dashed)

	dashEntry := widget.NewEntry()
	dashEntry.SetText(dashText(state.cfg.Line.Dash))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Width (px)", Widget: widthEntry},
			{Text: "Dashed", Widget: dashedCheck},
			{Text: "Dash (on,off points)", Widget: dashEntry},
		},
		OnSubmit: func() {
			if w, err := strconv.ParseFloat(widthEntry.Text, 64); err == nil && w > 0 {
				state.cfg.Line.Width = w
			}
			dash, err := vertex.ParseDash(dashEntry.Text)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			state.cfg.Line.Dash = [2]int{dash.On, dash.Off}
			state.cfg.Line.Dashed = dashedCheck.Checked && dash.Enabled()
			saveAndApply(state)
		},
	}

	return container.NewTabItem("Line", form)
}

// createMockTab creates the Mock source configuration tab.
func createMockTab(state *appState) *container.TabItem {
	offsetEntry := widget.NewEntry()
	offsetEntry.SetText(strconv.FormatFloat(state.cfg.Mock.Offset, 'f', 3, 64))

	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(strconv.FormatFloat(state.cfg.Mock.Amplitude, 'f', 3, 64))

	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Mock.Period.String())

	noiseLevelEntry := widget.NewEntry()
	noiseLevelEntry.SetText(strconv.FormatFloat(state.cfg.Mock.NoiseLevel, 'f', 6, 64))

	gapEveryEntry := widget.NewEntry()
	gapEveryEntry.SetText(state.cfg.Mock.GapEvery.String())

	gapLengthEntry := widget.NewEntry()
	gapLengthEntry.SetText(state.cfg.Mock.GapLength.String())

	sampleRateEntry := widget.NewEntry()
	sampleRateEntry.SetText(state.cfg.Mock.SampleRate.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Offset", Widget: offsetEntry},
			{Text: "Amplitude", Widget: amplitudeEntry},
			{Text: "Period", Widget: periodEntry},
			{Text: "Noise Level", Widget: noiseLevelEntry},
			{Text: "Gap Every", Widget: gapEveryEntry},
			{Text: "Gap Length", Widget: gapLengthEntry},
			{Text: "Sample Rate", Widget: sampleRateEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(offsetEntry.Text, 64); err == nil {
				state.cfg.Mock.Offset = v
			}
			if v, err := strconv.ParseFloat(amplitudeEntry.Text, 64); err == nil {
				state.cfg.Mock.Amplitude = v
			}
			if d, err := time.ParseDuration(periodEntry.Text); err == nil && d > 0 {
				state.cfg.Mock.Period = d
			}
			if v, err := strconv.ParseFloat(noiseLevelEntry.Text, 64); err == nil {
				state.cfg.Mock.NoiseLevel = v
			}
			if d, err := time.ParseDuration(gapEveryEntry.Text); err == nil {
				state.cfg.Mock.GapEvery = d
			}
			if d, err := time.ParseDuration(gapLengthEntry.Text); err == nil {
				state.cfg.Mock.GapLength = d
			}
			if d, err := time.ParseDuration(sampleRateEntry.Text); err == nil && d > 0 {
				state.cfg.Mock.SampleRate = d
			}
			saveAndApply(state)
		},
	}

	return container.NewTabItem("Mock", form)
}

// dashText formats a configured dash pattern for editing.
func dashText(dash [2]int) string {
	return vertex.Dash{On: dash[0], Off: dash[1]}.String()
}
