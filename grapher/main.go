package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gographer/pkg/config"
	"github.com/itohio/gographer/pkg/graph"
	"github.com/itohio/gographer/pkg/sample"
	"github.com/itohio/gographer/pkg/scope"
	"github.com/itohio/gographer/pkg/source"
	"github.com/itohio/gographer/pkg/space"
	"github.com/itohio/gographer/pkg/vertex"
)

func main() {
	var (
		portFlag           = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag         = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag           = flag.Bool("mock", false, "Use mocked source instead of serial port")
		averageSamplesFlag = flag.Int("average-samples", -1, "Number of samples to average (0 = disabled, overrides config)")
		scaleFlag          = flag.String("scale", "", "Y scale: linear or log (overrides config)")
		dashFlag           = flag.String("dash", "", "Dash pattern as on,off path points (overrides config)")
		pngFlag            = flag.String("png", "", "Write a PNG snapshot to this path instead of opening a window")
		durationFlag       = flag.Duration("duration", 5*time.Second, "Time to collect samples before the PNG snapshot")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := applyFlags(cfg, *portFlag, *averageSamplesFlag, *scaleFlag, *dashFlag); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if *pngFlag != "" {
		if err := runSnapshot(cfg, *mockFlag, *pngFlag, *durationFlag); err != nil {
			log.Fatalf("Snapshot failed: %v", err)
		}
		fmt.Printf("Snapshot written to %s\n", *pngFlag)
		return
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.gographer")

	// Create main window
	window := application.NewWindow("Grapher")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	// Create application state
	appState := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		buffer:     graph.NewBuffer(cfg.WindowDuration()),
		window:     window,
		useMock:    *mockFlag,
	}

	// Create scope widget for graph display
	scopeWidget := scope.New(cfg)
	appState.scopeWidget = scopeWidget
	watchBuffer(appState)

	// Create toolbar (its handlers drive the scope widget)
	toolbar := createToolbar(appState)

	// Create border layout with toolbar at top and scope widget as content
	container := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		scopeWidget,
	)

	window.SetContent(container)
	window.SetOnClosed(func() {
		closeSampleChain(appState.chain)
	})
	window.ShowAndRun()
}

// applyFlags overrides configuration values given on the command line.
// Empty strings and negative numbers leave the configuration unchanged.
func applyFlags(cfg *config.Config, port string, averageSamples int, scale, dash string) error {
	if port != "" {
		cfg.Source.Port = port
	}
	if averageSamples >= 0 {
		cfg.Source.AverageSamples = averageSamples
	}
	if scale != "" {
		if scale != "linear" && scale != "log" {
			return fmt.Errorf("unknown scale %q", scale)
		}
		cfg.View.Scale = scale
	}
	if dash != "" {
		d, err := vertex.ParseDash(dash)
		if err != nil {
			return err
		}
		cfg.Line.Dashed = d.Enabled()
		cfg.Line.Dash = [2]int{d.On, d.Off}
	}
	return nil
}

// appState holds the application state.
type appState struct {
	cfg         *config.Config
	configPath  string
	device      source.Device
	buffer      *graph.Buffer
	scopeWidget *scope.ScopeWidget
	window      fyne.Window
	connectBtn  *widget.Button
	scaleBtn    *widget.Button
	useMock     bool
	chain       *sampleChain // Current sample chain (nil if not connected)

	// Throttling for scope updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the application toolbar with Connect, Settings, Scale and Dash buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	// Connect button with icon
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	// Settings button with icon
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	scaleBtn := widget.NewButton(scaleLabel(state.cfg.View.Scale), nil)
	scaleBtn.OnTapped = func() {
		if state.cfg.View.Scale == "log" {
			state.cfg.View.Scale = "linear"
		} else {
			state.cfg.View.Scale = "log"
		}
		scaleBtn.SetText(scaleLabel(state.cfg.View.Scale))
		state.scopeWidget.SetScale(space.ParseScale(state.cfg.View.Scale))
	}
	state.scaleBtn = scaleBtn

	dashCheck := widget.NewCheck("Dashed", func(on bool) {
		state.cfg.Line.Dashed = on
		dash := vertex.Solid
		if on {
			dash = vertex.Dash{On: state.cfg.Line.Dash[0], Off: state.cfg.Line.Dash[1]}
		}
		state.scopeWidget.SetDash(dash)
	})
	dashCheck.SetChecked(state.cfg.Line.Dashed)

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		container.NewHBox(scaleBtn, dashCheck),     // right
		nil,                                        // center (spacer)
	)
}

func scaleLabel(scale string) string {
	if scale == "log" {
		return "Log"
	}
	return "Linear"
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect - gracefully close sample chain
		closeSampleChain(state.chain)
		state.chain = nil
		state.device = nil
		if state.useMock {
			fmt.Println("Disconnected from mocked source")
		} else {
			fmt.Println("Disconnected from serial port")
		}
		return
	}

	device := newDevice(state.cfg, state.useMock)
	if err := device.Connect(); err != nil {
		if state.useMock {
			dialog.ShowError(fmt.Errorf("failed to connect to mocked source: %w", err), state.window)
		} else {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Source.Port, err), state.window)
		}
		return
	}
	state.device = device
	if state.useMock {
		fmt.Printf("Connected to mocked source\n")
	} else {
		fmt.Printf("Connected to serial port: %s\n", state.cfg.Source.Port)
	}

	// Start from an empty window for the new chain
	state.buffer.Reset()
	state.buffer.ResetShutdown()

	state.chain = startSampleChain(device, state.cfg, state.buffer)
}

// watchBuffer registers the callback that forwards buffer snapshots to the
// scope widget. It is registered once; every sample chain feeds the same buffer.
func watchBuffer(state *appState) {
	// Register callback with the buffer to update scope widget
	// Throttle updates to ~60 FPS (16.67ms between updates) to ensure smooth UI
	const updateInterval = 16 * time.Millisecond // ~60 FPS
	state.buffer.OnUpdate(func(points []sample.Point, gaps []graph.Gap) {
		// Throttle updates to prevent UI from being overwhelmed
		state.updateMu.Lock()
		now := time.Now()
		if now.Sub(state.lastUpdateTime) < updateInterval {
			state.updateMu.Unlock()
			return
		}
		state.lastUpdateTime = now
		state.updateMu.Unlock()

		// Update scope widget on main thread
		fyne.Do(func() {
			state.scopeWidget.UpdateData(points, gaps)
		})
	})
}
