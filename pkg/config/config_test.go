package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Source.Port)
	assert.Equal(t, 115200, cfg.Source.BaudRate)
	assert.Equal(t, 100, cfg.Source.BufferSize)
	assert.Equal(t, float64(1200), cfg.View.Width)
	assert.Equal(t, float64(600), cfg.View.Height)
	assert.Equal(t, "linear", cfg.View.Scale)
	assert.Equal(t, float64(2), cfg.View.DPIIncrease)
	assert.Equal(t, float64(100), cfg.View.Percentile)
	assert.Equal(t, [2]int{5, 5}, cfg.Line.Dash)
	assert.False(t, cfg.Line.Dashed)
	assert.Equal(t, float64(10), cfg.Window.Seconds)
	assert.Equal(t, 10*time.Second, cfg.WindowDuration())
	assert.Equal(t, 5*time.Millisecond, cfg.Mock.SampleRate)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Source.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
source:
  port: "/dev/ttyACM0"
  baud_rate: 57600

view:
  width: 800
  height: 400
  scale: log
  dpi_increase: 1
  percentile: 95
  percentile_asymmetry: -2.5

line:
  width: 2
  dashed: true
  dash: [3, 2]

window:
  seconds: 30

mock:
  amplitude: 5
  gap_every: 3s
  gap_length: 250ms
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "/dev/ttyACM0", cfg.Source.Port)
	assert.Equal(t, 57600, cfg.Source.BaudRate)
	assert.Equal(t, 100, cfg.Source.BufferSize)
	assert.Equal(t, float64(800), cfg.View.Width)
	assert.Equal(t, float64(400), cfg.View.Height)
	assert.Equal(t, "log", cfg.View.Scale)
	assert.Equal(t, float64(1), cfg.View.DPIIncrease)
	assert.Equal(t, float64(95), cfg.View.Percentile)
	assert.Equal(t, -2.5, cfg.View.Asymmetry)
	assert.Equal(t, float64(2), cfg.Line.Width)
	assert.True(t, cfg.Line.Dashed)
	assert.Equal(t, [2]int{3, 2}, cfg.Line.Dash)
	assert.Equal(t, float64(30), cfg.Window.Seconds)
	assert.Equal(t, float64(5), cfg.Mock.Amplitude)
	assert.Equal(t, 3*time.Second, cfg.Mock.GapEvery)
	assert.Equal(t, 250*time.Millisecond, cfg.Mock.GapLength)
	assert.Equal(t, 5*time.Millisecond, cfg.Mock.SampleRate)
}

func TestLoad_RepairsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  average_samples: -3
view:
  width: 1
  scale: cubic
  percentile: 150
  percentile_asymmetry: 250
line:
  dash: [-1, 4]
window:
  seconds: -5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.View.Width, cfg.View.Width)
	assert.Equal(t, def.View.Scale, cfg.View.Scale)
	assert.Equal(t, def.View.Percentile, cfg.View.Percentile)
	assert.Equal(t, def.View.Asymmetry, cfg.View.Asymmetry)
	assert.Equal(t, def.Line.Dash, cfg.Line.Dash)
	assert.Equal(t, def.Window.Seconds, cfg.Window.Seconds)
	assert.Equal(t, 0, cfg.Source.AverageSamples)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Source.Port = "/dev/ttyUSB0"
	cfg.View.Scale = "log"
	cfg.Line.Dashed = true
	cfg.Line.Dash = [2]int{2, 6}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
