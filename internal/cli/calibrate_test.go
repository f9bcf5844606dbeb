package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/opw/model"
)

var samplesFile = filepath.Join("..", "..", "calibrate", "testdata", "samples.yaml")

func TestCalibrateJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "calibrate", samplesFile)
	require.NoError(t, err)

	var result CalibrateResult
	decode(t, out, &result)
	assert.Equal(t, 12, result.Samples)
	assert.Equal(t, 50, result.Epochs)
	assert.Equal(t, "kuka-kr6-r700-sixx-calibrated", result.Model.Name)
	assert.Less(t, result.Loss, result.InitialLoss*0.1)

	nominal, err := model.Lookup(model.Default)
	require.NoError(t, err)
	assert.Equal(t, nominal.SignCorrections, result.Model.SignCorrections)
	assert.NoError(t, result.Model.Validate())
}

func TestCalibrateText(t *testing.T) {
	out, err := execute(t, "calibrate", "--fix-offsets", "--epochs", "5", samplesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "samples:      12")
	assert.Contains(t, out, "name: kuka-kr6-r700-sixx-calibrated")
}

func TestCalibrateOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitted.json")
	out, err := execute(t, "calibrate", "--epochs", "5", "--output", path, samplesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "written:")

	m, err := model.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kuka-kr6-r700-sixx-calibrated", m.Name)
}

func TestCalibrateBadOutputExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitted.txt")
	_, err := execute(t, "calibrate", "--epochs", "1", "--output", path, samplesFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCalibrateMissingSamples(t *testing.T) {
	out, err := execute(t, "calibrate", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E001")
}

func TestCalibrateInvalidSettings(t *testing.T) {
	_, err := execute(t, "calibrate", "--epochs", "0", samplesFile)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
