package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-features/internal/config"
	"github.com/rxtech-lab/argo-features/internal/writer"
	"github.com/rxtech-lab/argo-features/mocks"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	tempDir  string
	dataPath string
	out      *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}

	gen := mocks.NewDataGenerator(21)
	cfg := mocks.DefaultConfig()
	cfg.Count = 900
	bars := gen.Generate(cfg)

	var b strings.Builder
	b.WriteString("time,open,high,low,close,volume\n")

	for _, bar := range bars {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s\n",
			bar.Time.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(bar.Open, 'f', -1, 64),
			strconv.FormatFloat(bar.High, 'f', -1, 64),
			strconv.FormatFloat(bar.Low, 'f', -1, 64),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
			strconv.FormatFloat(bar.Volume, 'f', -1, 64),
		)
	}

	suite.dataPath = filepath.Join(suite.tempDir, "bars.csv")
	suite.Require().NoError(os.WriteFile(suite.dataPath, []byte(b.String()), 0o600))
}

func (suite *CLITestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.out
	app.ErrWriter = io.Discard

	return app.Run(context.Background(), append([]string{"argo-features"}, args...))
}

func (suite *CLITestSuite) TestSchema() {
	dir := filepath.Join(suite.tempDir, "config")

	suite.Require().NoError(suite.run("schema", "--out", dir))

	schema, err := os.ReadFile(filepath.Join(dir, schemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schema), "argo-features-config")

	sample, err := os.ReadFile(filepath.Join(dir, sampleConfigName))
	suite.Require().NoError(err)
	suite.Contains(string(sample), "# yaml-language-server: $schema="+schemaName)

	cfg, err := config.Parse(sample)
	suite.Require().NoError(err)
	suite.Equal(config.Default().Resolutions, cfg.Resolutions)
}

func (suite *CLITestSuite) TestSchemaDoesNotOverwriteSample() {
	dir := filepath.Join(suite.tempDir, "config")
	suite.Require().NoError(os.MkdirAll(dir, 0o755))

	samplePath := filepath.Join(dir, sampleConfigName)
	suite.Require().NoError(os.WriteFile(samplePath, []byte("strict: true\n"), 0o600))

	suite.Require().NoError(suite.run("schema", "--out", dir))

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("strict: true\n", string(content))
}

func (suite *CLITestSuite) TestEvaluate() {
	jsonPath := filepath.Join(suite.tempDir, "report.json")
	metricsPath := filepath.Join(suite.tempDir, "metrics.prom")

	err := suite.run("--metrics-out", metricsPath, "evaluate", "--data", suite.dataPath, "--window", "50", "--test", "20", "--json", jsonPath)
	suite.Require().NoError(err)

	suite.Contains(suite.out.String(), "Concordant acc")
	suite.Contains(suite.out.String(), "Mean RMSE")

	data, err := os.ReadFile(jsonPath)
	suite.Require().NoError(err)

	var report struct {
		ID          string `json:"id"`
		Resolutions []struct {
			Resolution int `json:"resolution"`
			Bars       int `json:"bars"`
		} `json:"resolutions"`
	}
	suite.Require().NoError(json.Unmarshal(data, &report))
	suite.NotEmpty(report.ID)
	suite.Require().Len(report.Resolutions, 6)
	suite.Equal(1, report.Resolutions[0].Resolution)
	suite.Equal(899, report.Resolutions[0].Bars)

	metrics, err := os.ReadFile(metricsPath)
	suite.Require().NoError(err)
	suite.Contains(string(metrics), "argo_features_bars_total")
	suite.Contains(string(metrics), "argo_features_walk_forward_folds_total")
}

func (suite *CLITestSuite) TestEvaluateWithConfig() {
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("resolutions: [1, 5]\nevaluation:\n  window_size: 40\n  test_size: 10\n"), 0o600))

	jsonPath := filepath.Join(suite.tempDir, "report.json")
	suite.Require().NoError(suite.run("--config", configPath, "evaluate", "--data", suite.dataPath, "--json", jsonPath))

	data, err := os.ReadFile(jsonPath)
	suite.Require().NoError(err)

	var report struct {
		Resolutions []struct {
			Resolution int `json:"resolution"`
		} `json:"resolutions"`
	}
	suite.Require().NoError(json.Unmarshal(data, &report))
	suite.Len(report.Resolutions, 2)
}

func (suite *CLITestSuite) TestEvaluateInvalidWindow() {
	err := suite.run("evaluate", "--data", suite.dataPath, "--window", "0")
	suite.Error(err)
}

func (suite *CLITestSuite) TestPatterns() {
	suite.Require().NoError(suite.run("patterns", "--data", suite.dataPath))
	suite.Contains(suite.out.String(), "Patterns 1m")
	suite.Contains(suite.out.String(), "Patterns 60m")
}

func (suite *CLITestSuite) TestSignal() {
	suite.Require().NoError(suite.run("signal", "--data", suite.dataPath))
	suite.NotEmpty(suite.out.String())
}

func (suite *CLITestSuite) TestExport() {
	outDir := filepath.Join(suite.tempDir, "features")

	suite.Require().NoError(suite.run("export", "--data", suite.dataPath, "--out", outDir))

	for _, res := range config.Default().Resolutions {
		path := filepath.Join(outDir, fmt.Sprintf("bars_%d.parquet", res))
		suite.FileExists(path)

		bars, err := writer.Read(path)
		suite.Require().NoError(err)
		suite.Len(bars, 900/res-1)
	}
}

func (suite *CLITestSuite) TestMissingData() {
	err := suite.run("patterns", "--data", filepath.Join(suite.tempDir, "missing.csv"))
	suite.Error(err)
}

func (suite *CLITestSuite) TestDataFlagRequired() {
	err := suite.run("evaluate")
	suite.Error(err)
}
