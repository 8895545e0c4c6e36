package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iwvelando/finhealth/internal/backend"
	"github.com/iwvelando/finhealth/internal/config"
	"github.com/iwvelando/finhealth/internal/logging"
	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/output"
	"github.com/iwvelando/finhealth/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to assessment file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, xlsx, pdf")
	outputFileFlag := flag.String("output-file", "", "write the report to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	scaleFlag := flag.String("scale", "", "score scale override: graded, strict")
	methodFlag := flag.String("investment-method", "", "investment scoring override: age-based, balance")
	submit := flag.Bool("submit", false, "submit the scored assessment to the report backend")
	reportID := flag.String("report-id", "", "fetch a stored report from the backend: the PDF, or the report document with -output-format json")
	history := flag.Bool("history", false, "list the reports submitted to the backend")
	flag.Parse()

	// Load the assessment file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *scaleFlag != "" {
		conf.Scoring.Scale = *scaleFlag
	}
	if *methodFlag != "" {
		conf.Scoring.InvestmentMethod = *methodFlag
	}

	// Determine output format and destination (CLI overrides config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if validation.BinaryOutputFormat(outputFormat) && outputFile == "" {
		logger.Fatal(fmt.Sprintf("%s output requires an output file", outputFormat),
			zap.String("op", "main"),
		)
	}

	if *reportID != "" || *history {
		client := newBackendClient(logger, conf.Backend)
		ctx, cancel := backendContext(conf.Backend.Timeout)
		defer cancel()

		var buf bytes.Buffer
		switch {
		case *history:
			rows, err := client.History(ctx)
			if err != nil {
				logger.Fatal("failed to fetch report history",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			if err := backend.WriteHistory(&buf, outputFormat, rows); err != nil {
				logger.Fatal("failed to render report history",
					zap.String("op", "main"),
					zap.String("format", outputFormat),
					zap.Error(err),
				)
			}
		case outputFormat == constants.OutputFormatJSON:
			doc, err := client.FetchReport(ctx, *reportID)
			if err != nil {
				logger.Fatal("failed to fetch report",
					zap.String("op", "main"),
					zap.String("reportId", *reportID),
					zap.Error(err),
				)
			}
			if err := json.Indent(&buf, doc, "", "  "); err != nil {
				logger.Fatal("backend returned a malformed report",
					zap.String("op", "main"),
					zap.String("reportId", *reportID),
					zap.Error(err),
				)
			}
			buf.WriteByte('\n')
		default:
			if outputFile == "" {
				logger.Fatal("report download requires an output file",
					zap.String("op", "main"),
				)
			}
			pdf, err := client.DownloadReport(ctx, *reportID)
			if err != nil {
				logger.Fatal("failed to download report",
					zap.String("op", "main"),
					zap.String("reportId", *reportID),
					zap.Error(err),
				)
			}
			buf.Write(pdf)
		}
		writeOutput(logger, outputFile, buf.Bytes())
		return
	}

	assessment, warnings, err := conf.Assess()
	if err != nil {
		logger.Fatal("failed to score assessment",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	logger.Debug("assessment scored",
		zap.String("op", "main"),
		zap.Int("overallPercentage", assessment.Report.OverallPercentage),
		zap.String("grade", assessment.Report.Grade.Letter),
		zap.String("scale", assessment.Options.Scale.Name),
	)

	var buf bytes.Buffer
	if err := output.Write(&buf, outputFormat, assessment); err != nil {
		logger.Fatal("failed to render report",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
	writeOutput(logger, outputFile, buf.Bytes())

	if !*submit {
		return
	}

	client := newBackendClient(logger, conf.Backend)
	ctx, cancel := backendContext(conf.Backend.Timeout)
	defer cancel()
	receipt, err := client.Submit(ctx, assessment)
	if err != nil {
		logger.Error("failed to submit assessment",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	}
	logger.Info("assessment submitted",
		zap.String("op", "main"),
		zap.String("reportId", receipt.ReportID),
	)
}

func newBackendClient(logger *zap.Logger, conf config.BackendConfig) *backend.Client {
	client, err := backend.NewClient(logger, conf.BaseURL, conf.Token, conf.Timeout)
	if err != nil {
		logger.Fatal("failed to configure report backend",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return client
}

func backendContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// writeOutput writes data to stdout, or to outputFile when one is set.
func writeOutput(logger *zap.Logger, outputFile string, data []byte) {
	if outputFile == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create output directory",
				zap.String("op", "main"),
				zap.String("dir", dir),
				zap.Error(err),
			)
		}
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("file", outputFile),
			zap.Error(err),
		)
	}
	logger.Info("output written",
		zap.String("op", "main"),
		zap.String("file", outputFile),
		zap.Int("bytes", len(data)),
	)
}
