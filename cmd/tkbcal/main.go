package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"tkbcal/internal/analyze"
	"tkbcal/internal/config"
	"tkbcal/internal/ics"
	"tkbcal/internal/ingest"
	appLog "tkbcal/internal/log"
	"tkbcal/internal/model"
	"tkbcal/internal/sheet"
)

type flagConfig struct {
	in         string
	out        string
	format     string
	week       int
	overrides  string
	configPath string
	logLevel   string
}

func main() {
	flags := parseFlags()
	appLog.Init(flags.logLevel)

	if flags.in == "" {
		fmt.Fprintln(os.Stderr, "usage: tkbcal -in <schedule.html|backup.json> [-format json|ics|csv|stats] [-week N] [-out FILE]")
		os.Exit(2)
	}

	conf := config.DefaultConfig()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			appLog.Error("failed to load config", err, "config_path", flags.configPath)
			os.Exit(1)
		}
		conf = loaded
	}

	overridePatch, err := parseOverrides(flags.overrides)
	if err != nil {
		appLog.Error("invalid -override value", err, "value", flags.overrides)
		os.Exit(2)
	}

	appLog.Info("tkbcal starting",
		"in", flags.in,
		"format", flags.format,
		"week", flags.week,
		"override_count", len(overridePatch),
	)

	data, err := os.ReadFile(flags.in)
	if err != nil {
		appLog.Error("failed to read input", err, "path", flags.in)
		os.Exit(1)
	}

	doc, err := ingest.Parse(data)
	if err != nil {
		appLog.Error("ingestion failed", err, "path", flags.in)
		os.Exit(1)
	}

	analyze.AnnotateConflicts(doc)

	// Shallow-patch the document's own override map with CLI overrides; the
	// patched map is what analytics and projection see.
	if len(overridePatch) > 0 {
		if doc.Overrides == nil {
			doc.Overrides = make(map[string]model.CourseType, len(overridePatch))
		}
		for code, t := range overridePatch {
			doc.Overrides[code] = t
		}
	}

	out, err := render(doc, conf, flags)
	if err != nil {
		appLog.Error("export failed", err, "format", flags.format)
		os.Exit(1)
	}

	if err := writeOutput(flags.out, out); err != nil {
		appLog.Error("failed to write output", err, "path", flags.out)
		os.Exit(1)
	}
}

func render(doc *model.ScheduleDocument, conf *config.Config, flags flagConfig) ([]byte, error) {
	switch flags.format {
	case "json":
		return json.MarshalIndent(doc, "", "  ")

	case "ics":
		if flags.week < 1 || flags.week > len(doc.Weeks) {
			return nil, fmt.Errorf("week %d out of range (document has %d weeks)", flags.week, len(doc.Weeks))
		}
		payload, err := ics.BuildWeekCalendar(&doc.Weeks[flags.week-1], doc.Overrides)
		if err != nil {
			return nil, err
		}
		return []byte(payload), nil

	case "csv":
		var buf bytes.Buffer
		if err := sheet.WriteCourses(&buf, doc, doc.Overrides); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case "stats":
		snapshot := struct {
			Metrics    model.Metrics  `json:"metrics"`
			Thresholds *config.Config `json:"thresholds"`
		}{
			Metrics:    analyze.CalculateMetrics(doc, doc.Overrides),
			Thresholds: conf,
		}
		return json.MarshalIndent(snapshot, "", "  ")

	default:
		return nil, fmt.Errorf("unknown format %q", flags.format)
	}
}

// parseOverrides parses a comma-separated CODE=LT|TH list.
func parseOverrides(s string) (map[string]model.CourseType, error) {
	out := make(map[string]model.CourseType)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		code, val, found := strings.Cut(pair, "=")
		t := model.CourseType(strings.ToUpper(strings.TrimSpace(val)))
		if !found || code == "" || !t.Valid() {
			return nil, fmt.Errorf("expected CODE=LT|TH, got %q", pair)
		}
		out[strings.TrimSpace(code)] = t
	}
	return out, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.in, "in", "", "Path to the schedule export (HTML) or a JSON backup")
	flag.StringVar(&cfg.out, "out", "", "Output path (default stdout)")
	flag.StringVar(&cfg.format, "format", "json", "Output format: json, ics, csv or stats")
	flag.IntVar(&cfg.week, "week", 1, "1-based week number for the ics format")
	flag.StringVar(&cfg.overrides, "override", "", "Course type overrides, e.g. \"MHCĐO1052-LT.005=TH,MHX123-TH.001=LT\"")
	flag.StringVar(&cfg.configPath, "config", "", "Path to the thresholds config file (YAML)")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Minimum log level: debug, info, warn, error")

	flag.Parse()

	return cfg
}
