// Command dashgen generates the Grafana dashboard and Prometheus rule
// files for an exchange engine deployment. It is run from tools/dashgen
// and writes into the repository's deploy directory by default:
//
//	go run . -output ../../deploy
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tabadul/exchange-engine/tools/dashgen/dashboards"
	"github.com/tabadul/exchange-engine/tools/dashgen/rules"
)

// generatedHeader marks rule files as machine-written so nobody edits
// them by hand.
const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	cfg := DefaultConfig()
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory to write generated files into")
	flag.BoolVar(&cfg.DashboardEnabled, "dashboard", cfg.DashboardEnabled, "generate the Grafana dashboard")
	flag.BoolVar(&cfg.RulesEnabled, "rules", cfg.RulesEnabled, "generate the Prometheus rule files")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("dashgen: %v", err)
	}
}

func run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DashboardEnabled {
		if err := writeDashboard(cfg.OutputDir); err != nil {
			return err
		}
	}

	if cfg.RulesEnabled {
		if err := writeRules(filepath.Join(cfg.OutputDir, "prometheus", "exm-recording-rules.yaml"), rules.RecordingRules()); err != nil {
			return err
		}
		if err := writeRules(filepath.Join(cfg.OutputDir, "prometheus", "exm-alerts.yaml"), rules.AlertRules()); err != nil {
			return err
		}
	}

	return nil
}

func writeDashboard(outputDir string) error {
	built, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	data, err := json.MarshalIndent(built, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dashboard: %w", err)
	}

	path := filepath.Join(outputDir, "grafana", "exm-overview.json")
	if err := writeFile(path, append(data, '\n')); err != nil {
		return err
	}

	log.Printf("wrote %s", path)
	return nil
}

func writeRules(path string, rule rules.PrometheusRule) error {
	data, err := yaml.Marshal(rule)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", rule.Metadata.Name, err)
	}

	if err := writeFile(path, append([]byte(generatedHeader), data...)); err != nil {
		return err
	}

	log.Printf("wrote %s", path)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
