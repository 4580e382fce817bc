// Package config provides configuration loading and validation for the dashboard.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/channel-dashboard/internal/types"
)

// Config represents the dashboard configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values are filled by MergeWithDefaults.
type Config struct {
	Columns  Columns  `json:"columns" yaml:"columns"`
	Taxonomy Taxonomy `json:"taxonomy" yaml:"taxonomy"`
	Display  Display  `json:"display" yaml:"display"`
	Report   Report   `json:"report" yaml:"report"`

	// ExcludedBGs are dropped from every loaded dataset
	ExcludedBGs []string `json:"excluded_bgs,omitempty" yaml:"excluded_bgs,omitempty"`
	// ExcludedBGsSet distinguishes an explicit empty list from an unset one
	ExcludedBGsSet bool `json:"-" yaml:"-"`
}

// Columns maps canonical fields to spreadsheet header names.
type Columns struct {
	HireDate       string `json:"hire_date,omitempty" yaml:"hire_date,omitempty"`
	OrgPath        string `json:"org_path,omitempty" yaml:"org_path,omitempty"`
	BG             string `json:"bg,omitempty" yaml:"bg,omitempty"`
	PaidChannel    string `json:"paid_channel,omitempty" yaml:"paid_channel,omitempty"`
	ResumeSource   string `json:"resume_source,omitempty" yaml:"resume_source,omitempty"`
	LastChannel1   string `json:"last_channel_1,omitempty" yaml:"last_channel_1,omitempty"`
	LastChannel2   string `json:"last_channel_2,omitempty" yaml:"last_channel_2,omitempty"`
	JobCategory    string `json:"job_category,omitempty" yaml:"job_category,omitempty"`
	JobTitle       string `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	Grade          string `json:"grade,omitempty" yaml:"grade,omitempty"`
	ReferrerSheet  string `json:"referrer_sheet,omitempty" yaml:"referrer_sheet,omitempty"`
	ReferrerName   string `json:"referrer_name,omitempty" yaml:"referrer_name,omitempty"`
	ReferrerHomeBG string `json:"referrer_home_bg,omitempty" yaml:"referrer_home_bg,omitempty"`
}

// Report holds the default aggregation settings.
type Report struct {
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=relative absolute"`
	Variant string `json:"variant,omitempty" yaml:"variant,omitempty" validate:"omitempty,oneof=A B a b"`
	// TopN of 0 means the variant default
	TopN int `json:"top_n,omitempty" yaml:"top_n,omitempty" validate:"gte=0,lte=50"`
}

// Default returns the built-in configuration matching the recruiting export layout.
func Default() Config {
	return Config{
		Columns: Columns{
			HireDate:       "入职日期",
			OrgPath:        "组织全路径",
			BG:             "BG",
			PaidChannel:    "付费渠道",
			ResumeSource:   "简历来源",
			LastChannel1:   "最后渠道1",
			LastChannel2:   "最后渠道2",
			JobCategory:    "职位类",
			JobTitle:       "专业职位",
			Grade:          "职级&管理职级",
			ReferrerSheet:  "bole",
			ReferrerName:   "伯乐名称",
			ReferrerHomeBG: "伯乐所在BG",
		},
		Taxonomy: DefaultTaxonomy(),
		Display:  DefaultDisplay(),
		Report: Report{
			Mode:    string(types.ModeRelative),
			Variant: string(types.VariantSignalUnion),
		},
		ExcludedBGs: []string{"Overseas Functional System"},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes raw config content. ext selects the format (".yaml"/".yml" or JSON otherwise).
func ParseConfig(data []byte, ext string) (*Config, error) {
	var cfg Config
	var raw map[string]any

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	_, cfg.ExcludedBGsSet = raw["excluded_bgs"]
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ValidationError{Message: "invalid configuration", Cause: err}
	}

	if c.Report.Variant != "" {
		if _, err := types.ParseVariant(c.Report.Variant); err != nil {
			return &ValidationError{Message: "report.variant", Cause: err}
		}
	}

	if err := c.Taxonomy.Validate(); err != nil {
		return err
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	result.Columns = mergeColumns(result.Columns, defaults.Columns)
	result.Taxonomy = result.Taxonomy.mergeWithDefaults(defaults.Taxonomy)
	result.Display = result.Display.mergeWithDefaults(defaults.Display)

	if result.Report.Mode == "" {
		result.Report.Mode = defaults.Report.Mode
	}
	if result.Report.Variant == "" {
		result.Report.Variant = defaults.Report.Variant
	}
	if result.Report.TopN == 0 {
		result.Report.TopN = defaults.Report.TopN
	}

	if !result.ExcludedBGsSet && len(result.ExcludedBGs) == 0 {
		result.ExcludedBGs = append([]string(nil), defaults.ExcludedBGs...)
	}

	return result
}

// ReportDefaults resolves the configured mode and variant.
func (c *Config) ReportDefaults() (types.Mode, types.Variant, error) {
	mode := types.ModeRelative
	variant := types.VariantSignalUnion
	var err error

	if c.Report.Mode != "" {
		if mode, err = types.ParseMode(c.Report.Mode); err != nil {
			return "", "", err
		}
	}
	if c.Report.Variant != "" {
		if variant, err = types.ParseVariant(c.Report.Variant); err != nil {
			return "", "", err
		}
	}
	return mode, variant, nil
}

func mergeColumns(c, d Columns) Columns {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.HireDate, d.HireDate)
	fill(&c.OrgPath, d.OrgPath)
	fill(&c.BG, d.BG)
	fill(&c.PaidChannel, d.PaidChannel)
	fill(&c.ResumeSource, d.ResumeSource)
	fill(&c.LastChannel1, d.LastChannel1)
	fill(&c.LastChannel2, d.LastChannel2)
	fill(&c.JobCategory, d.JobCategory)
	fill(&c.JobTitle, d.JobTitle)
	fill(&c.Grade, d.Grade)
	fill(&c.ReferrerSheet, d.ReferrerSheet)
	fill(&c.ReferrerName, d.ReferrerName)
	fill(&c.ReferrerHomeBG, d.ReferrerHomeBG)
	return c
}

// Resolve loads path (if any), merges it over Default and validates the result.
func Resolve(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
