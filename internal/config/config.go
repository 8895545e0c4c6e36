// Package config defines the data structures of an assessment file and
// includes functions for loading it and converting it into scoring inputs.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/finhealth/pkg/constants"
	"github.com/iwvelando/finhealth/pkg/datetime"
	"github.com/iwvelando/finhealth/pkg/scoring"
	"github.com/iwvelando/finhealth/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds one client assessment together with the settings used
// to score and render it.
type Configuration struct {
	Profile     scoring.Profile   `mapstructure:"profile"`
	Holdings    map[string]string `mapstructure:"holdings"`
	Investments []string          `mapstructure:"investments"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging,omitempty"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output,omitempty"`
	Backend     BackendConfig     `mapstructure:"backend"`
}

// ScoringConfig selects the scoring strategies.
type ScoringConfig struct {
	Scale            string `mapstructure:"scale" yaml:"scale,omitempty"`                       // graded, strict
	InvestmentMethod string `mapstructure:"investmentMethod" yaml:"investmentMethod,omitempty"` // age-based, balance
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, xlsx, pdf
	File   string `mapstructure:"file" yaml:"file,omitempty"`
}

// BackendConfig locates the report backend that finished assessments are
// submitted to.
type BackendConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Inputs are the scoring engine inputs derived from a configuration.
type Inputs struct {
	Profile     scoring.Profile
	Checklist   scoring.Checklist
	Investments scoring.InvestmentOptions
	Options     scoring.Options
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only consults the environment for keys viper already knows.
	_ = v.BindEnv("backend.baseURL")
	_ = v.BindEnv("backend.token")

	v.SetDefault("profile.marriageFundGoal", constants.DefaultMarriageFundGoal)
	v.SetDefault("scoring.scale", scoring.ScaleGraded.Name)
	v.SetDefault("scoring.investmentMethod", string(scoring.InvestmentAgeBased))
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("backend.timeout", time.Duration(constants.DefaultBackendTimeoutSeconds)*time.Second)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// assessment there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted assessment from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Options resolves the scoring strategies named in the configuration.
func (c *Configuration) Options() (scoring.Options, error) {
	scale, err := scoring.ParseScalePolicy(c.Scoring.Scale)
	if err != nil {
		return scoring.Options{}, err
	}
	method, err := scoring.ParseInvestmentMethod(c.Scoring.InvestmentMethod)
	if err != nil {
		return scoring.Options{}, err
	}
	return scoring.Options{Scale: scale, Investment: method}, nil
}

// Inputs converts the configuration into scoring inputs. Unknown holdings and
// investment keys are skipped and reported as warnings along with the
// profile warnings; only invalid scoring strategies are errors.
func (c *Configuration) Inputs() (Inputs, []string, error) {
	opts, err := c.Options()
	if err != nil {
		return Inputs{}, nil, err
	}

	profile := CompleteProfile(c.Profile, time.Now())
	warnings := validation.ValidateProfile(profile)

	checklist := scoring.NewChecklist()
	names := make([]string, 0, len(c.Holdings))
	for name := range c.Holdings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind, err := scoring.ParseItemKind(name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("holdings: %v", err))
			continue
		}
		if kind.Policy() == scoring.PolicyInvestment {
			warnings = append(warnings, fmt.Sprintf("holdings: %s is derived from investments and cannot be set directly", kind))
			continue
		}
		value := scoring.ParseValue(c.Holdings[name])
		if value.Kind == scoring.ValueAmount {
			if w := validation.ValidateAmount("holdings."+kind.String(), value.Number); w != "" {
				warnings = append(warnings, w)
			}
		} else if kind.Policy() == scoring.PolicyYesNo {
			if w := validation.ValidateAnswer("holdings."+kind.String(), value.Text); w != "" {
				warnings = append(warnings, w)
			}
		}
		checklist = checklist.SetCurrent(kind, value)
	}

	investments := scoring.NewInvestmentOptions()
	for _, key := range c.Investments {
		option, err := scoring.ParseInvestmentOption(key)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("investments: %v", err))
			continue
		}
		investments[option] = true
	}

	return Inputs{
		Profile:     profile,
		Checklist:   checklist,
		Investments: investments,
		Options:     opts,
	}, warnings, nil
}

// CompleteProfile fills in the age from the date of birth when no age was
// entered. The age is taken as of the assessment date, or now when that is
// missing or unparseable.
func CompleteProfile(p scoring.Profile, now time.Time) scoring.Profile {
	if p.Age != 0 || p.DateOfBirth == "" {
		return p
	}
	birth, err := datetime.ParseDate(p.DateOfBirth)
	if err != nil {
		return p
	}
	asOf := now
	if d, err := datetime.ParseDate(p.Date); err == nil {
		asOf = d
	}
	p.Age = datetime.AgeOn(birth, asOf)
	return p
}

// Assess converts the configuration and runs the scoring engine over it.
func (c *Configuration) Assess() (scoring.Assessment, []string, error) {
	in, warnings, err := c.Inputs()
	if err != nil {
		return scoring.Assessment{}, nil, err
	}
	return scoring.Recompute(in.Profile, in.Checklist, in.Investments, in.Options), warnings, nil
}
