package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database   *dbConfig
	Service    *svcConfig
	Estimation *EstimationConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"scenarios"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"SCENARIO_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"SCENARIO_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel        string   `envconfig:"SCENARIO_PLANNER_LOG_LEVEL" default:"info"`
	MigrationFolder string   `envconfig:"SCENARIO_PLANNER_MIGRATIONS_FOLDER" default:""`
	AllowedOrigins  []string `envconfig:"SCENARIO_PLANNER_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EventsTopic     string   `envconfig:"SCENARIO_PLANNER_EVENTS_TOPIC" default:"planner.scenario.events"`
	// EventsSink is the url of a CloudEvents HTTP sink. Events are logged when empty.
	EventsSink string `envconfig:"SCENARIO_PLANNER_EVENTS_SINK" default:""`
}

// EstimationConfig holds the engine tunables. Every field reaches the calculators as set.
type EstimationConfig struct {
	LaborRatePerHour       float64 `envconfig:"ESTIMATION_LABOR_RATE_PER_HOUR" default:"150"`
	LaborHoursPerVM        float64 `envconfig:"ESTIMATION_LABOR_HOURS_PER_VM" default:"4"`
	ProjectionMonths       int     `envconfig:"ESTIMATION_PROJECTION_MONTHS" default:"12"`
	CutoverHoursPerWave    float64 `envconfig:"ESTIMATION_CUTOVER_HOURS_PER_WAVE" default:"2"`
	OperationalWindowHours float64 `envconfig:"ESTIMATION_OPERATIONAL_WINDOW_HOURS" default:"8"`
	CostCeiling            float64 `envconfig:"ESTIMATION_SCORE_COST_CEILING" default:"1000000"`
	DurationCeilingDays    float64 `envconfig:"ESTIMATION_SCORE_DURATION_CEILING_DAYS" default:"90"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns the default configuration backed by an in-memory sqlite database.
func NewDefault() *Config {
	c := new(Config)
	// the prefix keeps the environment out so only the default tags apply
	_ = envconfig.Process("SCENARIO_PLANNER_DEFAULTS_IGNORED", c)
	c.Database.Type = "sqlite"
	c.Database.Name = "file::memory:?cache=shared"
	return c
}
