package server

import (
	"errors"
	"fmt"

	"github.com/goto/salt/config"

	"github.com/ryantriananda/fms/jobs"
	"github.com/ryantriananda/fms/plugins/notifiers"
)

type Config struct {
	LogLevel           string                 `mapstructure:"log_level" default:"info"`
	Notifier           notifiers.Config       `mapstructure:"notifier"`
	WorkflowConfigFile string                 `mapstructure:"workflow_config_file"`
	Jobs               map[jobs.Type]jobs.Job `mapstructure:"jobs"`
}

func LoadConfig(configFile string) (Config, error) {
	var cfg Config
	loader := config.NewLoader(config.WithFile(configFile))

	if err := loader.Load(&cfg); err != nil {
		if errors.As(err, &config.ConfigFileNotFoundError{}) {
			fmt.Println(err)
			return cfg, nil
		}
		return Config{}, err
	}

	return cfg, nil
}
