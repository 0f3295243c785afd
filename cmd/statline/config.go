package main

import (
	"statline/internal/config"
)

const configPath = "statline.yaml"

func loadConfig() (*config.ProjectConfig, *config.Aliases, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	aliases := config.DefaultAliases()
	if cfg.Aliases != "" {
		aliases, err = config.LoadAliases(cfg.Aliases)
		if err != nil {
			return nil, nil, err
		}
	}
	return cfg, aliases, nil
}
