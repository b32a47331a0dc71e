package main

import (
	"log"

	"github.com/m3rciful/coachbot/core/cmd"
	"github.com/m3rciful/coachbot/internal/app"
	"github.com/m3rciful/coachbot/internal/config"
)

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return app.Bootstrap(carrier.(*config.AppConfig))
		},
	})
	if err != nil {
		log.Fatalf("coachbot: %v", err)
	}
}
