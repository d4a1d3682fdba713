package main

import (
	"log"
	"os"

	"github.com/m3rciful/txbot/app"
	"github.com/m3rciful/txbot/app/config"
	corecmd "github.com/m3rciful/txbot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.Bootstrap(cfg.(*config.Config))
		},
	})
	if err != nil {
		log.Printf("txbot: %v", err)
		os.Exit(1)
	}
}
