package main

import (
	"flag"
	"log"

	"github.com/gekko3d/flycam/internal/demo"
)

func main() {
	configPath := flag.String("config", "", "YAML config, reloaded on change")
	broker := flag.String("mqtt", "", "MQTT broker URL for pose telemetry, e.g. tcp://localhost:1883")
	wsAddr := flag.String("ws", "", "address for the websocket pose stream, e.g. :8080")
	every := flag.Int("publish-every", 6, "frames between telemetry publishes")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if err := demo.Run(demo.Options{
		ConfigPath:    *configPath,
		MQTTBroker:    *broker,
		WebsocketAddr: *wsAddr,
		PublishEvery:  *every,
		Debug:         *debug,
	}); err != nil {
		log.Fatalf("flycam-demo: %v", err)
	}
}
