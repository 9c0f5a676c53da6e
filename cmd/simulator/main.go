// Command simulator publishes synthetic briefcase fixes over MQTT,
// mostly inside the safe zone with occasional excursions beyond it.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type telemetryMessage struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsAlert   bool    `json:"is_alert"`
	Timestamp int64   `json:"timestamp"`
}

const (
	centerLat = -2.148252
	centerLon = 30.542430
	deviceID  = "briefcase-01"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("mycabinet-simulator")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("briefcase/device/%s/location", deviceID)
	log.Printf("connected to %s, publishing to %s every %ds...", broker, topic, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var lat, lon float64
		// 20% chance to wander well outside the default 0.05 degree zone.
		if rand.Float64() < 0.2 {
			lat = centerLat + (rand.Float64()-0.5)*0.4
			lon = centerLon + (rand.Float64()-0.5)*0.4
		} else {
			lat = centerLat + (rand.Float64()-0.5)*0.02
			lon = centerLon + (rand.Float64()-0.5)*0.02
		}

		msg := telemetryMessage{
			DeviceID:  deviceID,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published: %s", payload)
	}
}
