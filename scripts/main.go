package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carsapp/cars/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "init-db",
		Description: "Create the cars table in a local Postgres",
		Run:         internal.InitDatabase,
	},
	{
		Name:        "seed-cars",
		Description: "Insert sample inactive cars",
		Run:         internal.SeedCars,
	},
	{
		Name:        "test-kafka",
		Description: "Check the configured Kafka brokers are reachable",
		Run:         internal.TestKafkaConnection,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		count        string
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&count, "count", "", "Number of cars to seed")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	if count != "" {
		os.Setenv("SEED_COUNT", count)
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s", cmdName)
}
