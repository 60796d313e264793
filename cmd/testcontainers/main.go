package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable Postgres container for local development and testing.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var pg *testutil.PostgresContainer
	go func() {
		var err error
		pg, err = testutil.StartPostgres(nil)
		if err != nil {
			log.Fatalf("Failed to create test container: %v\n", err)
		}
		log.Printf("Postgres ready, export these to point the server at it:")
		for key, value := range pg.DSNEnv() {
			fmt.Printf("export %s=%s\n", key, value)
		}
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	if pg != nil {
		pg.Terminate(nil)
	}
}
