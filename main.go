package main

import (
	"fmt"
	"os"
	"strings"

	"postboard/app/config"
	"postboard/service"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line. It is separate from main so tests
// can drive it with a stubbed exit.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("postboard version %s\n", CliVersion)
	case "serve":
		exit(runService([]string{"serve"}))
	case "db":
		exit(runService(os.Args[2:]))
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func runService(args []string) int {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return service.HandleCommand(cfg, args)
}

func printHelp() {
	helpText := `Usage: postboard <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog API with the configured store.
  db <command>                   Manage the Badger database (init, clean, backup [dir], restore <file>, help).

Configuration is read from .env, config.yml and POSTBOARD_* environment variables.
`
	fmt.Println(helpText)
}
