package main

import (
	"flag"
	"fmt"
	"os"

	"shaderview/internal/app"
	"shaderview/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Shader Viewer - WebGPU")
	fmt.Println("Controls:")
	fmt.Println("  Mouse drag    : Pan fractal / orbit surface")
	fmt.Println("  Mouse wheel   : Zoom (fractal)")
	fmt.Println("  Space         : Zoom in")
	fmt.Println("  Shift         : Zoom out")
	fmt.Println("  Tab           : Switch pipeline")
	fmt.Println("  R             : Reload shaders")
	fmt.Println("  Escape        : Exit")
	fmt.Println()

	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
