package cmd

import (
	"log"

	"GraphBench/pkg/graphing"
)

// Graph renders one or more .bench files into a single HTML chart page.
func Graph(args []string) {
	cfg, inputs := InitCmd("graph", args)

	if len(inputs) == 0 {
		log.Fatalf("No input files. Usage: graphbench graph [flags] <file.bench> [more.bench ...]")
	}

	if err := graphing.Generate(inputs, cfg.GraphOutput); err != nil {
		log.Fatalf("Graph generation failed: %v", err)
	}
	log.Printf("wrote %s", cfg.GraphOutput)
}
