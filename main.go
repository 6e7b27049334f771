// main.go - Main entry point: runs a cartridge image against the CPU core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	iplPath := flag.String("ipl", "", "Boot ROM (IPL) image path")
	ticks := flag.Uint64("ticks", 1_000_000, "Number of pipeline ticks to run")
	skipExceptions := flag.Bool("skip-exceptions", false, "Elide overflow/alignment checks for benchmarking")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: n64run [options] cartridge.z64\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cartPath := flag.Arg(0)
	cart, err := os.ReadFile(cartPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading cartridge: %v\n", err)
		os.Exit(1)
	}

	m := NewMachine()
	if err := m.LoadCartridge(cart); err != nil {
		fmt.Fprintf(os.Stderr, "error: loading cartridge: %v\n", err)
		os.Exit(1)
	}

	if *iplPath != "" {
		ipl, err := os.ReadFile(*iplPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: reading IPL: %v\n", err)
			os.Exit(1)
		}
		if err := m.LoadIPL(ipl); err != nil {
			fmt.Fprintf(os.Stderr, "error: loading IPL: %v\n", err)
			os.Exit(1)
		}
	}

	m.Reset()
	m.SetSkipExceptions(*skipExceptions)

	ran, err := m.Run(int(*ticks))
	if err != nil {
		fmt.Fprintf(os.Stderr, "stopped after %d ticks: %v\n", ran, err)
		os.Exit(1)
	}

	fmt.Printf("ran %d ticks, pc=%#010x\n", ran, m.CPU.pc)
}
