// Command pieti interprets a Piet program stored as a PNG image.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/orez-/piet-tools/piet"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s filename codel-size\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	filename := flag.Arg(0)
	codelSize, err := strconv.Atoi(flag.Arg(1))
	if err != nil || codelSize <= 0 {
		fmt.Fprintln(os.Stderr, "codel-size must be a positive integer")
		os.Exit(2)
	}

	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}
	defer f.Close()

	grid, err := piet.Load(f, codelSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}

	e := piet.NewEngine(grid, os.Stdin, os.Stdout)
	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}
