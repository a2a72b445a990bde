// Command pietasm compiles PietASM source into a Piet PNG image, or
// compiles and runs it directly without writing the image to disk.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/orez-/piet-tools/piet"
	"github.com/orez-/piet-tools/pietasm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s build [-listing] filename codel-size\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s run filename codel-size\n", os.Args[0])
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	listing := fs.Bool("listing", false, "dump the lowered instruction stream to stderr instead of skipping it")
	fs.Parse(args)

	filename, codelSize, err := parsePositional(fs)
	if err != nil {
		return err
	}

	lines, err := readSourceLines(filename)
	if err != nil {
		return err
	}
	prog, err := pietasm.Assemble(lines)
	if err != nil {
		return err
	}
	if *listing {
		for _, line := range pietasm.Listing(prog) {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	grid, err := pietasm.Layout(prog)
	if err != nil {
		return err
	}

	outFilename := filename + ".png"
	out, err := os.Create(outFilename)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := pietasm.EncodePNG(out, grid, codelSize); err != nil {
		return err
	}
	fmt.Printf("File saved to %s\n", outFilename)
	return nil
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Parse(args)

	filename, _, err := parsePositional(fs)
	if err != nil {
		return err
	}

	lines, err := readSourceLines(filename)
	if err != nil {
		return err
	}
	grid, err := pietasm.Compile(lines)
	if err != nil {
		return err
	}

	e := piet.NewEngine(grid, os.Stdin, os.Stdout)
	if err := e.Run(); err != nil {
		return err
	}
	return nil
}

func parsePositional(fs *flag.FlagSet) (filename string, codelSize int, err error) {
	if fs.NArg() != 2 {
		usage()
		return "", 0, fmt.Errorf("expected filename and codel-size, got %d arguments", fs.NArg())
	}
	filename = fs.Arg(0)
	codelSize, err = strconv.Atoi(fs.Arg(1))
	if err != nil || codelSize <= 0 {
		return "", 0, fmt.Errorf("codel-size must be a positive integer")
	}
	return filename, codelSize, nil
}

func readSourceLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
