// Command omniscio-replay drives the predictor from a scripted sequence
// of I/O operations, printing the prediction made after each one. It
// exists to exercise and inspect the predictor without an instrumented
// application: a stand-in for the real call sites, not a production tool.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/google/shlex"

	"github.com/omniscio/omniscio-go/tracer"
)

var version = "dev"

var (
	dir        = flag.String("dir", ".", "directory to write predictor output files to")
	logpath    = flag.String("log", "", "log to file")
	scriptPath = flag.String("script", "", "path to a trace replay script (required)")
	versionFlag = flag.Bool("version", false, "print version")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s\n", buildVersion())
		return
	}

	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	if *scriptPath == "" {
		exitWithError(fmt.Errorf("-script is required"))
	}

	if err := run(*scriptPath); err != nil {
		exitWithError(err)
	}
}

func buildVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == "vcs.revision" {
			return fmt.Sprintf("%s @ %s", version, setting.Value)
		}
	}
	return version
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s -script <path> [options...]\n", os.Args[0])
	flag.PrintDefaults()
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	t := tracer.New()
	if err := t.Init(*dir, "omniscio.replay.", tracer.Options{}); err != nil {
		return fmt.Errorf("tracer.Init: %w", err)
	}
	defer t.Finalize()

	r := &replayer{tracer: t}

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		fields, err := shlex.Split(line)
		if err != nil {
			return fmt.Errorf("line %d: shlex.Split: %w", lineNum, err)
		}
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}

		if err := r.replayOne(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		preds, err := t.Next()
		if err != nil {
			log.Printf("predict: %v", err)
			continue
		}
		printPredictions(fields, preds)
	}
	return scanner.Err()
}

// replayer tracks the one piece of state a trace script never spells
// out explicitly: which handle the file currently open() belongs to.
// Handles are assigned in open() order since scripts don't name them.
type replayer struct {
	tracer     *tracer.Tracer
	nextHandle tracer.Handle
	handle     tracer.Handle
}

func (r *replayer) replayOne(fields []string) error {
	switch fields[0] {
	case "open":
		if len(fields) < 2 {
			return fmt.Errorf("open requires a filename")
		}
		api := parseAPI(fields, 2)
		if _, err := r.tracer.OpenStart(fields[1], api); err != nil {
			return err
		}
		r.nextHandle++
		r.handle = r.nextHandle
		return r.tracer.OpenEnd(true, r.handle)
	case "close":
		api := parseAPI(fields, 1)
		if _, err := r.tracer.CloseStart(api, r.handle); err != nil {
			return err
		}
		return r.tracer.CloseEnd(true)
	case "read":
		offset, size, err := parseOffsetSize(fields)
		if err != nil {
			return err
		}
		if _, err := r.tracer.ReadStart(parseAPI(fields, 3), r.handle, offset, size); err != nil {
			return err
		}
		return r.tracer.ReadEnd(true)
	case "write":
		offset, size, err := parseOffsetSize(fields)
		if err != nil {
			return err
		}
		if _, err := r.tracer.WriteStart(parseAPI(fields, 3), r.handle, offset, size); err != nil {
			return err
		}
		return r.tracer.WriteEnd(true)
	default:
		return fmt.Errorf("unrecognized operation %q", fields[0])
	}
}

func parseOffsetSize(fields []string) (offset, size int64, err error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("%s requires an offset and a size", fields[0])
	}
	offset, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse offset: %w", err)
	}
	size, err = strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse size: %w", err)
	}
	return offset, size, nil
}

func parseAPI(fields []string, idx int) tracer.ApiType {
	if idx >= len(fields) {
		return tracer.POSIX
	}
	switch fields[idx] {
	case "MPIIO":
		return tracer.MPIIO
	case "LIBC":
		return tracer.LIBC
	default:
		return tracer.POSIX
	}
}

func printPredictions(fields []string, preds []tracer.Prediction) {
	if len(preds) == 0 {
		fmt.Printf("%-30s -> (no prediction)\n", fields[0])
		return
	}
	for _, p := range preds {
		fmt.Printf("%-30s -> symbol %d  p=%.3f  size=%d  offset=%d\n",
			fields[0], p.Symbol, p.Probability, p.Size, p.Offset)
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
