// Command merkletree builds a tamper-evident tree over leaves read
// from stdin and produces or verifies the JSON audit/consistency
// proof envelopes defined by this module's pkg/envelope package. It
// also wraps pkg/checkpoint for generating, signing, and verifying
// signed tree-size commitments.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dchest/safefile"
	"github.com/pborman/getopt/v2"

	"merklelog.dev/merkletree/internal/fmtio"
	"merklelog.dev/merkletree/internal/version"
	"merklelog.dev/merkletree/pkg/log"
)

func main() {
	const usage = `
Build Merkle trees and produce or verify inclusion/consistency proof
envelopes.

Usage: merkletree [--help|help] [--version|version]
   or: merkletree build [options]
   or: merkletree audit [options]
   or: merkletree verify-audit [options]
   or: merkletree consistency [options]
   or: merkletree verify-consistency [options]
   or: merkletree checkpoint generate [options]
   or: merkletree checkpoint sign [options]
   or: merkletree checkpoint verify [options]

Options:
      --help     Show usage message and exit
  -v, --version  Show program version and exit
`
	if len(os.Args) < 2 {
		log.Fatal("%s", usage[1:])
	}

	switch os.Args[1] {
	default:
		log.Fatal("%s", usage[1:])
	case "help", "--help":
		fmt.Print(usage[1:])
	case "version", "--version", "-v":
		version.DisplayVersion("merkletree")
	case "build":
		runBuild(os.Args)
	case "audit":
		runAudit(os.Args)
	case "verify-audit":
		runVerifyAudit(os.Args)
	case "consistency":
		runConsistency(os.Args)
	case "verify-consistency":
		runVerifyConsistency(os.Args)
	case "checkpoint":
		if len(os.Args) < 3 {
			log.Fatal("Usage: merkletree checkpoint generate|sign|verify [options]")
		}
		switch os.Args[2] {
		default:
			log.Fatal("Unknown checkpoint subcommand %q", os.Args[2])
		case "generate":
			runCheckpointGenerate(os.Args[1:])
		case "sign":
			runCheckpointSign(os.Args[1:])
		case "verify":
			runCheckpointVerify(os.Args[1:])
		}
	}
}

func newOptionSet(args []string, params string) *getopt.Set {
	set := getopt.New()
	set.SetProgram(args[0])
	set.SetParameters(params)
	return set
}

// Also adds and processes the help option.
func parseArgs(set *getopt.Set, args []string, maxArgs int, usage string) {
	help := false
	set.FlagLong(&help, "help", 0, "Show usage message and exit")
	err := set.Getopt(args[1:], nil)
	if help {
		fmt.Print(usage[1:] + "\n")
		set.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if err != nil {
		log.Error("err: %v\n", err)
		set.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	if set.NArgs() > maxArgs {
		log.Fatal("Too many arguments.")
	}
}

func parseNoArgs(set *getopt.Set, args []string, usage string) {
	parseArgs(set, args, 0, usage)
}

// withOutput writes through a safefile temp-and-rename when
// outputFile is non-empty, so a crash mid-write never leaves a
// truncated file at the destination path; otherwise it writes
// directly to stdout.
func withOutput(outputFile string, f func(io.Writer) error) {
	if len(outputFile) == 0 {
		if err := f(os.Stdout); err != nil {
			log.Fatal("writing output failed: %v", err)
		}
		return
	}
	file, err := safefile.Create(outputFile, 0644)
	if err != nil {
		log.Fatal("failed to open file %q: %v", outputFile, err)
	}
	defer file.Close()
	if err := f(file); err != nil {
		log.Fatal("writing output failed: %v", err)
	}
	if err := file.Commit(); err != nil {
		log.Fatal("committing file %q failed: %v", outputFile, err)
	}
}

func readAllStdin() string {
	s, err := fmtio.StringFromStdin()
	if err != nil {
		log.Fatal("reading stdin failed: %v", err)
	}
	return s
}
