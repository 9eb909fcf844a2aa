package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pborman/getopt/v2"

	"merklelog.dev/merkletree/pkg/checkpoint"
	"merklelog.dev/merkletree/pkg/log"
)

type checkpointGenerateSettings struct {
	name       string
	outputFile string
}

func (s *checkpointGenerateSettings) parse(args []string) {
	const usage = `
Generate a fresh Ed25519 checkpoint signing key pair. The signing key
is written to the given file; the verifier key gets a ".pub" suffix.
`
	set := newOptionSet(args, "")
	set.FlagLong(&s.name, "name", 'n', "Checkpoint origin this key signs for", "origin").Mandatory()
	set.FlagLong(&s.outputFile, "output", 'o', "File to store the signing key in", "key-file").Mandatory()
	parseNoArgs(set, args, usage)
}

func runCheckpointGenerate(args []string) {
	var s checkpointGenerateSettings
	s.parse(args)

	origin, err := checkpoint.NormalizeOrigin(s.name)
	if err != nil {
		log.Fatal("invalid origin: %v", err)
	}
	signingKey, verifierKey, err := checkpoint.GenerateKeyPair(origin)
	if err != nil {
		log.Fatal("generating key failed: %v", err)
	}
	withOutput(s.outputFile, func(f io.Writer) error {
		_, err := fmt.Fprintln(f, signingKey)
		return err
	})
	withOutput(s.outputFile+".pub", func(f io.Writer) error {
		_, err := fmt.Fprintln(f, verifierKey)
		return err
	})
}

type checkpointSignSettings struct {
	keyFile    string
	origin     string
	size       uint64
	rootHash   string
	outputFile string
}

func (s *checkpointSignSettings) parse(args []string) {
	const usage = `
Sign a tree size and root hash as a checkpoint under the given
origin, using the signing key in keyFile.
`
	set := newOptionSet(args, "")
	set.FlagLong(&s.keyFile, "key", 'k', "Signing key file", "key-file").Mandatory()
	set.FlagLong(&s.origin, "name", 'n', "Checkpoint origin", "origin").Mandatory()
	set.FlagLong(&s.size, "size", 's', "Tree size", "size").Mandatory()
	set.FlagLong(&s.rootHash, "root", 'r', "Root hash in hex", "root-hex").Mandatory()
	set.FlagLong(&s.outputFile, "output", 'o', "Output file", "output-file")
	parseNoArgs(set, args, usage)
}

func runCheckpointSign(args []string) {
	var s checkpointSignSettings
	s.parse(args)

	signingKey := readKeyFile(s.keyFile)
	origin, err := checkpoint.NormalizeOrigin(s.origin)
	if err != nil {
		log.Fatal("invalid origin: %v", err)
	}
	c := &checkpoint.Checkpoint{
		Origin:   origin,
		Size:     s.size,
		RootHash: mustHashFromHex(s.rootHash),
	}
	signed, err := checkpoint.Sign(c, signingKey)
	if err != nil {
		log.Fatal("signing failed: %v", err)
	}
	withOutput(s.outputFile, func(f io.Writer) error {
		_, err := io.WriteString(f, signed)
		return err
	})
}

type checkpointVerifySettings struct {
	keyFile string
}

func (s *checkpointVerifySettings) parse(args []string) {
	const usage = `
Read a signed checkpoint on stdin, verify it against the verifier key
in keyFile, and print its origin, size, and root hash.
`
	set := newOptionSet(args, "< checkpoint")
	set.FlagLong(&s.keyFile, "key", 'k', "Verifier key file", "key-file").Mandatory()
	parseNoArgs(set, args, usage)
}

func runCheckpointVerify(args []string) {
	var s checkpointVerifySettings
	s.parse(args)

	verifierKey := readKeyFile(s.keyFile)
	c, err := checkpoint.Open(readAllStdin(), verifierKey)
	if err != nil {
		log.Fatal("verification failed: %v", err)
	}
	fmt.Printf("origin %s\nsize %d\nroot %s\n", c.Origin, c.Size, c.RootHash.Hex())
}

func readKeyFile(fileName string) string {
	contents, err := os.ReadFile(fileName)
	if err != nil {
		log.Fatal("reading key file %q failed: %v", fileName, err)
	}
	return strings.TrimSpace(string(contents))
}
