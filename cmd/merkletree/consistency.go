package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pborman/getopt/v2"

	"merklelog.dev/merkletree/pkg/envelope"
	"merklelog.dev/merkletree/pkg/log"
)

type consistencySettings struct {
	oldSize    int
	outputFile string
}

func (s *consistencySettings) parse(args []string) {
	const usage = `
Build a tree over leaves read one-per-line from stdin and emit a
consistency proof envelope between the first -m leaves and the full
leaf set.
`
	set := newOptionSet(args, "< leaves")
	set.FlagLong(&s.oldSize, "old-size", 'm', "Old tree size to prove consistency from", "old-size").Mandatory()
	set.FlagLong(&s.outputFile, "output", 'o', "Output file", "output-file")
	parseNoArgs(set, args, usage)
}

func runConsistency(args []string) {
	var s consistencySettings
	s.parse(args)

	tree, leaves := buildTreeFromStdin()
	if s.oldSize <= 0 || s.oldSize > len(leaves) {
		log.Fatal("old size %d out of range for %d leaves", s.oldSize, len(leaves))
	}
	newRoot, _ := tree.Root()

	old := buildPrefixTree(leaves[:s.oldSize])
	oldRoot, _ := old.Root()

	proof, err := tree.ConsistencyProof(s.oldSize)
	if err != nil {
		log.Fatal("consistency proof failed: %v", err)
	}
	env, err := envelope.SerializeConsistency(tree.Digester(), oldRoot, newRoot, proof, time.Now())
	if err != nil {
		log.Fatal("serializing envelope failed: %v", err)
	}
	withOutput(s.outputFile, func(f io.Writer) error {
		_, err := fmt.Fprintln(f, env)
		return err
	})
}

type verifyConsistencySettings struct {
	oldRootHash string
	newRootHash string
}

func (s *verifyConsistencySettings) parse(args []string) {
	const usage = `
Read a consistency proof envelope from stdin and verify it against
the given trusted old and new root hashes (hex).
`
	set := newOptionSet(args, "< envelope")
	set.FlagLong(&s.oldRootHash, "old-root", 0, "Trusted old root hash in hex", "root-hex").Mandatory()
	set.FlagLong(&s.newRootHash, "new-root", 0, "Trusted new root hash in hex", "root-hex").Mandatory()
	parseNoArgs(set, args, usage)
}

func runVerifyConsistency(args []string) {
	var s verifyConsistencySettings
	s.parse(args)

	trustedOld := mustHashFromHex(s.oldRootHash)
	trustedNew := mustHashFromHex(s.newRootHash)

	oldRoot, newRoot, proof, err := envelope.DeserializeConsistency(readAllStdin())
	if err != nil {
		log.Fatal("malformed envelope: %v", err)
	}
	if oldRoot != trustedOld || newRoot != trustedNew {
		log.Fatal("envelope roots do not match the trusted roots")
	}
	if err := verifyConsistency(proof, trustedOld); err != nil {
		log.Fatal("verification failed: %v", err)
	}
	fmt.Println("OK")
}
