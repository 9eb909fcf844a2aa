package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pborman/getopt/v2"

	"merklelog.dev/merkletree/pkg/envelope"
	"merklelog.dev/merkletree/pkg/log"
)

type auditSettings struct {
	leafIndex  int
	outputFile string
}

func (s *auditSettings) parse(args []string) {
	const usage = `
Build a tree over leaves read one-per-line from stdin and emit an
audit (inclusion) proof envelope for the leaf at the given index.
`
	s.leafIndex = -1
	set := newOptionSet(args, "< leaves")
	set.FlagLong(&s.leafIndex, "index", 'i', "Index of the leaf to prove (0-based)", "index").Mandatory()
	set.FlagLong(&s.outputFile, "output", 'o', "Output file", "output-file")
	parseNoArgs(set, args, usage)
}

func runAudit(args []string) {
	var s auditSettings
	s.parse(args)

	tree, leaves := buildTreeFromStdin()
	if s.leafIndex < 0 || s.leafIndex >= len(leaves) {
		log.Fatal("leaf index %d out of range for %d leaves", s.leafIndex, len(leaves))
	}
	root, _ := tree.Root()
	proof, err := tree.AuditProof(s.leafIndex)
	if err != nil {
		log.Fatal("audit proof failed: %v", err)
	}
	env, err := envelope.SerializeAudit(tree.Digester(), root, leaves[s.leafIndex], proof, time.Now())
	if err != nil {
		log.Fatal("serializing envelope failed: %v", err)
	}
	withOutput(s.outputFile, func(f io.Writer) error {
		_, err := fmt.Fprintln(f, env)
		return err
	})
}

type verifyAuditSettings struct {
	rootHash string
}

func (s *verifyAuditSettings) parse(args []string) {
	const usage = `
Read an audit proof envelope from stdin and verify it against the
given trusted root hash (hex).
`
	set := newOptionSet(args, "< envelope")
	set.FlagLong(&s.rootHash, "root", 'r', "Trusted root hash in hex", "root-hex").Mandatory()
	parseNoArgs(set, args, usage)
}

func runVerifyAudit(args []string) {
	var s verifyAuditSettings
	s.parse(args)

	trustedRoot := mustHashFromHex(s.rootHash)
	leaf, root, proof, err := envelope.DeserializeAudit(readAllStdin())
	if err != nil {
		log.Fatal("malformed envelope: %v", err)
	}
	if root != trustedRoot {
		log.Fatal("envelope root does not match the trusted root")
	}
	if err := verifyAudit(leaf, proof, trustedRoot); err != nil {
		log.Fatal("verification failed: %v", err)
	}
	fmt.Println("OK")
}
