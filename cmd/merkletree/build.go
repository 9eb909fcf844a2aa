package main

import (
	"fmt"
	"io"

	"github.com/pborman/getopt/v2"

	"merklelog.dev/merkletree/internal/fmtio"
	"merklelog.dev/merkletree/pkg/crypto"
	"merklelog.dev/merkletree/pkg/log"
	"merklelog.dev/merkletree/pkg/merkle"
)

type buildSettings struct {
	outputFile string
}

func (s *buildSettings) parse(args []string) {
	const usage = `
Build a tree over leaves read one-per-line from stdin and print its
size and root hash in hex. Override the default destination (stdout)
with -o.
`
	set := newOptionSet(args, "< leaves")
	set.FlagLong(&s.outputFile, "output", 'o', "Output file", "output-file")
	parseNoArgs(set, args, usage)
}

func runBuild(args []string) {
	var s buildSettings
	s.parse(args)

	lines, err := fmtio.LinesFromStdin()
	if err != nil {
		log.Fatal("reading stdin failed: %v", err)
	}
	if len(lines) == 0 {
		log.Fatal("no leaves on stdin")
	}

	tree := merkle.NewSHA256()
	for _, line := range lines {
		tree.AppendLeaf(tree.Digester().DigestOf([]byte(line)))
	}
	root, err := tree.Build()
	if err != nil {
		log.Fatal("build failed: %v", err)
	}
	withOutput(s.outputFile, func(f io.Writer) error {
		_, err := fmt.Fprintf(f, "size %d\nroot %s\n", tree.Size(), root.Hex())
		return err
	})
}

// buildTreeFromStdin is shared by the audit/consistency subcommands:
// it reads leaves from stdin, builds the full tree, and returns it
// together with the per-leaf digests in input order.
func buildTreeFromStdin() (*merkle.Tree, []crypto.Hash) {
	lines, err := fmtio.LinesFromStdin()
	if err != nil {
		log.Fatal("reading stdin failed: %v", err)
	}
	if len(lines) == 0 {
		log.Fatal("no leaves on stdin")
	}
	tree := merkle.NewSHA256()
	leaves := make([]crypto.Hash, len(lines))
	for i, line := range lines {
		h := tree.Digester().DigestOf([]byte(line))
		leaves[i] = h
		tree.AppendLeaf(h)
	}
	if _, err := tree.Build(); err != nil {
		log.Fatal("build failed: %v", err)
	}
	return tree, leaves
}

// buildPrefixTree builds a tree over exactly the given leaf digests,
// used to independently recompute an old root for the consistency
// subcommand.
func buildPrefixTree(leaves []crypto.Hash) *merkle.Tree {
	tree := merkle.NewSHA256()
	tree.AppendLeaves(leaves)
	if _, err := tree.Build(); err != nil {
		log.Fatal("build failed: %v", err)
	}
	return tree
}
