package main

import (
	"fmt"
	"io"
	"os"
	"time"

	set "github.com/deckarep/golang-set/v2"
	"github.com/pkg/sftp"
	"github.com/v-anand/treesnap/bytesutil"
	"github.com/v-anand/treesnap/fmte"
	"github.com/v-anand/treesnap/fstree"
	"github.com/v-anand/treesnap/remote"
	"github.com/v-anand/treesnap/scan"
)

// snapOptions carries everything the snapshot run needs beyond the location.
type snapOptions struct {
	flags        scan.Flags
	exclusions   set.Set[string]
	defaultMtime uint32
	outputPath   string
	sshKeyPath   string
	verbose      bool
}

// excludeCallback discards any entry whose name is in the exclusion set.
func excludeCallback(exclusions set.Set[string]) scan.Callback {
	return func(t *fstree.Tree, n *fstree.Node) (scan.Verdict, error) {
		if exclusions.Contains(n.Name()) {
			fmte.PrintfV("excluding \"%s\"\n", n.Name())
			return scan.Discard, nil
		}
		return scan.Accept, nil
	}
}

// treesnap scans the given location into a tree and writes its manifest.
func treesnap(loc remote.Location, opts snapOptions) error {
	if opts.verbose {
		fmte.VerboseOn()
	}
	tree := fstree.NewTree(opts.defaultMtime)
	cb := excludeCallback(opts.exclusions)

	fmte.Printf("Scanning %s...\n", displayPath(loc))
	start := time.Now()
	var scanErr error
	if loc.IsRemote {
		scanErr = scanRemote(loc, opts, tree, cb)
	} else {
		scanErr = scan.Scan(tree, tree.Root, loc.Path, opts.flags, cb)
	}
	if scanErr != nil {
		return fmt.Errorf("error scanning %s: %w", displayPath(loc), scanErr)
	}
	nodes, totalSize := tree.Stats()
	fmte.Printf("Captured %d entries (regular files totalling %s) in %.1fs\n",
		nodes, bytesutil.BinaryFormat(totalSize), time.Since(start).Seconds())

	out := os.Stdout
	if opts.outputPath != "" {
		f, createErr := os.Create(opts.outputPath)
		if createErr != nil {
			return fmt.Errorf("couldn't create file '%s': %w", opts.outputPath, createErr)
		}
		defer f.Close()
		out = f
	}
	if err := writeManifest(out, tree); err != nil {
		return fmt.Errorf("couldn't write manifest: %w", err)
	}
	if opts.outputPath != "" {
		fmte.Printf("Manifest written to \"%s\"\n", opts.outputPath)
	}
	return nil
}

// scanRemote snapshots a remote directory by piping the sftp subsystem
// through the system ssh binary and running the portable walker over it.
func scanRemote(loc remote.Location, opts snapOptions, tree *fstree.Tree, cb scan.Callback) error {
	sshCmd := remote.SSHSubsystemCommand(loc, opts.sshKeyPath, "sftp")
	sshCmd.Stderr = os.Stderr

	sshStdin, err := sshCmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("SFTP stdin pipe failed: %w", err)
	}
	sshStdout, err := sshCmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("SFTP stdout pipe failed: %w", err)
	}
	if err := sshCmd.Start(); err != nil {
		return fmt.Errorf("SFTP ssh command failed: %w", err)
	}

	sftpClient, err := sftp.NewClientPipe(sshStdout, sshStdin)
	if err != nil {
		sshCmd.Process.Kill()
		sshCmd.Wait()
		return fmt.Errorf("SFTP connection failed: %w", err)
	}
	defer func() {
		sftpClient.Close()
		sshStdin.Close()
		sshCmd.Wait()
	}()

	return scan.ScanFrom(scan.NewSFTPSource(sftpClient), tree, tree.Root, loc.Path, opts.flags, cb)
}

// writeManifest emits one line per node: mode (octal), owner, size,
// modification timestamp and path, with symlink targets appended.
func writeManifest(w io.Writer, tree *fstree.Tree) error {
	return tree.Walk(func(path string, n *fstree.Node) error {
		if path == "" {
			return nil // root has no manifest line
		}
		suffix := ""
		if n.IsSymlink() {
			suffix = " -> " + n.Target
		}
		_, err := fmt.Fprintf(w, "%06o %d:%d %d %d /%s%s\n",
			n.Mode, n.UID, n.GID, n.Size, n.ModTime, path, suffix)
		return err
	})
}

func displayPath(loc remote.Location) string {
	if loc.IsRemote {
		return loc.SSHSpec() + ":" + loc.Path
	}
	return loc.Path
}
