package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	flag "github.com/spf13/pflag"
	"github.com/v-anand/treesnap/fmte"
	"github.com/v-anand/treesnap/fstree"
	"github.com/v-anand/treesnap/lib"
	"github.com/v-anand/treesnap/remote"
	"github.com/v-anand/treesnap/scan"
)

// Constants indicating return codes of this tool, when run from command line
const (
	exitCodeSuccess = iota
	exitCodeInvalidNumArgs
	exitCodeSourceDirError
	exitCodeExclusionFilesError
	exitCodeInvalidExclusions
	exitCodeScanError
)

//go:embed default_exclusions.txt
var defaultExclusionsStr string

var flags struct {
	isHelp           func() bool
	getExcludedNames func() set.Set[string]
	getScanFlags     func() scan.Flags
	getDefaultMtime  func() uint32
	getOutputPath    func() string
	getSSHKeyPath    func() string
	isVerboseOn      func() bool
}

func setupExclusionsOpt() {
	const exclusionsFlag = "exclusions"
	defaultExclusions, defaultExclusionsExamples, _ := lib.ReadNameSet(
		strings.NewReader(defaultExclusionsStr), "default exclusions")
	excludesListFilePathPtr := flag.String(exclusionsFlag, "",
		fmt.Sprintf("path to file containing newline separated list of file/directory names to be excluded\n"+
			"(if this is not set, by default these will be ignored: %s etc.)",
			strings.Join(defaultExclusionsExamples, ", ")))
	flags.getExcludedNames = func() set.Set[string] {
		excludesListFilePath := *excludesListFilePathPtr
		if excludesListFilePath == "" {
			return defaultExclusions
		}
		if !lib.IsReadableFile(excludesListFilePath) {
			fmte.PrintfErr("error: argument to flag --%s should be a file\n", exclusionsFlag)
			flag.Usage()
			os.Exit(exitCodeInvalidExclusions)
		}
		f, err := os.Open(excludesListFilePath)
		if err != nil {
			fmte.PrintfErr("error: argument to flag --%s isn't readable: %+v\n", exclusionsFlag, err)
			flag.Usage()
			os.Exit(exitCodeExclusionFilesError)
		}
		defer f.Close()
		exclusions, _, readErr := lib.ReadNameSet(f, excludesListFilePath)
		if readErr != nil {
			fmte.PrintfErr("error: couldn't read exclusions from \"%s\": %+v\n", excludesListFilePath, readErr)
			os.Exit(exitCodeExclusionFilesError)
		}
		return exclusions
	}
}

func setupScanFlagsOpts() {
	noRecursionPtr := flag.Bool("no-recursion", false, "don't descend into subdirectories")
	oneFilesystemPtr := flag.Bool("one-filesystem", false, "don't cross mount points while scanning")
	keepTimePtr := flag.Bool("keep-time", false, "record each entry's real modification time\n"+
		"(by default all entries get the --default-mtime value)")
	noFilesPtr := flag.Bool("no-files", false, "leave out regular files")
	noDirsPtr := flag.Bool("no-dirs", false, "leave out directories")
	noSymlinksPtr := flag.Bool("no-symlinks", false, "leave out symbolic links")
	noSpecialsPtr := flag.Bool("no-specials", false, "leave out sockets, fifos and device nodes")
	flags.getScanFlags = func() scan.Flags {
		var sf scan.Flags
		if *noRecursionPtr {
			sf |= scan.NoRecursion
		}
		if *oneFilesystemPtr {
			sf |= scan.OneFilesystem
		}
		if *keepTimePtr {
			sf |= scan.KeepTime
		}
		if *noFilesPtr {
			sf |= scan.NoFiles
		}
		if *noDirsPtr {
			sf |= scan.NoDirs
		}
		if *noSymlinksPtr {
			sf |= scan.NoSymlinks
		}
		if *noSpecialsPtr {
			sf |= scan.NoSockets | scan.NoFifos | scan.NoBlockDevs | scan.NoCharDevs
		}
		return sf
	}
}

func setupDefaultMtimeOpt() {
	defaultMtimePtr := flag.Int64("default-mtime", 0,
		"timestamp given to entries when --keep-time is not set")
	flags.getDefaultMtime = func() uint32 {
		return fstree.ClampMtime(*defaultMtimePtr)
	}
}

func setupOutputOpt() {
	outputPtr := flag.String("output", "", "write the manifest to this file instead of standard output")
	flags.getOutputPath = func() string {
		return *outputPtr
	}
}

func setupSSHKeyOpt() {
	sshKeyPtr := flag.String("ssh-key", "", "private key to use when scanning a remote location")
	flags.getSSHKeyPath = func() string {
		return *sshKeyPtr
	}
}

func setupVerboseOpt() {
	verbosePtr := flag.Bool("verbose", false, "print each exclusion as it happens")
	flags.isVerboseOn = func() bool {
		return *verbosePtr
	}
}

func setupHelpOpt() {
	helpPtr := flag.Bool("help", false, "display help")
	flags.isHelp = func() bool {
		return *helpPtr
	}
}

func setupUsage() {
	flag.Usage = func() {
		fmte.PrintfErr("Run \"treesnap --help\" for usage\n")
	}
}

func showHelpAndExit() {
	flag.CommandLine.SetOutput(os.Stdout)
	fmt.Printf(`treesnap captures a directory hierarchy (local or remote over SFTP) as an
in-memory filesystem tree and writes a manifest of it.

Usage:
	 treesnap <flags> [directory]

where,
	directory   Local path, or remote location as [user@]host:[port:]path

flags: (all optional)
`)
	flag.PrintDefaults()
	os.Exit(exitCodeSuccess)
}

func handlePanic() {
	err := recover()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Program exited unexpectedly. "+
			"Please report the below error to the author:\n"+
			"%+v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, string(debug.Stack()))
	}
}

func setupFlags() {
	setupHelpOpt()
	setupExclusionsOpt()
	setupScanFlagsOpts()
	setupDefaultMtimeOpt()
	setupOutputOpt()
	setupSSHKeyOpt()
	setupVerboseOpt()
	setupUsage()
}

func readLocation() remote.Location {
	loc, err := remote.ParseLocation(flag.Arg(0))
	if err != nil {
		fmte.PrintfErr("error: %+v\n", err)
		flag.Usage()
		os.Exit(exitCodeSourceDirError)
	}
	if !loc.IsRemote {
		dirPath, absErr := filepath.Abs(loc.Path)
		if absErr != nil || !lib.IsReadableDirectory(dirPath) {
			fmte.PrintfErr("error: path \"%s\" is not a readable directory\n", loc.Path)
			flag.Usage()
			os.Exit(exitCodeSourceDirError)
		}
		loc.Path = dirPath
	}
	return loc
}

func main() {
	defer handlePanic()
	setupFlags()
	flag.Parse()
	if flag.NArg() == 0 && flag.NFlag() == 0 {
		fmte.PrintfErr("error: no input directory passed\n")
		flag.Usage()
		os.Exit(exitCodeInvalidNumArgs)
	}
	if flags.isHelp() {
		showHelpAndExit()
	}
	if flag.NArg() != 1 {
		fmte.PrintfErr("error: one argument expected: directory path\n")
		flag.Usage()
		os.Exit(exitCodeInvalidNumArgs)
	}
	loc := readLocation()
	opts := snapOptions{
		flags:        flags.getScanFlags(),
		exclusions:   flags.getExcludedNames(),
		defaultMtime: flags.getDefaultMtime(),
		outputPath:   flags.getOutputPath(),
		sshKeyPath:   flags.getSSHKeyPath(),
		verbose:      flags.isVerboseOn(),
	}
	if snapErr := treesnap(loc, opts); snapErr != nil {
		fmte.PrintfErr("error while scanning: %+v\n", snapErr)
		os.Exit(exitCodeScanError)
	}
}
