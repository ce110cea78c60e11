package remote

import (
	"fmt"
	"os/exec"
)

// SSHSubsystemCommand creates an exec.Cmd that invokes an SSH subsystem
// (e.g. sftp) on the remote host via the system ssh binary, so the user's
// existing ssh configuration, keys and agent all apply.
func SSHSubsystemCommand(loc Location, explicitKeyPath string, subsystem string) *exec.Cmd {
	args := make([]string, 0, 8)
	if loc.User != "" {
		args = append(args, "-l", loc.User)
	}
	if loc.Port != 0 {
		args = append(args, "-p", fmt.Sprintf("%d", loc.Port))
	}
	if explicitKeyPath != "" {
		args = append(args, "-i", explicitKeyPath)
	}
	args = append(args, "-s", loc.Host, subsystem)
	return exec.Command("ssh", args...)
}
