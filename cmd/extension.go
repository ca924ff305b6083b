package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/stockboard/config"
)

// EnvVerbose tells extensions whether -v was given. The other settings are
// passed as the STOCKBOARD_* variables of the config package.
const EnvVerbose = "STOCKBOARD_VERBOSE"

// RunExtension attempts to find and execute an external sboard-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "sboard-" + subcommand

	cfg, cfgErr := settings()
	level, pretty := "", false
	if cfgErr == nil {
		level, pretty = cfg.LogLevel, cfg.LogPretty
	}
	log := config.NewLogger(level, pretty).With().Str("extension", externalCmdName).Logger()

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Msg("not found in PATH")
		return false, 0
	}
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
		return true, 1
	}
	log.Debug().Str("path", lp).Msg("running")

	// Found external command, execute it
	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, cfg.Environ()...)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
