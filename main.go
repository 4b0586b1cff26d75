package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
	"github.com/ii64/psvlink/cmd"
	"github.com/ii64/psvlink/conf"
	"github.com/ii64/psvlink/lib/proc"
)

// setupLogging points glog at stderr. The command line belongs to ld, so
// glog's own flags are set here rather than parsed.
func setupLogging(cfg *conf.Config) {
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(cfg.Verbosity))
}

func handleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		glog.Warningf("received %s, stopping child processes", sig)
		proc.KillActive()
		glog.Flush()
		os.Exit(signalExitCode(sig))
	}()
}

// signalExitCode follows the shell convention of 128 plus the signal number.
func signalExitCode(sig os.Signal) int {
	if n, ok := sig.(syscall.Signal); ok {
		return 128 + int(n)
	}
	return 1
}

func _main(args []string) {
	var err error
	var exitCode int
	var cfg *conf.Config
	cfg, err = conf.Load(conf.ConfigPath(os.LookupEnv))
	if err != nil {
		goto Exit
	}
	err = cfg.Vaildate()
	if err != nil {
		goto Exit
	}
	setupLogging(cfg)
	handleSignals()

	err = cmd.Main(cfg, args)
	if err != nil {
		goto Exit
	}
Exit:
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		exitCode = 1
	}
	glog.Flush()
	os.Exit(exitCode)
}

func main() {
	_main(os.Args[1:])
}
