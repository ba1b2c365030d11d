/*
Package main is KITS cli tool (Keep Image Tag Selector)
removes older versions of local container images according to their tags.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/kits"
	"github.com/woozymasta/kits/internal/config"
	"github.com/woozymasta/kits/internal/docker"
)

var version = "dev"

type Options struct {
	// betteralign:ignore

	// Retention policy
	OptionsPolicy OptionsPolicy `group:"Retention policy"`
	// Listing source and config
	OptionsInput OptionsInput `group:"Input"`
	// Run mode
	OptionsRun OptionsRun `group:"Run"`
	// Logging
	OptionsLog OptionsLog `group:"Logging"`
}

type OptionsPolicy struct {
	KeepCount  int      `short:"n" long:"keep-count"  description:"Number of latest corresponding image tags to preserve" default:"1"`
	Latest     bool     `short:"l" long:"latest"      description:"Count 'latest' as one of the N images to preserve, otherwise ignore it completely"`
	Sort       string   `short:"s" long:"sort"        description:"Sort method of image tags" choice:"date" choice:"version" choice:"alpha" choice:"semver" default:"version"`
	IgnoreRepo bool     `short:"r" long:"ignore-repo" description:"Group images by name regardless of their registry/organization prefix"`
	Include    []string `short:"i" long:"include"     description:"Image (name or name:tag, glob allowed) to remove regardless of other rules"`
	Exclude    []string `short:"e" long:"exclude"     description:"Image (name or name:tag, glob allowed) to leave untouched"`
}

type OptionsInput struct {
	Config string `short:"c" long:"config" description:"YAML policy file, explicit flags take precedence"`
	Stdin  bool   `long:"stdin"            description:"Read the listing ('name tag' or 'name:tag' per line, newest first) from stdin"`
}

type OptionsRun struct {
	DryRun   bool `short:"d" long:"dry-run"  description:"Only list images kept ( ), removed (-), included (i), excluded (e) and forced (f)"`
	Print    bool `short:"p" long:"print"    description:"Print references to remove on stdout instead of removing them"`
	Force    bool `short:"f" long:"force"    description:"Force removal of images used by stopped containers"`
	Progress bool `long:"progress"           description:"Show a progress bar while removing"`
}

type OptionsLog struct {
	Level   string `long:"log-level"     description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Version bool   `short:"V" long:"version" description:"Print version and exit"`
}

// policyFlags lists the flags that override values from the config file.
var policyFlags = []string{"keep-count", "latest", "sort", "ignore-repo", "include", "exclude"}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default|flags.AllowBoolValues)
	parser.LongDescription = `KITS: Keep Image Tag Selector.
Removes older versions of local container images according to their tags:
keeps the N most recent tags per image by version, date or name order,
always removes dangling images and honors include/exclude rules.`
	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	if opt.OptionsLog.Version {
		fmt.Println(version)
		return 0
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "kits"})
	if lvl, err := log.ParseLevel(opt.OptionsLog.Level); err == nil {
		logger.SetLevel(lvl)
	}

	set := make(map[string]bool, len(policyFlags))
	for _, name := range policyFlags {
		if o := parser.FindOptionByLongName(name); o != nil && o.IsSet() {
			set[name] = true
		}
	}

	policy, err := buildPolicy(opt, set)
	if err != nil {
		logger.Error("invalid policy", "err", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}

	// the daemon is needed to list images or to remove them
	if !opt.OptionsInput.Stdin || !(opt.OptionsRun.DryRun || opt.OptionsRun.Print) {
		cli, err := docker.NewClient()
		if err != nil {
			logger.Error("docker", "err", err)
			return 2
		}
		defer cli.Close()
		a.rt = cli
	}

	if err := a.run(ctx, opt, policy); err != nil {
		logger.Error("failed", "err", err)

		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return 2
	}

	return 0
}

// buildPolicy starts from defaults, overlays the config file, then the
// explicitly set flags (all flags when no config file is given).
func buildPolicy(opt Options, set map[string]bool) (kits.Policy, error) {
	p := kits.DefaultPolicy()
	overlay := func(string) bool { return true }

	if path := opt.OptionsInput.Config; path != "" {
		f, err := config.Load(path)
		if err != nil {
			return kits.Policy{}, err
		}
		p = f.Apply(p)
		overlay = func(name string) bool { return set[name] }
	}

	op := opt.OptionsPolicy
	if overlay("keep-count") {
		p.KeepCount = op.KeepCount
	}
	if overlay("latest") {
		p.IncludeLatest = op.Latest
	}
	if overlay("sort") {
		p.Sort = kits.ParseSortMethod(op.Sort)
	}
	if overlay("ignore-repo") {
		p.IgnoreRepo = op.IgnoreRepo
	}
	if overlay("include") {
		p.Include = op.Include
	}
	if overlay("exclude") {
		p.Exclude = op.Exclude
	}

	p.DryRun = opt.OptionsRun.DryRun

	if p.KeepCount < 0 {
		return kits.Policy{}, fmt.Errorf("keep-count must be >= 0, got %d", p.KeepCount)
	}

	if err := p.Validate(); err != nil {
		return kits.Policy{}, err
	}

	return p, nil
}
