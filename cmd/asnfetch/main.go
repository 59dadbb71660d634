// Command asnfetch resolves an IP address to the autonomous system
// number(s) announcing it and the corresponding holder names, by
// querying one of several remote data sources.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/asnfetch/asnfetch/internal/asnlookup"
	"github.com/asnfetch/asnfetch/internal/errorx"
	"github.com/asnfetch/asnfetch/internal/model"
	"github.com/asnfetch/asnfetch/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Options contains the options you can set from the CLI.
type Options struct {
	Provider string
	Verbose  bool
}

func main() {
	var globalOptions Options
	rootCmd := &cobra.Command{
		Use:     "asnfetch IP_ADDRESS",
		Short:   "asnfetch shows which autonomous systems announce an IP address",
		Args:    cobra.ExactArgs(1),
		Version: version.Version,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(mainWithOptions(args[0], &globalOptions, os.Stdout, os.Stderr))
		},
	}
	rootCmd.SetVersionTemplate("{{ .Version }}\n")
	flags := rootCmd.Flags()

	flags.StringVarP(
		&globalOptions.Provider,
		"provider",
		"p",
		asnlookup.DefaultProvider,
		fmt.Sprintf("data source to query (one of: %s)",
			strings.Join(asnlookup.Providers(), ", ")),
	)

	flags.BoolVarP(
		&globalOptions.Verbose,
		"verbose",
		"v",
		false,
		"increase verbosity level",
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mainWithOptions performs the lookup described by the command line
// and returns the exit code the process should exit with.
func mainWithOptions(ip string, options *Options, stdout, stderr io.Writer) int {
	logger := &log.Logger{Level: log.InfoLevel, Handler: &logHandler{Writer: stderr}}
	if options.Verbose {
		logger.Level = log.DebugLevel
	}

	// validate locally so that we never issue a request for input
	// that cannot possibly be an IP address
	if net.ParseIP(ip) == nil {
		logger.Warnf("lookup failed: %s", errorx.NewInvalidInputError(ip))
		return 1
	}

	resolver, providerName := newResolver(logger, options.Provider)
	logger.Infof("using provider: %s", color.BlueString(providerName))

	results, err := resolver.LookupASN(context.Background(), ip)
	if err != nil {
		logger.Warnf("lookup failed: %s", err)
		if underlying := errors.Unwrap(err); underlying != nil {
			logger.Debugf("underlying error: %s", underlying)
		}
		return 1
	}

	if len(results) == 0 {
		logger.Infof("no autonomous system announces %s", ip)
		return 0
	}
	for _, info := range results {
		fmt.Fprintf(stdout, "AS%d %s\n", info.ASN, info.Holder)
	}
	return 0
}

// newResolver constructs the resolver selected by name, falling back
// to the default provider when the name is unknown, and returns the
// resolver along with the name we ended up using.
func newResolver(logger model.Logger, name string) (model.ASNResolver, string) {
	config := &asnlookup.ClientConfig{
		APIKey: os.Getenv("IPAPI_API_KEY"),
		Logger: logger,
	}
	resolver, err := asnlookup.NewResolver(name, config)
	if errors.Is(err, asnlookup.ErrNoSuchProvider) {
		logger.Warnf("unknown provider %q, falling back to %q", name, asnlookup.DefaultProvider)
		name = asnlookup.DefaultProvider
		resolver, err = asnlookup.NewResolver(name, config)
	}
	if err != nil {
		panic(err) // the default provider always exists
	}
	return resolver, name
}
