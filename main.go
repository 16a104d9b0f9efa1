package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"contactex.klederson.com/internal/app"
	"contactex.klederson.com/internal/auth"
	"contactex.klederson.com/internal/bluetooth"
	"contactex.klederson.com/internal/config"
	"contactex.klederson.com/internal/contacts"
	"contactex.klederson.com/internal/permission"
	"contactex.klederson.com/internal/telemetry"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var opts = config.Defaults()

func main() {
	rootCmd := &cobra.Command{
		Use:     "contactex",
		Short:   "ContactEx - contacts and nearby Bluetooth devices in the terminal",
		Version: config.AppVersion,
		Long: `ContactEx lists your address book next to a bundled sample list, scans
for nearby Bluetooth Low Energy peripherals and signs you in with Google.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo flag for demonstration mode without Bluetooth hardware.

Every flag can also be set through a CONTACTEX_* environment variable,
for example CONTACTEX_CLIENT_ID or CONTACTEX_DEMO=true.`,
		SilenceUsage: true,
		RunE:         run,
	}

	f := rootCmd.Flags()
	f.BoolVar(&opts.Demo, "demo", opts.Demo, "Run in demo mode with fake devices (no Bluetooth required)")
	f.StringVar(&opts.Adapter, "adapter", opts.Adapter, "Label for the Bluetooth adapter in logs and the status bar (the system default adapter is always used)")
	f.StringVar(&opts.ContactsFile, "contacts", opts.ContactsFile, "JSON file replacing the bundled sample contacts")
	f.StringVar(&opts.AddressBook, "address-book", opts.AddressBook, "Directory of .vcf files used as the phone address book")
	f.StringVar(&opts.ClientID, "client-id", opts.ClientID, "Google OAuth client ID for sign-in")
	f.StringVar(&opts.ClientSecret, "client-secret", opts.ClientSecret, "Google OAuth client secret for sign-in")
	f.StringVar(&opts.LogFile, "log-file", opts.LogFile, "Write logs to this file (logs are discarded otherwise)")
	f.BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug logging")
	f.StringVar(&opts.MetricsAddr, "metrics-addr", opts.MetricsAddr, "Serve Prometheus metrics on this address, e.g. :9100")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger keeps the terminal clean: the TUI owns stdout, so logs go to a
// file or nowhere.
func newLogger() (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if opts.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if opts.LogFile == "" {
		log.SetOutput(io.Discard)
		return log, func() {}, nil
	}

	file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return log, func() { _ = file.Close() }, nil
}

func run(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewScannerMetrics(reg)
	if opts.MetricsAddr != "" {
		go func() {
			if err := telemetry.Serve(ctx, opts.MetricsAddr, reg, log); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	var (
		radio      bluetooth.Radio
		authorizer permission.Authorizer
		enable     func() error
		demo       *bluetooth.MockRadio
	)
	if opts.Demo {
		demo = bluetooth.NewMockRadio()
		radio, authorizer = demo, demo
		enable = func() error {
			demo.PowerOn()
			return nil
		}
	} else {
		tinygo := bluetooth.NewTinyGoRadio(opts.Adapter, log)
		radio, authorizer, enable = tinygo, tinygo, tinygo.Enable
	}

	scanner := bluetooth.NewScanner(radio, authorizer,
		bluetooth.WithLogger(log),
		bluetooth.WithMetrics(metrics),
	)

	book := contacts.NewBook(
		contacts.VCardStore{Dir: opts.AddressBook},
		contacts.SampleStore{Path: opts.ContactsFile},
		log,
	)

	session := auth.NewSession(auth.GoogleConfig(opts.ClientID, opts.ClientSecret), log)
	defer session.Close()

	log.WithFields(logrus.Fields{
		"demo":    opts.Demo,
		"adapter": opts.Adapter,
		"session": session.ID(),
	}).Info("starting " + config.AppName)

	model := app.New(app.Deps{
		Scanner: scanner,
		Book:    book,
		Session: session,
		Enable:  enable,
		Demo:    demo,
		Adapter: opts.Adapter,
		Log:     log,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	model.Start(p)
	defer model.Stop()

	_, err = p.Run()
	if err != nil && !opts.Demo && scanner.AuthorizationDenied() {
		fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo ./contactex")
		fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./contactex")
		fmt.Fprintln(os.Stderr, "  ./contactex --demo    (demo mode, no hardware needed)")
	}
	return err
}
