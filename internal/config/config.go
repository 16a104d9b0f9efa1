package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// RSSI to distance estimation
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Scanner
	UnknownPeripheralName = "Unknown"

	// Radio
	PowerPollEvery  = 2 * time.Second
	ScanRestartWait = 100 * time.Millisecond

	// Demo mode
	DemoDeviceMin   = 8
	DemoDeviceMax   = 12
	DemoEmitEvery   = 400 * time.Millisecond
	DemoPowerOnWait = 300 * time.Millisecond

	// Sign-in
	SignInTimeout = 5 * time.Minute

	// App
	AppName    = "CONTACT-EX"
	AppVersion = "1.0"
	EnvPrefix  = "CONTACTEX_"
)

// Options holds the runtime settings collected from flags and the environment.
type Options struct {
	Demo         bool
	Adapter      string
	ContactsFile string // overrides the bundled sample list when set
	AddressBook  string // directory of .vcf files
	ClientID     string
	ClientSecret string
	LogFile      string
	Debug        bool
	MetricsAddr  string
}

// Defaults returns Options seeded from CONTACTEX_* environment variables.
// Flags registered on top of these take precedence.
func Defaults() Options {
	return Options{
		Demo:         getEnvBool("DEMO", false),
		Adapter:      getEnv("ADAPTER", ""),
		ContactsFile: getEnv("CONTACTS", ""),
		AddressBook:  getEnv("ADDRESS_BOOK", DefaultAddressBook()),
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		LogFile:      getEnv("LOG_FILE", ""),
		Debug:        getEnvBool("DEBUG", false),
		MetricsAddr:  getEnv("METRICS_ADDR", ""),
	}
}

// DefaultAddressBook follows the XDG data directory convention.
func DefaultAddressBook() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "contacts")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "contacts"
	}
	return filepath.Join(home, ".local", "share", "contacts")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
