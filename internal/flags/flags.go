// Package flags manages command-line flags and environment variables for
// the topology manager's configuration.
package flags

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guillaumeVilar/ansible-cvp/pkg/cvp"
	"github.com/guillaumeVilar/ansible-cvp/pkg/topology"
)

// defaultCvpPort is the HTTPS port of a CloudVision instance.
const defaultCvpPort = 443

// defaultAPITimeoutSeconds bounds each CloudVision API call (30 seconds).
const defaultAPITimeoutSeconds = 30

// States accepted by the --state flag.
const (
	// StatePresent builds the declared topology.
	StatePresent = "present"
	// StateAbsent removes the declared topology.
	StateAbsent = "absent"
)

// Errors for flag handling.
var (
	// errInvalidLogFormat indicates an invalid log format was specified.
	errInvalidLogFormat = errors.New("invalid log format specified")
	// errInvalidLogLevel indicates an invalid log level was specified.
	errInvalidLogLevel = errors.New("invalid log level specified")
	// errInvalidState indicates the --state flag holds an unknown value.
	errInvalidState = errors.New("invalid state specified")
	// errGetFlagFailed indicates a flag value could not be retrieved.
	errGetFlagFailed = errors.New("failed to read flag value")
	// errMissingHost indicates no CloudVision host was configured.
	errMissingHost = errors.New("no cloudvision host specified")
	// errMissingTopology indicates no topology file was configured.
	errMissingTopology = errors.New("no topology file specified")
)

// RegisterCvpFlags adds the flags configuring the CloudVision connection
// to the root command.
func RegisterCvpFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringP("host", "H", envString("CVP_HOST"), "cloudvision hostname or address")
	flags.IntP("port", "p", envInt("CVP_PORT"), "cloudvision https port")
	flags.StringP("username", "u", envString("CVP_USERNAME"), "cloudvision username")
	flags.String("password", envString("CVP_PASSWORD"), "cloudvision password")
	flags.Bool("insecure", envBool("CVP_INSECURE"), "skip tls certificate verification")
	flags.Int(
		"api-timeout",
		envInt("CVP_API_TIMEOUT"),
		"timeout (in seconds) for each cloudvision api call",
	)
}

// RegisterSystemFlags adds the flags that modify the run's program flow to
// the root command.
func RegisterSystemFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringP("topology", "t", envString("CVP_TOPOLOGY"), "path to the topology yaml file")
	flags.StringP(
		"state",
		"s",
		envString("CVP_STATE"),
		"desired topology state (present or absent)",
	)
	flags.Bool(
		"check",
		envBool("CVP_CHECK"),
		"simulate mutating calls without contacting cloudvision",
	)
	flags.String(
		"root-container",
		envString("CVP_ROOT_CONTAINER"),
		"name of the root container sentinel",
	)
	flags.Bool(
		"save-topology",
		envBool("CVP_SAVE_TOPOLOGY"),
		"generate configuration push tasks for configlet changes",
	)
	flags.Bool(
		"strict",
		envBool("CVP_STRICT"),
		"remove configlets not declared in the topology (accepted, not supported)",
	)
	flags.BoolP(
		"debug",
		"d",
		envBool("CVP_DEBUG"),
		"enable debug mode with verbose logging",
	)
	flags.String(
		"log-level",
		envString("CVP_LOG_LEVEL"),
		"the maximum log level that will be written to STDERR",
	)
	flags.String(
		"log-format",
		envString("CVP_LOG_FORMAT"),
		"sets what logging format to use (auto, json, pretty, logfmt)",
	)
	flags.Bool("no-color", envBool("NO_COLOR"), "disable ansi color escape codes in log output")
	flags.Bool(
		"no-startup-message",
		envBool("CVP_NO_STARTUP_MESSAGE"),
		"do not log the startup message",
	)
}

// SetDefaults registers the default values for environment-backed flags.
func SetDefaults() {
	viper.AutomaticEnv()
	viper.SetDefault("CVP_PORT", defaultCvpPort)
	viper.SetDefault("CVP_API_TIMEOUT", defaultAPITimeoutSeconds)
	viper.SetDefault("CVP_STATE", StatePresent)
	viper.SetDefault("CVP_ROOT_CONTAINER", topology.DefaultRoot)
	viper.SetDefault("CVP_LOG_LEVEL", "info")
	viper.SetDefault("CVP_LOG_FORMAT", "auto")
}

// ReadCvpConfig assembles the CloudVision client configuration from the
// connection flags.
func ReadCvpConfig(flags *pflag.FlagSet) (cvp.Config, error) {
	host, err := flags.GetString("host")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if host == "" {
		return cvp.Config{}, errMissingHost
	}

	port, err := flags.GetInt("port")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	username, err := flags.GetString("username")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	password, err := flags.GetString("password")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	insecure, err := flags.GetBool("insecure")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	timeoutSeconds, err := flags.GetInt("api-timeout")
	if err != nil {
		return cvp.Config{}, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	return cvp.Config{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Insecure: insecure,
		Timeout:  time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// RunConfig holds the per-run options read from the system flags.
type RunConfig struct {
	TopologyPath string // Path of the topology yaml file.
	State        string // StatePresent or StateAbsent.
	CheckMode    bool   // Simulate mutating calls.
	Root         string // Root container sentinel.
	SaveTopology bool   // Generate tasks for configlet changes.
	Strict       bool   // Accepted but unsupported strict mode.
}

// ReadRunConfig assembles the run options from the system flags.
func ReadRunConfig(flags *pflag.FlagSet) (RunConfig, error) {
	config := RunConfig{}

	var err error

	if config.TopologyPath, err = flags.GetString("topology"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if config.TopologyPath == "" {
		return config, errMissingTopology
	}

	if config.State, err = flags.GetString("state"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if config.State != StatePresent && config.State != StateAbsent {
		return config, fmt.Errorf("%w: %s", errInvalidState, config.State)
	}

	if config.CheckMode, err = flags.GetBool("check"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if config.Root, err = flags.GetString("root-container"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if config.SaveTopology, err = flags.GetBool("save-topology"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if config.Strict, err = flags.GetBool("strict"); err != nil {
		return config, fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	return config, nil
}

// SetupLogging configures logrus from the logging flags. The --debug flag
// overrides --log-level.
func SetupLogging(flags *pflag.FlagSet) error {
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if err := configureLogFormat(logFormat, noColor); err != nil {
		return err
	}

	rawLogLevel, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("%w: %w", errGetFlagFailed, err)
	}

	if debug, _ := flags.GetBool("debug"); debug {
		rawLogLevel = "debug"
	}

	logLevel, err := logrus.ParseLevel(rawLogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	logrus.SetLevel(logLevel)

	return nil
}

// configureLogFormat applies the requested logrus formatter.
func configureLogFormat(logFormat string, noColor bool) error {
	switch strings.ToLower(logFormat) {
	case "auto":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:             noColor,
			EnvironmentOverrideColors: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logfmt":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "pretty":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !noColor,
			FullTimestamp: false,
		})
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, logFormat)
	}

	return nil
}

// envString reads a string flag default from the environment via viper.
func envString(key string) string {
	viper.MustBindEnv(key)

	return viper.GetString(key)
}

// envInt reads an integer flag default from the environment via viper.
func envInt(key string) int {
	viper.MustBindEnv(key)

	return viper.GetInt(key)
}

// envBool reads a boolean flag default from the environment via viper.
func envBool(key string) bool {
	viper.MustBindEnv(key)

	return viper.GetBool(key)
}
