package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagForce       = flag.Bool("force", false, "Reconvert assets that are already converted")
	flagForceShort  = flag.Bool("f", false, "Shorthand for -force")
	flagCatalog     = flag.String("catalog", "", "Path to ShaderManager.xml")
	flagStrict      = flag.Bool("strict", false, "Fail assets whose vertex layout lacks position, normal or texcoord")
	flagLog         = flag.String("log", "", "Log file path")
	flagDump        = flag.Bool("dump", false, "Dump parsed assets (implies -debug)")
	flagProbe       = flag.Bool("probe", false, "Decode resolved texture images and report their size")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagForce || *flagForceShort {
		cfg.Convert.Force = true
	}
	if *flagCatalog != "" {
		cfg.Convert.Catalog = *flagCatalog
	}
	if *flagStrict {
		cfg.Convert.StrictUsage = true
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
	if *flagDump {
		cfg.Convert.Dump = true
		cfg.Logging.Level = "debug"
	}
	if *flagProbe {
		cfg.Convert.ProbeImages = true
	}
	if pattern := flag.Arg(0); pattern != "" {
		cfg.Convert.Pattern = pattern
	}
}
