package config

type Config struct {
	Addr        string `flag:"addr"`
	MetricsAddr string `flag:"metrics-addr"`
	DataDir     string `flag:"data-dir"`
	LogLevel    string `flag:"log-level"`
}
