package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type ClientConfig struct {
	TransportUri string
}

// GetClientConfig reads client.conf from the usual locations and the
// NDN_CLIENT_TRANSPORT environment variable.
func GetClientConfig() ClientConfig {
	// Order of increasing priority
	configDirs := []string{
		"/etc/ndn",
		"/usr/local/etc/ndn",
	}
	if home, err := os.UserHomeDir(); err == nil {
		configDirs = append(configDirs, filepath.Join(home, ".ndn"))
	}
	return readClientConfig(configDirs, os.Getenv("NDN_CLIENT_TRANSPORT"))
}

func readClientConfig(configDirs []string, transportEnv string) ClientConfig {
	// Default configuration
	transportUri := "unix:///run/nfd/nfd.sock"
	if runtime.GOOS == "darwin" {
		transportUri = "unix:///var/run/nfd/nfd.sock"
	}
	config := ClientConfig{
		TransportUri: transportUri,
	}

	for _, dir := range configDirs {
		if transport := readTransport(filepath.Join(dir, "client.conf")); transport != "" {
			config.TransportUri = transport
		}
	}

	// Environment variable overrides config file
	if transportEnv != "" {
		config.TransportUri = transportEnv
	}

	return config
}

// readTransport returns the last transport= value in the file, if any.
func readTransport(filename string) (transport string) {
	file, err := os.Open(filename)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ";") { // comment
			continue
		}
		if val, ok := strings.CutPrefix(line, "transport="); ok {
			transport = strings.TrimSpace(val)
		}
	}
	return transport
}
