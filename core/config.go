package core

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigPath           = "/.config/compass-job/"
	ConfigFilename       = "config.json"
	ConfigTargetFilename = "target"
	ConfigFilePerms      = 0600
)

const ConfigEnv = "COMPASS_JOB_CONFIG"

// MachineProfile holds the per-machine submission defaults, the values
// a site would otherwise repeat on every compass-job command line.
// Layout of the config file:
/*
{
	"chrysalis": {
		"account": "e3sm",
		"partition": "compute",
		"qos": "regular",
		"constraint": "",
		"reservation": "",
		"wall_time": "02:00:00",
		"nodes": 4
	}
}
*/
type MachineProfile struct {
	Account     string `json:"account"`
	Partition   string `json:"partition"`
	QOS         string `json:"qos"`
	Constraint  string `json:"constraint"`
	Reservation string `json:"reservation"`
	WallTime    string `json:"wall_time"`
	Nodes       int    `json:"nodes"`
}

type Config map[string]MachineProfile

// ApplyDefaults fills empty JobConfig fields from a machine profile.
// Values already set on the JobConfig always win.
func ApplyDefaults(cfg JobConfig, machine MachineProfile) JobConfig {
	if len(cfg.Account) == 0 {
		cfg.Account = machine.Account
	}
	if len(cfg.Partition) == 0 {
		cfg.Partition = machine.Partition
	}
	if len(cfg.QOS) == 0 {
		cfg.QOS = machine.QOS
	}
	if len(cfg.Constraint) == 0 {
		cfg.Constraint = machine.Constraint
	}
	if len(cfg.Reservation) == 0 {
		cfg.Reservation = machine.Reservation
	}
	if len(cfg.WallTime) == 0 {
		cfg.WallTime = machine.WallTime
	}
	if cfg.Nodes == 0 {
		cfg.Nodes = machine.Nodes
	}
	return cfg
}

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from environment or fall back to the home directory
func getConfigPath() string {
	if configPath := os.Getenv(ConfigEnv); len(configPath) > 0 {
		os.MkdirAll(filepath.Dir(configPath), 0744)
		return configPath
	}
	backupPath := os.Getenv("HOME") + ConfigPath
	if err := os.MkdirAll(backupPath, 0744); err != nil {
		return ConfigFilename
	}
	return backupPath + ConfigFilename
}

func getConfigTargetPath() string {
	return filepath.Join(filepath.Dir(getConfigPath()), ConfigTargetFilename)
}

func WriteConfig(config Config) error {
	configFile := getConfigPath()
	file, err := json.MarshalIndent(config, "", "	")
	if err != nil {
		return err
	}
	// Ensure config file uses proper permissions
	os.Chmod(configFile, ConfigFilePerms)
	return os.WriteFile(configFile, file, ConfigFilePerms)
}

func ReadConfig() (Config, error) {
	filename := getConfigPath()
	if !fileExist(filename) {
		return Config{}, errors.New("cannot read compass-job config")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var config Config
	json.Unmarshal(data, &config)
	// Check if any machines were found in config file
	if len(config) == 0 {
		return Config{}, errors.New("invalid compass-job config")
	}
	return config, nil
}

// WriteConfigTarget records the machine profile used when a command
// does not select one explicitly.
func WriteConfigTarget(machine string) error {
	return os.WriteFile(getConfigTargetPath(),
		[]byte(machine+"\n"), ConfigFilePerms)
}

func ReadConfigTarget() string {
	data, err := os.ReadFile(getConfigTargetPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// GetMachine resolves a machine profile by name, or by the recorded
// target when name is empty. A missing config with no explicit name is
// not an error; submission then runs with bare command line values.
func GetMachine(name string) (MachineProfile, error) {
	config, err := ReadConfig()
	if err != nil {
		if len(name) == 0 {
			return MachineProfile{}, nil
		}
		return MachineProfile{}, err
	}
	if len(name) == 0 {
		name = ReadConfigTarget()
		if len(name) == 0 {
			return MachineProfile{}, nil
		}
	}
	machine, ok := config[name]
	if !ok {
		return MachineProfile{}, errors.New("unknown machine: " + name)
	}
	return machine, nil
}
