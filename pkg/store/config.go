package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the journal base path and toggles diagnostic logging.
type Config interface {
	BasePath() string
	Debug() bool
}

// LoadConfig reads .penpal.yaml (searched from the working directory, or the
// PENPAL_CONFIG_PATH override) with PENPAL_* environment variables on top.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.penpal.db")
	viper.SetDefault("debug", false)
	viper.SetConfigName(".penpal") // .yaml is implicit
	viper.SetEnvPrefix("PENPAL")
	viper.AutomaticEnv()

	if override := os.Getenv("PENPAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{Path: path, DebugMode: viper.GetBool("debug")}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	DebugMode bool   `json:"debug"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Debug() bool {
	return f.DebugMode
}
