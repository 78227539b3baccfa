package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const fileName = ".reolink-cli"

// Keys stored in the config file. Each can also be set through the
// environment as REOLINK_<KEY>.
const (
	KeyBaseURL  = "base_url"
	KeyToken    = "token"
	KeyUsername = "username"
	KeyPassword = "password"
	KeyInsecure = "insecure"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName(fileName)
	}

	viper.SetEnvPrefix("reolink")
	viper.AutomaticEnv()

	// A missing file is fine, login creates it.
	_ = viper.ReadInConfig()
}

// configDir is the home directory, or the working directory when $HOME
// cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		logrus.WithError(err).Warn("no home directory, looking for config in the working directory")
		return "."
	}
	return home
}

// Session is what the commands need to reach a logged-in camera.
type Session struct {
	BaseURL  string
	Token    string
	Username string
	Password string
	Insecure bool
}

func Load() Session {
	return Session{
		BaseURL:  viper.GetString(KeyBaseURL),
		Token:    viper.GetString(KeyToken),
		Username: viper.GetString(KeyUsername),
		Password: viper.GetString(KeyPassword),
		Insecure: viper.GetBool(KeyInsecure),
	}
}

// SaveSession updates the config file with the new token
func SaveSession(token string) error {
	viper.Set(KeyToken, token)

	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		return viper.WriteConfigAs(filepath.Join(configDir(), fileName+".yaml"))
	}
	return nil
}
