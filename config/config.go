package config

import (
	"github.com/spf13/viper"

	"github.com/12pm/ddnet-discordbot/model"
)

var Cfg model.Config

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("data_dir", "data/map-testing")
	viper.SetDefault("database.path", "./data/testing.db")
	viper.SetDefault("testing.testing_category", "Map Testing")
	viper.SetDefault("testing.evaluated_category", "Evaluated Maps")
	viper.SetDefault("testing.submit_channel", "📬submit-maps")
	viper.SetDefault("testing.info_channel", "📌info")
	viper.SetDefault("testing.announce_channel", "announcements")
	viper.SetDefault("testing.testing_role", "testing")
	viper.SetDefault("upload.timeout_seconds", 30)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&Cfg)
	return
}
