package model

// Config is the top-level structure of config.yaml.
type Config struct {
	Token    string   `mapstructure:"TOKEN"`
	GuildID  string   `mapstructure:"guild_id"`
	LogLevel string   `mapstructure:"log_level"`
	DataDir  string   `mapstructure:"data_dir"`
	Database Database `mapstructure:"database"`
	Testing  Testing  `mapstructure:"testing"`
	Upload   Upload   `mapstructure:"upload"`
}

// Database corresponds to the "database" section.
type Database struct {
	Path string `mapstructure:"path"`
}

// Testing corresponds to the "testing" section. Channels and categories are
// referenced by display name, the same names the workflow re-reads state from.
type Testing struct {
	TestingCategory   string `mapstructure:"testing_category"`
	EvaluatedCategory string `mapstructure:"evaluated_category"`
	SubmitChannel     string `mapstructure:"submit_channel"`
	InfoChannel       string `mapstructure:"info_channel"`
	AnnounceChannel   string `mapstructure:"announce_channel"`
	TestingRole       string `mapstructure:"testing_role"`
}

// Upload corresponds to the "upload" section.
type Upload struct {
	URL            string `mapstructure:"url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}
