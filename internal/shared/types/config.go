package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input      string       `json:"input" yaml:"input" toml:"input"`
	Mode       string       `json:"mode" yaml:"mode" toml:"mode"`
	YearMonth  string       `json:"year_month" yaml:"year_month" toml:"year_month"`
	SiteName   string       `json:"site_name" yaml:"site_name" toml:"site_name"`
	ReportName string       `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string     `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string       `json:"dir" yaml:"dir" toml:"dir"`
	S3Bucket   string       `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix   string       `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile string       `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	Server     ServerConfig `json:"server" yaml:"server" toml:"server"`
}

// ServerConfig configures the HTTP report server.
type ServerConfig struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port string `json:"port" yaml:"port" toml:"port"`
}
