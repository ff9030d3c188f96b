package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	Input       string
	Mode        string
	YearMonth   string
	SiteName    string
	ReportName  string
	ReportType  []string
	Dir         string
	Interactive bool
	S3Bucket    string
	S3Prefix    string
	AWSProfile  string
}
