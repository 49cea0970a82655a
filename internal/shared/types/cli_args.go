package types

// ExportArgs represents the command-line arguments of the export command.
type ExportArgs struct {
	ConfigFile string
	Dataset    string
	ReportName string
	ReportType []string
	Dir        string
	From       string
	To         string
	Query      string
	Field      string
	Status     string
	Risk       string
	Email      string
	Subject    string
	Message    string
	RelayURL   string
	UserType   string
	Preview    bool
}
