package domain

// TestSuite is one configured test suite
type TestSuite struct {
	Name          string   `yaml:"name"`
	TriggeredBy   string   `yaml:"triggered_by"`
	ConfigFile    string   `yaml:"config_file"`
	BootstrapFile string   `yaml:"bootstrap_file"`
	Directories   []string `yaml:"directories"`
	EnvFile       string   `yaml:"env_file"`
}
