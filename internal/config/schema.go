package config

// Config holds screenplay classifier configuration.
// Stored at: ./config.yaml or ~/.screenplay/config.yaml
type Config struct {
	Grouping    GroupingCfg    `mapstructure:"grouping" yaml:"grouping"`
	Geometry    GeometryCfg    `mapstructure:"geometry" yaml:"geometry"`
	PDF         PDFCfg         `mapstructure:"pdf" yaml:"pdf"`
	LangDetect  LangDetectCfg  `mapstructure:"lang_detect" yaml:"lang_detect"`
	Defaults    DefaultsCfg    `mapstructure:"defaults" yaml:"defaults"`
}

// GroupingCfg configures §4.1 grouping.
type GroupingCfg struct {
	GapThreshold float64 `mapstructure:"gap_threshold" yaml:"gap_threshold"` // points, default 10
}

// GeometryCfg configures §4.1/§4.3 centering and position tolerances.
type GeometryCfg struct {
	CenterToleranceDefault float64 `mapstructure:"center_tolerance_default" yaml:"center_tolerance_default"` // default 20
	CenterToleranceWidened float64 `mapstructure:"center_tolerance_widened" yaml:"center_tolerance_widened"` // default 35
	ColumnTolerance        float64 `mapstructure:"column_tolerance" yaml:"column_tolerance"`                 // default 1, once established
}

// PDFCfg configures §6 PDF binary validation and default page geometry.
type PDFCfg struct {
	MinSizeBytes  int64   `mapstructure:"min_size_bytes" yaml:"min_size_bytes"`   // default 1024
	MaxSizeBytes  int64   `mapstructure:"max_size_bytes" yaml:"max_size_bytes"`   // default 15*1024*1024
	DefaultWidth  float64 `mapstructure:"default_width" yaml:"default_width"`     // default 612
	DefaultHeight float64 `mapstructure:"default_height" yaml:"default_height"`   // default 792
}

// LangDetectCfg selects the language-detection collaborator's candidate set.
type LangDetectCfg struct {
	Enabled    bool     `mapstructure:"enabled" yaml:"enabled"`
	Languages  []string `mapstructure:"languages" yaml:"languages"` // ISO names understood by lingua-go
}

// DefaultsCfg specifies default CLI/runtime behavior.
type DefaultsCfg struct {
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"` // text|json|json-pretty|structured
	MaxWorkers   int    `mapstructure:"max_workers" yaml:"max_workers"`     // extraction worker pool size, default 1 (serialized)
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Grouping: GroupingCfg{
			GapThreshold: 10,
		},
		Geometry: GeometryCfg{
			CenterToleranceDefault: 20,
			CenterToleranceWidened: 35,
			ColumnTolerance:        1,
		},
		PDF: PDFCfg{
			MinSizeBytes:  1024,
			MaxSizeBytes:  15 * 1024 * 1024,
			DefaultWidth:  612,
			DefaultHeight: 792,
		},
		LangDetect: LangDetectCfg{
			Enabled:   true,
			Languages: []string{"English", "French", "Spanish", "German"},
		},
		Defaults: DefaultsCfg{
			OutputFormat: "text",
			MaxWorkers:   1,
		},
	}
}
