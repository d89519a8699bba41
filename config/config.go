package config

type AppConfig struct {
	ContactName  string `env:"CONTACT_NAME" envDefault:"David Hill"`
	ContactEmail string `env:"CONTACT_EMAIL" envDefault:"david@neozeit.com"`
	ContactPhone string `env:"CONTACT_PHONE" envDefault:"061-058-4433"`
	LogoPath     string `env:"LOGO_PATH" envDefault:"Images/logo_non_interlaced.png"`
}

type ElasticConfig struct {
	Addresses    []string `env:"ELASTIC_ADDRESSES" envDefault:"http://localhost:9200" envSeparator:","`
	Username     string   `env:"ELASTIC_USERNAME"`
	Password     string   `env:"ELASTIC_PASSWORD"`
	IndexPattern string   `env:"ELASTIC_INDEX_PATTERN" envDefault:"dmarc_aggregate-*"`
	MaxRecords   int      `env:"ELASTIC_MAX_RECORDS" envDefault:"10000"`
}

type ReportConfig struct {
	OutputDir         string `env:"REPORT_OUTPUT_DIR" envDefault:"results"`
	GeometryPath      string `env:"REPORT_GEOMETRY_PATH" envDefault:"data/ne_110m_admin_0_countries.geojson"`
	RecordWindowDays  int    `env:"REPORT_WINDOW_DAYS" envDefault:"31"`
	TotalWindowDays   int    `env:"REPORT_TOTAL_WINDOW_DAYS" envDefault:"31"`
	IncludeTotalCount bool   `env:"REPORT_INCLUDE_TOTAL" envDefault:"false"`
}

type ArchiveConfig struct {
	Bucket          string `env:"ARCHIVE_BUCKET"`
	Region          string `env:"ARCHIVE_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"ARCHIVE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"ARCHIVE_SECRET_ACCESS_KEY"`
	KeyPrefix       string `env:"ARCHIVE_KEY_PREFIX" envDefault:"dmarc-reports"`
}
