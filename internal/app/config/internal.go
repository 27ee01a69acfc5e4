package config

import "time"

type InternalConfig struct {
	App     App        `mapstructure:"app"`
	FHIR    AppFHIR    `mapstructure:"fhir"`
	Invoice AppInvoice `mapstructure:"invoice"`
}

type App struct {
	Env                      string `mapstructure:"env"`
	Version                  string `mapstructure:"version"`
	Timezone                 string `mapstructure:"timezone"`
	ShutdownTimeoutInSeconds int    `mapstructure:"shutdown_timeout_in_seconds"`
}

type AppFHIR struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
}

func (f AppFHIR) RequestTimeout() time.Duration {
	return time.Duration(f.RequestTimeoutInSeconds) * time.Second
}

// AppInvoice holds where published invoices are archived and announced.
type AppInvoice struct {
	ArchiveBucketName string `mapstructure:"archive_bucket_name"`
	PublishQueue      string `mapstructure:"publish_queue"`
}
