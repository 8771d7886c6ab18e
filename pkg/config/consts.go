package config

const (
	// EnvPrefix is passed to envconfig; the struct tags carry fully
	// qualified variable names, so the prefix only namespaces untagged
	// fields.
	EnvPrefix = "invoice"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "INVOICE_DATABASE_URL"
	EnvDBHost = "INVOICE_DB_HOST"
	EnvDBUser = "INVOICE_DB_USER"
	EnvDBName = "INVOICE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
