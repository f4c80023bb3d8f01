package persistence

// Default locations, relative to the working directory.
const (
	DefaultDataDir    = "data"
	DefaultBillsPath  = DefaultDataDir + "/bills.json"
	DefaultSQLitePath = DefaultDataDir + "/bills.db"
	DefaultConfigPath = "./config.yaml"
	DefaultLedgerPath = "./bills.beancount"
)
