package ledger

// SettingKey identifies a row in the process-wide key/value store.
type SettingKey string

const (
	SettingUserName         SettingKey = "USER_NAME"
	SettingDomesticCurrency SettingKey = "CURRENCY_DOMESTIC"
)

// DefaultDomesticCurrency is used when the setting row is missing.
const DefaultDomesticCurrency = "GBP"

// Setting is a single key/value row.
type Setting struct {
	Key   SettingKey `json:"setting_key"`
	Value string     `json:"setting_value"`
}

// DefaultSettings are seeded once at database initialization.
var DefaultSettings = []Setting{
	{Key: SettingUserName, Value: ""},
	{Key: SettingDomesticCurrency, Value: DefaultDomesticCurrency},
}
