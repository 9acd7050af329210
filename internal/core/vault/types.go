package vault

// Type selects the vault backend, from the VAULT_TYPE setting. Only
// dotenv is implemented today; the other constants reserve the names
// used by the hosted deployments.
type Type string

const (
	// TypeDotEnv is the environment-variable vault (for development).
	TypeDotEnv Type = "dotenv"
	// TypeAzure is an Azure Key Vault.
	TypeAzure Type = "azure"
	// TypeHashiCorp is a HashiCorp Vault.
	TypeHashiCorp Type = "hashicorp"
)
