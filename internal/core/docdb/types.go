package docdb

// Type selects the document store backend, from the DOCDB_TYPE setting.
// Cosmos DB speaks the MongoDB wire protocol, so both map to the same
// driver.
type Type string

const (
	// TypeMongoDB is a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB is an Azure Cosmos DB database.
	TypeCosmosDB Type = "cosmosdb"
)
