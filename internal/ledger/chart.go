package ledger

// SystemAccounts is the fixed chart of accounts created at database
// initialization. The seed liability is user-managed so it can be
// renamed or deactivated like any runtime-created account; everything
// else is immutable through the user-account path.
var SystemAccounts = []Account{
	{Code: "0000000001", Name: "Cash", Type: TypeAsset, IsActive: true},
	{Code: "1000000001", Name: "Dummy Credit card", Type: TypeLiability, IsActive: true, IsUserManaged: true},
	{Code: "3000000000", Name: "Capital", Type: TypeEquity, IsActive: true},
	{Code: "4000000000", Name: "Income", Type: TypeIncome, IsPL: true, IsActive: true},
	{Code: "5000000000", Name: "Uncategorized", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000001", Name: "Food and dining", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000002", Name: "Clothing and personal care", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000003", Name: "Entertainment and leisure", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000004", Name: "Transportation", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000005", Name: "Housing", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000006", Name: "Utilities and communications", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000007", Name: "Household supplies", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000008", Name: "Healthcare", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000009", Name: "Taxes and social security", Type: TypeExpense, IsPL: true, IsActive: true},
	{Code: "5000000010", Name: "Other expenses", Type: TypeExpense, IsPL: true, IsActive: true},
}
