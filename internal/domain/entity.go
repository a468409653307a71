package domain

// Entity type names. Used as cache key prefixes and by the reference
// checker to resolve the table an id should exist in.
const (
	EntityUser             = "user"
	EntityAccount          = "account"
	EntityCategory         = "category"
	EntityClient           = "client"
	EntityPayee            = "payee"
	EntityPerson           = "person"
	EntityPaymentMethod    = "payment_method"
	EntityConcept          = "concept"
	EntityExpense          = "expense"
	EntityIncome           = "income"
	EntityTransfer         = "transfer"
	EntityScheduledExpense = "scheduled_expense"
	EntityScheduledIncome  = "scheduled_income"
)
