package model

// Category classifies a transaction for financial aggregation.
type Category string

const (
	CategorySale           Category = "sale"
	CategoryGeneralExpense Category = "general-expense"
	CategoryPayroll        Category = "payroll"
	CategoryRawMaterial    Category = "raw-material"
	CategoryNotApplicable  Category = "not-applicable"
	CategoryUnset          Category = ""
)

// ExpenseCategories lists the cost buckets in their fixed priority order.
// The order matters twice: the classifier tries rule lists in this order for
// outflows, and rounding reconciliation breaks ties in this order.
var ExpenseCategories = []Category{
	CategoryGeneralExpense,
	CategoryPayroll,
	CategoryRawMaterial,
}

// ParseCategory maps a user-supplied name to a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySale, CategoryGeneralExpense, CategoryPayroll,
		CategoryRawMaterial, CategoryNotApplicable:
		return Category(s), true
	}
	return CategoryUnset, false
}
