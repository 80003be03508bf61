package domain

import (
	"github.com/shopspring/decimal"
)

// GLAccount identifies one account in the chart of accounts.
type GLAccount struct {
	Code string
	Name string
	Type LedgerAccountType
}

// Default chart of accounts. Tenants may override the mapping through
// configuration; these codes are the conventional SACCO layout.
var (
	GLCash                 = GLAccount{Code: "1001", Name: "Cash", Type: LedgerAccountTypeAsset}
	GLLoanReceivable       = GLAccount{Code: "1101", Name: "LoanReceivable", Type: LedgerAccountTypeAsset}
	GLMemberSavingsPayable = GLAccount{Code: "2001", Name: "MemberSavingsPayable", Type: LedgerAccountTypeLiability}
	GLShareCapital         = GLAccount{Code: "3001", Name: "ShareCapital", Type: LedgerAccountTypeEquity}
	GLFeeIncome            = GLAccount{Code: "4001", Name: "FeeIncome", Type: LedgerAccountTypeIncome}
)

// PostingRule maps a transaction type to the accounts it debits and credits.
type PostingRule struct {
	Debit  GLAccount
	Credit GLAccount
}

// ChartOfAccounts translates transaction types into ledger account codes.
type ChartOfAccounts struct {
	rules   map[TransactionType]PostingRule
	feeRule PostingRule
}

// DefaultChart returns the standard SACCO posting rules.
func DefaultChart() *ChartOfAccounts {
	return &ChartOfAccounts{
		rules: map[TransactionType]PostingRule{
			TransactionTypeDeposit:          {Debit: GLCash, Credit: GLMemberSavingsPayable},
			TransactionTypeWithdrawal:       {Debit: GLMemberSavingsPayable, Credit: GLCash},
			TransactionTypeTransfer:         {Debit: GLMemberSavingsPayable, Credit: GLMemberSavingsPayable},
			TransactionTypeLoanDisbursement: {Debit: GLLoanReceivable, Credit: GLCash},
			TransactionTypeLoanRepayment:    {Debit: GLCash, Credit: GLLoanReceivable},
			TransactionTypeSharePurchase:    {Debit: GLCash, Credit: GLShareCapital},
		},
		feeRule: PostingRule{Debit: GLCash, Credit: GLFeeIncome},
	}
}

// Rule returns the posting rule for a transaction type.
func (c *ChartOfAccounts) Rule(t TransactionType) (PostingRule, bool) {
	rule, ok := c.rules[t]
	return rule, ok
}

// FeeRule returns the rule used for the fee leg of a charged transaction.
func (c *ChartOfAccounts) FeeRule() PostingRule {
	return c.feeRule
}

// PostingLeg is one side-specific amount produced when expanding a
// transaction into ledger entries.
type PostingLeg struct {
	Account GLAccount
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Legs expands a transaction type and amounts into balanced posting legs.
// The fee, when non-zero, gets its own pair routed to fee income.
func (c *ChartOfAccounts) Legs(t TransactionType, amount, fee decimal.Decimal) ([]PostingLeg, error) {
	rule, ok := c.rules[t]
	if !ok {
		return nil, ErrUnmappedTransactionType
	}

	legs := []PostingLeg{
		{Account: rule.Debit, Debit: amount},
		{Account: rule.Credit, Credit: amount},
	}

	if fee.IsPositive() {
		legs = append(legs,
			PostingLeg{Account: c.feeRule.Debit, Debit: fee},
			PostingLeg{Account: c.feeRule.Credit, Credit: fee},
		)
	}

	return legs, nil
}
