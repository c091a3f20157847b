package service

import (
	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
	"github.com/smallbiznis/storefront/internal/commission"
	lineitemdomain "github.com/smallbiznis/storefront/internal/lineitem/domain"
	"github.com/smallbiznis/storefront/internal/money"
	"github.com/smallbiznis/storefront/internal/option"
)

// perspective holds everything that differs between the customer and the
// provider receipt.
type perspective struct {
	commissionCode     lineitemdomain.Code
	commissionKind     breakdowndomain.RowKind
	commissionLabelKey string
	validate           func(lineitemdomain.LineItem) error

	refundKind     breakdowndomain.RowKind
	refundLabelKey string
	validateRefund func(lineitemdomain.LineItem) error

	total         func(lineitemdomain.Transaction) option.Option[money.Money]
	totalLabelKey func(lineitemdomain.TransactionStatus) string
}

var perspectives = map[lineitemdomain.Role]perspective{
	lineitemdomain.RoleCustomer: {
		commissionCode:     lineitemdomain.CodeCustomerCommission,
		commissionKind:     breakdowndomain.RowCustomerCommission,
		commissionLabelKey: keyCustomerCommission,
		validate:           commission.ValidateCustomerCommission,

		refundKind:     breakdowndomain.RowCustomerCommissionRefund,
		refundLabelKey: keyRefundCustomerFee,
		validateRefund: commission.ValidateCustomerCommissionRefund,

		total: func(tx lineitemdomain.Transaction) option.Option[money.Money] {
			return tx.PayinTotal
		},
		totalLabelKey: func(lineitemdomain.TransactionStatus) string {
			return keyTotal
		},
	},
	lineitemdomain.RoleProvider: {
		commissionCode:     lineitemdomain.CodeProviderCommission,
		commissionKind:     breakdowndomain.RowProviderCommission,
		commissionLabelKey: keyProviderCommission,
		validate:           commission.ValidateProviderCommission,

		refundKind:     breakdowndomain.RowProviderCommissionRefund,
		refundLabelKey: keyRefundProviderFee,
		validateRefund: commission.ValidateProviderCommissionRefund,

		total: func(tx lineitemdomain.Transaction) option.Option[money.Money] {
			return tx.PayoutTotal
		},
		totalLabelKey: providerTotalLabelKey,
	},
}

func providerTotalLabelKey(status lineitemdomain.TransactionStatus) string {
	switch status {
	case lineitemdomain.StatusReceived, lineitemdomain.StatusCompleted:
		return keyProviderTotalMade
	case lineitemdomain.StatusCanceled, lineitemdomain.StatusDeclined:
		return keyProviderTotalCancel
	default:
		return keyProviderTotal
	}
}
