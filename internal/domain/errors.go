package domain

// ErrorKind hints which HTTP status class a domain error maps to. The engine
// never builds HTTP responses itself; the adapter layer translates.
type ErrorKind int

const (
	KindInvalid ErrorKind = iota + 1
	KindNotFound
	KindConflict
)

// Error is a typed domain error carrying a stable machine-readable code.
type Error struct {
	Code    string
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidParty            = &Error{Code: "INVALID_PARTY", Kind: KindNotFound, Message: "party does not exist or is inactive"}
	ErrAccountNotFound         = &Error{Code: "ACCOUNT_NOT_FOUND", Kind: KindNotFound, Message: "account not found"}
	ErrStockNotFound           = &Error{Code: "STOCK_NOT_FOUND", Kind: KindNotFound, Message: "stock item not found"}
	ErrTransactionNotFound     = &Error{Code: "TRANSACTION_NOT_FOUND", Kind: KindNotFound, Message: "transaction not found"}
	ErrPurchaseNotFound        = &Error{Code: "PURCHASE_NOT_FOUND", Kind: KindNotFound, Message: "metal purchase not found"}
	ErrVoucherNotFound         = &Error{Code: "VOUCHER_NOT_FOUND", Kind: KindNotFound, Message: "voucher not found"}
	ErrFixingNotFound          = &Error{Code: "FIXING_NOT_FOUND", Kind: KindNotFound, Message: "fixing not found"}
	ErrTransferNotFound        = &Error{Code: "TRANSFER_NOT_FOUND", Kind: KindNotFound, Message: "fund transfer not found"}
	ErrInsufficientBalance     = &Error{Code: "INSUFFICIENT_BALANCE", Kind: KindInvalid, Message: "insufficient balance for transfer"}
	ErrMinimumStockItems       = &Error{Code: "MINIMUM_STOCK_ITEMS_REQUIRED", Kind: KindInvalid, Message: "a transaction must carry at least one stock item"}
	ErrCurrencyBalanceMissing  = &Error{Code: "CURRENCY_BALANCE_NOT_FOUND", Kind: KindInvalid, Message: "party holds no balance in this currency"}
	ErrInvalidAmount           = &Error{Code: "INVALID_AMOUNT", Kind: KindInvalid, Message: "amount must be positive"}
	ErrInvalidAssetType        = &Error{Code: "INVALID_ASSET_TYPE", Kind: KindInvalid, Message: "asset type must be CASH or GOLD"}
	ErrSameAccount             = &Error{Code: "SAME_ACCOUNT", Kind: KindInvalid, Message: "cannot transfer to the same account"}
	ErrInvalidStatus           = &Error{Code: "INVALID_STATUS", Kind: KindInvalid, Message: "the requested status is not allowed"}
	ErrTransactionCancelled    = &Error{Code: "TRANSACTION_CANCELLED", Kind: KindConflict, Message: "transaction is cancelled and cannot be posted"}
	ErrTransactionNotCancelled = &Error{Code: "TRANSACTION_NOT_CANCELLED", Kind: KindConflict, Message: "transaction is not cancelled"}
)
