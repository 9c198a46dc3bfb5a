package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderInvalidPrice represents an order submitted with a non-positive price.
	OrderInvalidPrice ErrorCode = "order_invalid_price"
	// OrderInvalidQuantity represents an order submitted with a non-positive quantity.
	OrderInvalidQuantity ErrorCode = "order_invalid_quantity"
	// OrderUnknownSide represents an order whose side tag is neither buy nor sell.
	OrderUnknownSide ErrorCode = "order_unknown_side"
	// OrderDuplicateID represents an order id already resting on the same book.
	OrderDuplicateID ErrorCode = "order_duplicate_id"
	// OrderNotFound represents a cancel for an order id that is not resting.
	OrderNotFound ErrorCode = "order_not_found"

	// MarketNotFound represents an operation against a market id that was never created.
	MarketNotFound ErrorCode = "market_not_found"
	// InstrumentUnknown represents an instrument tag that is neither YES nor NO.
	InstrumentUnknown ErrorCode = "instrument_unknown"

	// BookCrossed represents a persisted crossed book. This is an invariant
	// violation and indicates a logic defect, never a caller mistake.
	BookCrossed ErrorCode = "book_crossed"

	// TradeFeedPublishError represents a failure publishing a trade event downstream.
	TradeFeedPublishError ErrorCode = "trade_feed_publish_error"
)
