package exchange

// LatestQuery holds the query parameters for the latest-rates endpoint.
type LatestQuery struct {
	BaseCurrency string `query:"baseCurrency" validate:"omitempty,alpha,len=3"`
	Provider     string `query:"provider"`
}

// ConvertQuery holds the query parameters for the conversion endpoint.
type ConvertQuery struct {
	From     string  `query:"from" validate:"required,alpha,len=3"`
	To       string  `query:"to" validate:"required,alpha,len=3"`
	Amount   float64 `query:"amount" validate:"required,gt=0"`
	Provider string  `query:"provider"`
}

// HistoryQuery holds the query parameters for the historical endpoint.
// Page and PageSize are passed through unvalidated, as the reference
// behavior leaves out-of-range values to yield empty or truncated pages.
type HistoryQuery struct {
	BaseCurrency string `query:"baseCurrency" validate:"required,alpha,len=3"`
	Start        string `query:"start" validate:"required,datetime=2006-01-02"`
	End          string `query:"end" validate:"required,datetime=2006-01-02"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
	Provider     string `query:"provider"`
}
