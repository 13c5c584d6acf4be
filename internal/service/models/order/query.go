package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids      []int64  `json:"ids,omitempty"`
	UserIds  []string `json:"userIds,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
	Code     string   `json:"code,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}
