package mcp

import "github.com/rpggio/caredesk/internal/listview"

// ListParams are the arguments of every list_<collection> tool.
type ListParams struct {
	Sort        string `json:"sort,omitempty"`
	Order       string `json:"order,omitempty"`
	Filter      string `json:"filter,omitempty"`
	Page        *int   `json:"page,omitempty"`
	RowsPerPage *int   `json:"rowsPerPage,omitempty"`
}

func (p ListParams) query() listview.QueryParams {
	return listview.QueryParams{
		Sort:        p.Sort,
		Order:       p.Order,
		Filter:      p.Filter,
		Page:        optionalInt(p.Page),
		RowsPerPage: optionalInt(p.RowsPerPage),
	}
}

// DeleteParams are the arguments of every delete_<collection> tool.
type DeleteParams struct {
	ID string `json:"id"`
}

// QuoteParams are the arguments of quote_driver_pay.
type QuoteParams struct {
	Hours    float64 `json:"hours"`
	Distance float64 `json:"distance"`
}

// DeleteResponse is the status transition a soft delete made.
type DeleteResponse struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// QuoteResponse is the driver pay of one trip.
type QuoteResponse struct {
	Hours      float64 `json:"hours"`
	Distance   float64 `json:"distance"`
	DriverPaid float64 `json:"driverPaid"`
}
