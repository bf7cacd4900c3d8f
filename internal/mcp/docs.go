package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `caredesk is the back office of a care transport service: clients, drivers,
bookings (jobs), dashboard users, NDIS line items and referral coordinators.

Tools:
- list_<collection>: one rendered table page. Sort with sort/order, narrow with filter,
  page with page/rowsPerPage (5, 10 or 25).
- delete_<collection>: soft delete. The record stays stored with a non-active (or banned)
  status and disappears from tables. There is no undo.
- quote_driver_pay: driver pay for a trip with the current rates.

Docs:
- caredesk://docs/index
- caredesk://docs/tables
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "caredesk://docs/index",
		Name:        "docs_index",
		Title:       "caredesk docs index",
		Description: "What the tools do and which collections exist.",
		Content: `# caredesk

Collections: clients, drivers, jobs, users, ndis, refferedby.
Soft delete exists for clients, drivers (non-active) and users (banned).

1. ` + "`list_jobs`" + ` shows bookings with client and driver names resolved.
2. ` + "`quote_driver_pay`" + ` prices hours and distance before a booking is made.
3. ` + "`delete_clients`" + ` and friends retire a record; audit entries keep who did it.
`,
	},
	{
		URI:         "caredesk://docs/tables",
		Name:        "docs_tables",
		Title:       "How tables render",
		Description: "Filter, sort, status and paging rules shared by every table.",
		Content: `# Tables

- A filter matches the table's filter column case-insensitively and returns rows in store
  order. Sorting is ignored while a filter is set.
- Only active records are shown. totalCount still counts every stored record.
- notFound is true when a filter matched no record, including inactive ones.
- Pages are zero-based. rowsPerPage is 5, 10 or 25.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
