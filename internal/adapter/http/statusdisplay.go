package http

// StatusDisplay is the render hint clients use for status chips. Keeping the
// map server-side means every UI shows identical labels and colors.
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusDisplays = map[string]StatusDisplay{
	"pending_departmental_approval": {Label: "Pending Departmental Approval", Color: "amber"},
	"pending_head_of_business":      {Label: "Pending Head of Business", Color: "amber"},
	"pending_finance_activation":    {Label: "Pending Finance Activation", Color: "amber"},
	"pending_finance_verification":  {Label: "Pending Finance Verification", Color: "amber"},
	"pending_executive_endorsement": {Label: "Pending Executive Endorsement", Color: "amber"},
	"pending_supply_chain_review":   {Label: "Pending Supply Chain Review", Color: "blue"},
	"active":                        {Label: "Active", Color: "green"},
	"rejected":                      {Label: "Rejected", Color: "red"},
}

// DisplayFor falls back to the raw status so an unmapped value still renders.
func DisplayFor(status string) StatusDisplay {
	if d, ok := statusDisplays[status]; ok {
		return d
	}
	return StatusDisplay{Label: status, Color: "grey"}
}
