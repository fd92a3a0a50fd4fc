package payroll

const (
	ComponentBasic   = "basic"
	ComponentHRA     = "hra"
	ComponentDA      = "da"
	ComponentTravel  = "travel"
	ComponentSpecial = "special"

	EarningKindStandard = "standard"
	EarningKindCustom   = "custom"

	PaymentStatusPaid = "Paid"

	WarningNegativeNet = "negative_net"

	minYear = 1900
	maxYear = 9999
)

// StandardComponents lists the standard component keys in display order.
var StandardComponents = []string{
	ComponentBasic,
	ComponentHRA,
	ComponentDA,
	ComponentTravel,
	ComponentSpecial,
}
