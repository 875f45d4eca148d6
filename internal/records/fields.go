package records

// RequiredFields is the fixed, ordered record schema: every extracted record
// carries all of these keys, empty string when the document has no value.
// The spellings match the agreed remittance schema exactly; do not "fix" them,
// downstream consumers key on these strings.
var RequiredFields = []string{
	"Agency",
	"Person Name",
	"Shift details",
	"Start data",
	"Time sheet number",
	"Hours charged",
	"Pay Rate",
	"Gross Pay",
	"Employe type (LTD/PAYE)",
	"Total Received",
	"Customer Code",
	"Suplier Code",
	"Shift",
	"Remittance number",
	"Remittance Data",
	"Status",
	"Remittance Status",
	"Primo Status",
	"Shift Data",
	"Invoice Status",
	"Coda Agency Reference",
	"Code Reference",
	"Invoice Description",
	"PP Reference",
}
