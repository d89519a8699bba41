package models

// ReportDocument is everything the assembler needs to lay out a report.
// All values are already computed; the assembler only formats them.
type ReportDocument struct {
	Domain        string
	Totals        SummaryTotals
	Countries     []CountryCount
	Organizations []OrganizationStanding
	// TotalMessageCount is the independently computed grand total from
	// the time-bucketed aggregation. Nil when the secondary query was
	// not requested or failed.
	TotalMessageCount *int64
	// MapPNG is the rendered world map. Nil means no map section.
	MapPNG []byte
}
