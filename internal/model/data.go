package model

// NamedValue is one bar/slice of a categorical series
type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DatedValue is one point of a day-bucketed time series
type DatedValue struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// KPIs are the scalar tiles computed over a record subset
type KPIs struct {
	Total         int     `json:"total"`
	Sites         int     `json:"sites"`
	Teams         int     `json:"teams"`
	Closed        int     `json:"closed"`
	ServiceDays   int     `json:"serviceDays"`
	AveragePerDay float64 `json:"averagePerDay"`
}

// TodayBreakdown counts today's records per team
type TodayBreakdown struct {
	Date   string       `json:"date"`
	Total  int          `json:"total"`
	ByTeam []NamedValue `json:"byTeam"`
}

// SiteStat is one row of the per-site summary table
type SiteStat struct {
	Site      string  `json:"site"`
	Total     int     `json:"total"`
	Teams     int     `json:"teams"`
	Closed    int     `json:"closed"`
	ClosedPct float64 `json:"closedPct"`
}

// DailyReport compares one day against another (by default today against
// yesterday) and ranks the month of Date.
type DailyReport struct {
	Date         string           `json:"date"`
	CompareDate  string           `json:"compareDate"`
	Total        int              `json:"total"`
	CompareTotal int              `json:"compareTotal"`
	Difference   int              `json:"difference"`
	Variation    *float64         `json:"variation"`
	Closed       int              `json:"closed"`
	Teams        int              `json:"teams"`
	BySite       []SiteComparison `json:"bySite"`
	MonthTotal   int              `json:"monthTotal"`
	GrandTotal   int              `json:"grandTotal"`
	TopSites     []NamedValue     `json:"topSites"`
	TopTeams     []NamedValue     `json:"topTeams"`
}

// SiteComparison is one site's count on both report days.
type SiteComparison struct {
	Site         string `json:"site"`
	Total        int    `json:"total"`
	CompareTotal int    `json:"compareTotal"`
	Difference   int    `json:"difference"`
}

// Heatmap counts records per site and day. Counts[i][j] is the count of
// Sites[i] on Days[j]; missing pairs are zero.
type Heatmap struct {
	Sites  []string `json:"sites"`
	Days   []string `json:"days"`
	Counts [][]int  `json:"counts"`
}

// TablePage is one page of the searchable record table
type TablePage struct {
	Rows  []CanonicalRecord `json:"rows"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Pages int               `json:"pages"`
}

// Dashboard bundles every derived view for one filter selection.
type Dashboard struct {
	Selection FilterSelection `json:"selection"`
	Options   FilterOptions   `json:"options"`
	KPIs      KPIs            `json:"kpis"`
	BySite    []NamedValue    `json:"bySite"`
	ByTeam    []NamedValue    `json:"byTeam"`
	ByDate    []DatedValue    `json:"byDate"`
	Recent    []DatedValue    `json:"recent"`
	Today     TodayBreakdown  `json:"today"`
	SiteStats []SiteStat      `json:"siteStats"`
	// ByServiceType is the top service types, descending.
	ByServiceType []NamedValue `json:"byServiceType"`
	Heatmap       Heatmap      `json:"heatmap"`
	Status        Status       `json:"status"`
}
