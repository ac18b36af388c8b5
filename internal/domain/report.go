package domain

// Severity tags an alert for display.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
)

// Alert is a human readable expiration warning for a single driver.
type Alert struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Payslip is one archived payslip, derived from the file tree at read time.
// Path is relative to the driver's payslip directory.
type Payslip struct {
	Year     string `json:"year"`
	Month    string `json:"month"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// DriverDetail is a driver together with its alerts and payslips.
type DriverDetail struct {
	Driver   Driver    `json:"driver"`
	Alerts   []Alert   `json:"alerts"`
	Payslips []Payslip `json:"payslips"`
}

// DriverSummary is a list-view row: the driver plus its expiry badges.
// Badge values are the expiry classifications: none, ok, expiring, expired.
type DriverSummary struct {
	Driver
	LicenseStatus string `json:"license_status"`
	CourseStatus  string `json:"course_status"`
}

// DashboardStats holds the home page counters.
// Expired and Expiring are summed over both the license and course dates.
type DashboardStats struct {
	TotalDrivers    int `json:"total_drivers"`
	ActiveDrivers   int `json:"active_drivers"`
	InactiveDrivers int `json:"inactive_drivers"`
	Expired         int `json:"expired"`
	Expiring        int `json:"expiring"`
}
