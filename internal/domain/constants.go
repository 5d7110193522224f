package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default slot grid values
const (
	DefaultSlotWidthMinutes      = 120
	DefaultBufferMinutes         = 30
	DefaultAfternoonFromHour     = 13
	DefaultMorningDeadlineHour   = 17 // previous calendar day
	DefaultAfternoonDeadlineHour = 9  // same calendar day
	DefaultTimezone              = "America/Toronto"
)

// Default job durations in minutes, used when neither the request nor the catalog provides one
const (
	DefaultQuotationMinutes    = 30
	DefaultMaintenanceMinutes  = 60
	DefaultRepairMinutes       = 90
	DefaultInstallationMinutes = 240
)

// Schedule rule limits
const (
	TechnicianMinSlotsPerDay   = 1
	TechnicianMaxSlotsPerDay   = 4
	StaffSlotsPerDay           = 2
	StaffMaxDailyHours         = 8
	StaffMaxWeeklyHours        = 40
	WorkingDaysPerWeek         = 5
	MinMinutesBetweenTechSlots = DefaultSlotWidthMinutes
)

// Role names. Roles arrive as opaque strings; only the technician and customer
// capabilities change behaviour in this service.
const (
	RoleTechnician = "TECHNICIAN"
	RoleCustomer   = "CUSTOMER"
)

// JobType category of work from the job catalog
type JobType string

const (
	JobTypeQuotation    JobType = "QUOTATION"
	JobTypeMaintenance  JobType = "MAINTENANCE"
	JobTypeRepair       JobType = "REPAIR"
	JobTypeInstallation JobType = "INSTALLATION"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// BlockingStatuses statuses that hold a technician's time
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
}

// QuotationBlockingStatuses statuses that prevent a second quotation at the same address and day
var QuotationBlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
}
