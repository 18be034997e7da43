// Package maintenance manages the local maintenance history layered on top
// of synced devices.
//
// Creating or editing a record also maintains the owning device's
// last/next-maintenance stamps, which drive the status shown in the device
// listing. Preventive maintenances may schedule a follow-up via a day
// interval; corrective ones never carry a next-due date.
package maintenance
