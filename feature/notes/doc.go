// Package notes manages free-form notes attached to devices. Notes are
// local-only data: they never come from or go back to GLPI.
package notes
