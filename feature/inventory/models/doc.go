// Package models defines the GORM models shared by all features: the local
// mirror of GLPI computers and their components, plus the maintenance history
// and notes layered on top locally.
//
// Computers are keyed by their GLPI id (glpi_id unique index); the sync engine
// upserts on that key. Raw GLPI payloads are kept verbatim in JSON columns so
// field-shape quirks never leak into the canonical string columns.
package models
