// Package server holds the HTTP server configuration.
//
// It is kept separate from the config package so that the root Config struct
// can embed it as a partial configuration section.
package server
