// Package glpi provides the client for the GLPI REST API.
//
// GLPI uses session-based authentication: InitSession exchanges an app token
// and a user token for a session token, which every subsequent request carries
// in the Session-Token header, and KillSession invalidates it.
//
// # Field shapes
//
// Depending on instance configuration GLPI may return a dropdown field as a
// numeric foreign key, as a plain label string, or as an expanded object.
// Records are therefore surfaced as map[string]any and normalized downstream
// (see feature/sync), never modeled as typed structs here.
//
// # Mocking
//
// The Client interface has a testify mock in the mocks subpackage, used by the
// sync engine tests.
package glpi
