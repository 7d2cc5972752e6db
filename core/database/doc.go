// Package database provides the gorm connection to the shared store.
//
// The authoritative item/size/link tables live in a MySQL database shared
// across brands; this package only opens and pools the connection. Tests and
// local runs can use the sqlite driver instead.
package database
