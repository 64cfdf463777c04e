// Package dataset loads delimited metadata exports into tables of string
// rows. Loading detects the encoding (UTF-8, UTF-8 with BOM, then Latin-1)
// and the delimiter; every cell stays a string, no value conversion happens
// here or downstream.
package dataset
