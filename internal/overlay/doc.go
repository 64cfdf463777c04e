// Package overlay resolves overlay layout configuration from up to three
// candidate sources under a fixed precedence order and answers the derived
// layout queries the display layer needs. Resolution is a pure function of
// its inputs; diagnostics travel in the returned Precedence record.
package overlay
