// Package model defines the form model shared by the terminal and browser
// collectors. A FormModel is an ordered list of sections; each field carries
// its dotted value path, control type, presentation strings and, for
// enumerated controls, the resolved option list.
package model
