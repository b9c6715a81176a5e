// Package core defines the data model shared by the subtitle search packages:
// corpus segments, scored matches and the error taxonomy.
package core
