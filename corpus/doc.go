// Package corpus reads subtitle corpus files and scans them against a scorer.
//
// A corpus is a directory of ".json" files, each an array of
//
//	{"timestamp": "...", "similarity": 0.9, "text": "..."}
//
// The Scanner evaluates files concurrently on one worker pool and splits each
// file's segments into chunks evaluated on a second pool. A file that cannot be
// read or decoded is reported as a skipped FileOutcome and never fails the scan.
package corpus
