// Package config loads the subseek configuration file.
//
// The file is TOML and every key is optional:
//
//	corpus_dir = "subtitle"
//	log_level  = "info"
//	format     = "json"
//
//	[search]
//	min_ratio      = 50.0
//	min_similarity = 0.0
//	max_results    = 0 # 0 means unlimited
//
//	[scoring]
//	single_word = "lcs"      # or "partial"
//	multi_word  = "disjoint" # or "min_partial"
//
//	[workers]
//	files      = 4
//	segments   = 4
//	chunk_size = 256
package config
