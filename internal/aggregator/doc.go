// Package aggregator concatenates the regular files found under an ordered
// list of directories into a single text file.
//
// Each included file is written as a header block followed by its content:
//
//	\n--- Content from {identifier} ---\n{content}\n
//
// Directories are processed in configuration order and files in walk order,
// so two runs over the same tree produce byte-identical output.
package aggregator
