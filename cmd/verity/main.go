// Verity is a data-contract validation tool for YAML contract and datasource
// files.
//
// It parses contract documents, checks them for syntax and structural errors,
// validates cross-file datasource semantics, and reports precisely located
// diagnostics.
//
// Usage:
//
//	# Validate a single file
//	verity validate --file contracts/orders.yml
//
//	# Validate a directory
//	verity validate --dir contracts/
//
//	# JSON output for CI/CD
//	verity validate --dir contracts/ --format json
//
//	# Run continuously, reloading on changes
//	verity watch --config config.yaml
//
//	# Show version information
//	verity version
package main

func main() {
	Execute()
}
