// Package cli provides the alloykit command-line interface.
//
// # Overview
//
// This package implements the `alloykit` tool for checking, re-indenting,
// and documenting Grafana Alloy configuration files from the terminal or
// CI, plus a long-running HTTP server for editor integrations.
//
// # Commands
//
// lint: Report findings for every .alloy file under a directory
//
//	alloykit lint -dir ./configs
//	alloykit lint -format sarif -fail-on-warning configs/edge.alloy > alloykit.sarif
//	alloykit lint -rules
//
// Output formats are text, json, github (workflow annotations) and sarif.
// Files are analysed concurrently (-workers) and reported in walk order.
//
// fmt: Re-indent files by brace depth
//
//	alloykit fmt config.alloy         # print the formatted text
//	alloykit fmt -w ./configs         # rewrite files in place
//	alloykit fmt -check -diff ./configs
//
// docs: Generate component documentation
//
//	alloykit docs -out docs/edge.md configs/edge.alloy
//	alloykit docs -format html -out site/edge.html configs/edge.alloy
//
// watch: Re-lint files as they change
//
//	alloykit watch -dir ./configs -delay 500ms
//
// serve: Run the HTTP API (configured through ALLOYKIT_* environment variables)
//
//	ALLOYKIT_STORE=redis ALLOYKIT_REDIS_URL=redis://localhost:6379/0 alloykit serve
//
// # Project Configuration
//
// lint and watch read .alloykit.yaml from -dir, fmt from the working
// directory:
//
//	version: v1
//	rules:
//	  block-namespace: false
//	required_attributes:
//	  prometheus.exporter.postgres: [data_source_names]
//	ignore:
//	  - generated/**
//	format:
//	  indent: "  "
//
// # Exit Codes
//
// The process exits 1 and prints "Error: <message>" on any failure,
// including lint errors (-fail-on-error, on by default), lint warnings with
// -fail-on-warning, and unformatted files with fmt -check.
package cli
